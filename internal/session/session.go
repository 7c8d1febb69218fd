package session

import (
	"context"
	"time"

	"github.com/pixil98/go-exploratron/internal/game"
)

// EventSource hands over the input gathered since the last tick.
type EventSource interface {
	Drain(list *game.EventList) int
}

// Syncer pushes a tick's changes out to every client.
type Syncer interface {
	Sync(ctx context.Context, w *game.World, sc *game.ScreenChanges) error
}

// Session runs one world for the driver. Each Tick drains input, updates
// the world and synchronizes clients.
type Session struct {
	world  *game.World
	source EventSource
	syncer Syncer

	events  *game.EventList
	changes *game.ScreenChanges

	clock func() time.Time
	start time.Time
}

type SessionOpt func(*Session)

// WithClock replaces the wall clock.
func WithClock(clock func() time.Time) SessionOpt {
	return func(s *Session) {
		s.clock = clock
	}
}

func NewSession(w *game.World, source EventSource, syncer Syncer, opts ...SessionOpt) *Session {
	s := &Session{
		world:   w,
		source:  source,
		syncer:  syncer,
		events:  game.NewEventList(),
		changes: game.NewScreenChanges(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.start = s.clock()
	return s
}

// Now is game time, counted from when the session was created.
func (s *Session) Now() game.Millis {
	return game.Millis(s.clock().Sub(s.start).Milliseconds())
}

// Tick advances the world by one frame. It returns game.ErrGameOver once
// the world has ended.
func (s *Session) Tick(ctx context.Context) error {
	s.events.Clear()
	s.changes.Clear()
	s.source.Drain(s.events)

	if err := s.world.Update(s.Now(), s.events, s.changes); err != nil {
		return err
	}
	if err := s.syncer.Sync(ctx, s.world, s.changes); err != nil {
		return err
	}

	if s.world.IsGameOver() {
		return game.ErrGameOver
	}
	return nil
}
