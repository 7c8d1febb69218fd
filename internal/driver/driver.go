package driver

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = 50 * time.Millisecond
)

// Manager is advanced once per tick.
type Manager interface {
	Tick(context.Context) error
}

// GameDriver ticks its managers at a fixed interval until the context ends
// or a manager fails.
type GameDriver struct {
	tickLength time.Duration
	managers   []Manager

	stopErr error
	onStop  func()
}

func NewGameDriver(managers []Manager, opts ...GameDriverOpt) *GameDriver {
	d := &GameDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start runs the tick loop. A tick error matching the stop error ends the
// loop cleanly and fires the stop callback; any other error is returned.
func (d *GameDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err == nil {
				continue
			}
			if d.stopErr != nil && errors.Is(err, d.stopErr) {
				slog.InfoContext(ctx, "driver stopping", "reason", err)
				if d.onStop != nil {
					d.onStop()
				}
				return nil
			}
			return err
		}
	}
}

func (d *GameDriver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
