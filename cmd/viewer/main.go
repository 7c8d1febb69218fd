package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-exploratron/internal/protocol"
)

func main() {
	server := flag.String("server", "127.0.0.1:12000", "game server address")
	playerId := flag.String("player", "0", "player id to join as")
	spectate := flag.String("spectate", "", "nats url to watch the player through instead of joining")
	flag.Parse()

	// The screen owns the terminal, so logs are discarded.
	slog.SetDefault(slog.New(slog.DiscardHandler))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, *server, *playerId, *spectate); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, server, playerId, spectate string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inbound := make(chan protocol.Message, 64)

	var l link
	var err error
	if spectate != "" {
		l, err = tapNats(ctx, spectate, playerId, inbound)
	} else {
		l, err = dialUDP(ctx, server, inbound)
	}
	if err != nil {
		return err
	}
	defer l.Close()

	if err := l.Send(protocol.JoinServer{PlayerId: playerId}); err != nil {
		return fmt.Errorf("joining: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	v := newView()
	for {
		draw(screen, v)
		screen.Show()

		select {
		case <-ctx.Done():
			return l.Send(protocol.ClientDisconnecting{})

		case msg := <-inbound:
			if err := v.apply(msg); err != nil {
				v.console.Add(err.Error())
			}
			if _, ok := msg.(protocol.WelcomeClient); ok {
				if err := l.Send(protocol.RequestInventory{}); err != nil {
					return err
				}
			}
			if v.exit {
				return nil
			}

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				cmd := v.handleKey(ev.Key(), ev.Rune())
				for _, msg := range cmd.send {
					if err := l.Send(msg); err != nil {
						return fmt.Errorf("sending %s: %w", protocol.Name(msg), err)
					}
				}
				if cmd.quit {
					return nil
				}
			}
		}
	}
}
