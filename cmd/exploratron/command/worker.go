package command

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-exploratron/internal/driver"
	"github.com/pixil98/go-exploratron/internal/game"
	"github.com/pixil98/go-exploratron/internal/loader"
	"github.com/pixil98/go-exploratron/internal/messaging"
	"github.com/pixil98/go-exploratron/internal/session"
	"github.com/pixil98/go-exploratron/internal/transport"
	"github.com/pixil98/go-exploratron/internal/viewsync"
	"github.com/pixil98/go-service"
)

// WorkerBuilder returns the worker factory for the app. stop is called when
// the game ends on its own so every worker can wind down.
func WorkerBuilder(stop func()) func(config interface{}) (service.WorkerList, error) {
	return func(config interface{}) (service.WorkerList, error) {
		cfg, ok := config.(*Config)
		if !ok {
			return nil, fmt.Errorf("unable to cast config")
		}
		return buildWorkers(cfg, stop)
	}
}

func buildWorkers(cfg *Config, stop func()) (service.WorkerList, error) {
	slog.SetLogLoggerLevel(cfg.logLevel())

	workers := service.WorkerList{}

	// Optional spectator bus
	var mirror transport.Mirror
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		mirror = messaging.NewPlayerMirror(ns)
		workers["nats"] = ns
	}

	// Load the world
	stores, err := cfg.Storage.loadStores()
	if err != nil {
		return nil, err
	}
	worldOpts := []game.WorldOpt{game.WithRegenInterval(cfg.regenInterval())}
	if !cfg.Server.exitWhenEmpty() {
		worldOpts = append(worldOpts, game.WithKeepRunningWhenEmpty())
	}
	world, err := loader.BuildWorld(stores, worldOpts...)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	// Network
	cm := cfg.Server.buildConnectionManager(mirror)
	workers["udp"] = transport.NewUDPListener(cfg.Server.addr(), cm)

	// Setup the game driver
	sess := session.NewSession(world, cm, viewsync.NewSynchronizer(cm))
	workers["game"] = driver.NewGameDriver(
		[]driver.Manager{sess},
		driver.WithTickLength(cfg.tickInterval()),
		driver.WithStopOn(game.ErrGameOver, stop),
	)

	return workers, nil
}
