package command

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-exploratron/internal/driver"
	"github.com/pixil98/go-exploratron/internal/game"
)

const minTickInterval = 10 * time.Millisecond

type Config struct {
	TickInterval  string        `json:"tick_interval"`
	RegenInterval string        `json:"regen_interval"`
	LogLevel      string        `json:"log_level"`
	Server        ServerConfig  `json:"server"`
	Storage       StorageConfig `json:"storage"`
	Nats          NatsConfig    `json:"nats"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < minTickInterval {
			el.Add(fmt.Errorf("tick_interval must be at least %s", minTickInterval))
		}
	}

	if c.RegenInterval != "" {
		d, err := time.ParseDuration(c.RegenInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing regen_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("regen_interval must be positive"))
		}
	}

	if c.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
			el.Add(fmt.Errorf("parsing log_level: %w", err))
		}
	}

	el.Add(c.Server.validate())
	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) tickInterval() time.Duration {
	if c.TickInterval == "" {
		return driver.DefaultTickLength
	}
	d, _ := time.ParseDuration(c.TickInterval)
	return d
}

func (c *Config) regenInterval() game.Millis {
	if c.RegenInterval == "" {
		return game.DefaultRegenInterval
	}
	d, _ := time.ParseDuration(c.RegenInterval)
	return game.Millis(d.Milliseconds())
}

func (c *Config) logLevel() slog.Level {
	var lvl slog.Level
	if c.LogLevel != "" {
		_ = lvl.UnmarshalText([]byte(c.LogLevel))
	}
	return lvl
}
