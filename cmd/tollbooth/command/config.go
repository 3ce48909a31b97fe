package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

const defaultTickInterval = time.Second

type Config struct {
	TickInterval string        `json:"tick_interval"`
	Engine       EngineConfig  `json:"engine"`
	Storage      StorageConfig `json:"storage"`
	Nats         NatsConfig    `json:"nats"`
	UI           UIConfig      `json:"ui"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < 10*time.Millisecond {
			el.Add(fmt.Errorf("tick_interval must be at least 10ms"))
		}
	}

	el.Add(c.Engine.validate())
	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.UI.validate())

	return el.Err()
}

func (c *Config) tickLength() time.Duration {
	if c.TickInterval == "" {
		return defaultTickInterval
	}
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return defaultTickInterval
	}
	return d
}
