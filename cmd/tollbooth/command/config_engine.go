package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tollbooth/internal/game"
	"github.com/pixil98/go-tollbooth/internal/naming"
	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

type EngineConfig struct {
	EvictEvery   uint64       `json:"evict_every"`
	Seed         uint64       `json:"seed"`
	Style        naming.Style `json:"style"`
	OwnerLink    bool         `json:"owner_link"`
	DisplayNames bool         `json:"display_names"`
}

func (c *EngineConfig) validate() error {
	el := errors.NewErrorList()

	if c.Style != naming.StylePlain && c.Style != naming.StyleDecorated {
		el.Add(fmt.Errorf("engine: unknown style %d", c.Style))
	}

	return el.Err()
}

func (c *EngineConfig) buildGenerator(catalog *naming.Catalog) (*naming.Generator, error) {
	opts := []naming.GeneratorOpt{naming.WithStyle(c.Style)}
	if c.Seed != 0 {
		opts = append(opts, naming.WithSeed(c.Seed))
	}
	return naming.NewGenerator(catalog, opts...)
}

func (c *EngineConfig) buildEngine(world *game.World, names tollbooth.NameSource) *tollbooth.Engine {
	opts := []tollbooth.EngineOpt{}
	if c.EvictEvery != 0 {
		opts = append(opts, tollbooth.WithEvictEvery(c.EvictEvery))
	}

	var hooks []tollbooth.Hook
	if c.OwnerLink {
		hooks = append(hooks, tollbooth.NewOwnerLinkHook(world, world))
	}
	if c.DisplayNames {
		hooks = append(hooks, tollbooth.NewDisplayNameHook(world))
	}
	if len(hooks) > 0 {
		opts = append(opts, tollbooth.WithHooks(hooks...))
	}

	return tollbooth.NewEngine(world, names, opts...)
}
