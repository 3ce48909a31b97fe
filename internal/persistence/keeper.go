package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pixil98/go-tollbooth/internal/game"
)

type TickCounter interface {
	Ticks() uint64
}

// SceneKeeper saves the world to disk periodically and once more on
// shutdown.
type SceneKeeper struct {
	path     string
	world    *game.World
	ticks    TickCounter
	interval time.Duration
}

func NewSceneKeeper(path string, world *game.World, ticks TickCounter, opts ...SceneKeeperOpt) *SceneKeeper {
	k := &SceneKeeper{
		path:  path,
		world: world,
		ticks: ticks,
	}

	for _, opt := range opts {
		opt(k)
	}

	return k
}

// Restore loads the scene at the keeper's path into its world. A missing
// file leaves the world empty.
func (k *SceneKeeper) Restore(ctx context.Context) error {
	s, err := LoadScene(k.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.InfoContext(ctx, "no saved scene, starting empty", "path", k.path)
			return nil
		}
		return err
	}

	if err := Apply(s, k.world); err != nil {
		return fmt.Errorf("applying scene: %w", err)
	}
	slog.InfoContext(ctx, "scene restored", "path", k.path, "entities", len(s.Entities), "tick", s.Header.Tick)
	return nil
}

// Save captures and writes the world now.
func (k *SceneKeeper) Save(ctx context.Context) error {
	s, err := Capture(k.world, k.ticks.Ticks())
	if err != nil {
		return fmt.Errorf("capturing scene: %w", err)
	}
	if err := SaveScene(k.path, s); err != nil {
		return err
	}
	slog.DebugContext(ctx, "scene saved", "path", k.path, "entities", len(s.Entities))
	return nil
}

func (k *SceneKeeper) Start(ctx context.Context) error {
	var autosave <-chan time.Time
	if k.interval > 0 {
		ticker := time.NewTicker(k.interval)
		defer ticker.Stop()
		autosave = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			// ctx is already cancelled here
			return k.Save(context.WithoutCancel(ctx))
		case <-autosave:
			if err := k.Save(ctx); err != nil {
				slog.WarnContext(ctx, "autosave failed", "path", k.path, "error", err)
			}
		}
	}
}
