package game

import (
	"context"
	"log/slog"
	"sync"
)

// Command mutates the world on the simulation thread.
type Command struct {
	Name  string
	Apply func(*World) error
}

// CommandQueue collects world mutations requested from other goroutines and
// applies them at the start of the next tick, so they never interleave with
// the naming engine.
type CommandQueue struct {
	world *World

	mu      sync.Mutex
	pending []Command
}

func NewCommandQueue(w *World) *CommandQueue {
	return &CommandQueue{world: w}
}

func (q *CommandQueue) Enqueue(c Command) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pending = append(q.pending, c)
}

// Tick applies every queued command in arrival order. A failing command is
// logged and dropped.
func (q *CommandQueue) Tick(ctx context.Context) error {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, c := range pending {
		if err := c.Apply(q.world); err != nil {
			slog.WarnContext(ctx, "applying world command", "command", c.Name, "error", err)
		}
	}
	return nil
}
