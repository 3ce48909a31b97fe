package tollbooth

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-tollbooth/internal/entity"
)

// NameSource produces names for toll booths that do not have one. It must
// never return Unnamed.
type NameSource interface {
	Generate() Name
}

// Engine assigns a name to every toll booth exactly once.
//
// The engine remembers which entities already carry a permanent name so that
// steady-state ticks cost one map lookup per toll booth. That memory is never
// persisted: after a restart the first tick rebuilds it from the names found
// in the store.
type Engine struct {
	scanner *Scanner
	store   Store
	names   NameSource
	hooks   []Hook
	events  fanout

	processed  map[entity.Identity]struct{}
	evictEvery uint64
	tick       uint64
}

func NewEngine(store Store, names NameSource, opts ...EngineOpt) *Engine {
	e := &Engine{
		scanner:    NewScanner(store),
		store:      store,
		names:      names,
		processed:  make(map[entity.Identity]struct{}),
		evictEvery: 1,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Subscribe registers l for NameAssigned events. Listeners are called in
// registration order. The returned function removes the subscription.
func (e *Engine) Subscribe(key string, l Listener) func() {
	return e.events.subscribe(key, l)
}

// Tick runs ProcessTick so the engine can be driven as a simulation manager.
func (e *Engine) Tick(ctx context.Context) error {
	return e.ProcessTick(ctx)
}

// ProcessTick names every unnamed toll booth, records already named ones and
// then evicts entries for entities that no longer exist. Only a failure to
// enumerate toll booths is returned; per-entity failures are logged and
// retried on the next tick.
func (e *Engine) ProcessTick(ctx context.Context) error {
	e.tick++

	candidates, err := e.scanner.Scan(ctx)
	if err != nil {
		return err
	}

	for _, c := range candidates {
		if _, ok := e.processed[c.ID]; ok {
			continue
		}

		if c.Record.Name.IsNamed() {
			e.processed[c.ID] = struct{}{}
			slog.DebugContext(ctx, "toll booth already named", "entity", c.ID.String(), "name", c.Record.Name.String())
			continue
		}

		e.assign(ctx, c)
	}

	if e.tick%e.evictEvery == 0 {
		e.evict(ctx)
	}

	return nil
}

func (e *Engine) assign(ctx context.Context, c Candidate) {
	rec := c.Record
	rec.Name = e.names.Generate()

	if err := e.store.Write(c.ID, rec); err != nil {
		slog.WarnContext(ctx, "assigning toll booth name", "error", &WriteConflict{ID: c.ID, Err: err})
		return
	}
	e.processed[c.ID] = struct{}{}

	slog.InfoContext(ctx, "assigned toll booth name", "entity", c.ID.String(), "name", rec.Name.String())

	for _, h := range e.hooks {
		if err := h.AfterAssign(ctx, c.ID, rec); err != nil {
			slog.WarnContext(ctx, "post-assignment hook failed", "hook", h.Key(), "entity", c.ID.String(), "error", err)
		}
	}

	e.events.publish(ctx, NameAssigned{ID: c.ID, Name: rec.Name, Tick: e.tick})
}

// evict drops processed entries whose entity is gone and returns how many were
// removed.
func (e *Engine) evict(ctx context.Context) int {
	removed := 0
	for id := range e.processed {
		if !e.store.IsLive(id) {
			delete(e.processed, id)
			removed++
		}
	}

	if removed > 0 {
		slog.DebugContext(ctx, "evicted destroyed toll booths", "count", removed, "remaining", len(e.processed))
	}
	return removed
}

// NameOf returns the current name of a live toll booth.
func (e *Engine) NameOf(id entity.Identity) (Name, error) {
	if !e.store.IsLive(id) {
		return Unnamed, ErrNotLive
	}

	rec, err := e.store.Read(id)
	if err != nil {
		return Unnamed, err
	}
	return rec.Name, nil
}

// Processed reports whether id is recorded as permanently named.
func (e *Engine) Processed(id entity.Identity) bool {
	_, ok := e.processed[id]
	return ok
}

func (e *Engine) ProcessedCount() int {
	return len(e.processed)
}

// Reset forgets every processed entity, as happens when a save is reloaded.
func (e *Engine) Reset() {
	clear(e.processed)
}
