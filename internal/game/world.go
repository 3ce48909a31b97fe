package game

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/pixil98/go-tollbooth/internal/entity"
	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

// World is an in-process entity store holding toll booths and the entities
// that own them. All access goes through its methods to keep it thread-safe.
type World struct {
	mu sync.RWMutex

	slots       slots
	tollBooths  map[entity.Identity]tollbooth.Record
	owners      map[entity.Identity]entity.Identity
	customNames map[entity.Identity]string
}

func NewWorld() *World {
	return &World{
		tollBooths:  make(map[entity.Identity]tollbooth.Record),
		owners:      make(map[entity.Identity]entity.Identity),
		customNames: make(map[entity.Identity]string),
	}
}

// Spawn creates a plain entity, such as a highway segment.
func (w *World) Spawn() entity.Identity {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.slots.alloc()
}

// SpawnTollBooth creates an unnamed toll booth. A non-null owner is attached
// as the host owner component; the record's owner link stays empty until the
// naming engine copies it.
func (w *World) SpawnTollBooth(owner entity.Identity) (entity.Identity, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !owner.IsNull() {
		if err := w.slots.check(owner); err != nil {
			return entity.Null, fmt.Errorf("owner %s: %w", owner, err)
		}
	}

	id := w.slots.alloc()
	w.tollBooths[id] = tollbooth.Record{}
	if !owner.IsNull() {
		w.owners[id] = owner
	}
	return id, nil
}

// Restore recreates an entity at its saved identity.
func (w *World) Restore(id entity.Identity, rec *tollbooth.Record, owner entity.Identity, customName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.slots.claim(id); err != nil {
		return fmt.Errorf("restoring %s: %w", id, err)
	}
	if rec != nil {
		w.tollBooths[id] = *rec
	}
	if !owner.IsNull() {
		w.owners[id] = owner
	}
	if customName != "" {
		w.customNames[id] = customName
	}
	return nil
}

// Destroy removes an entity and all of its components.
func (w *World) Destroy(id entity.Identity) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.slots.release(id); err != nil {
		return fmt.Errorf("destroying %s: %w", id, err)
	}
	delete(w.tollBooths, id)
	delete(w.owners, id)
	delete(w.customNames, id)
	return nil
}

// Entities returns every live identity ordered by slot index.
func (w *World) Entities() []entity.Identity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var ids []entity.Identity
	for i := 1; i < len(w.slots.live); i++ {
		if w.slots.live[i] {
			ids = append(ids, entity.Identity{Index: uint32(i), Version: w.slots.versions[i]})
		}
	}
	return ids
}

// EntitySnapshot is a live entity with its components copied out of the
// world.
type EntitySnapshot struct {
	ID         entity.Identity
	TollBooth  *tollbooth.Record
	Owner      entity.Identity
	CustomName string
}

// Snapshot copies every live entity and its components under one read lock,
// ordered by slot index.
func (w *World) Snapshot() []EntitySnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []EntitySnapshot
	for i := 1; i < len(w.slots.live); i++ {
		if !w.slots.live[i] {
			continue
		}
		id := entity.Identity{Index: uint32(i), Version: w.slots.versions[i]}

		e := EntitySnapshot{ID: id, Owner: w.owners[id], CustomName: w.customNames[id]}
		if rec, ok := w.tollBooths[id]; ok {
			e.TollBooth = &rec
		}
		out = append(out, e)
	}
	return out
}

func (w *World) IsLive(id entity.Identity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.slots.check(id) == nil
}

// HasTollBooth reports whether id is live and carries toll booth data.
func (w *World) HasTollBooth(id entity.Identity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.slots.check(id) != nil {
		return false
	}
	_, ok := w.tollBooths[id]
	return ok
}

// Query returns all toll booths ordered by slot index.
func (w *World) Query(_ context.Context) ([]tollbooth.Candidate, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]tollbooth.Candidate, 0, len(w.tollBooths))
	for id, rec := range w.tollBooths {
		out = append(out, tollbooth.Candidate{ID: id, Record: rec})
	}
	slices.SortFunc(out, func(a, b tollbooth.Candidate) int {
		return cmp.Compare(a.ID.Index, b.ID.Index)
	})
	return out, nil
}

func (w *World) Read(id entity.Identity) (tollbooth.Record, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if err := w.slots.check(id); err != nil {
		return tollbooth.Record{}, err
	}
	rec, ok := w.tollBooths[id]
	if !ok {
		return tollbooth.Record{}, ErrNotTollBooth
	}
	return rec, nil
}

func (w *World) Write(id entity.Identity, rec tollbooth.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.slots.check(id); err != nil {
		return err
	}
	if _, ok := w.tollBooths[id]; !ok {
		return ErrNotTollBooth
	}
	w.tollBooths[id] = rec
	return nil
}

// OwnerOf returns the host owner component of id, if it has one.
func (w *World) OwnerOf(id entity.Identity) (entity.Identity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	owner, ok := w.owners[id]
	return owner, ok
}

func (w *World) SetCustomName(id entity.Identity, name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.slots.check(id); err != nil {
		return err
	}
	w.customNames[id] = name
	return nil
}

func (w *World) CustomName(id entity.Identity) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	name, ok := w.customNames[id]
	return name, ok
}
