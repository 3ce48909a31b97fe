package tollbooth

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixil98/go-tollbooth/internal/entity"
)

var errDestroyed = errors.New("entity destroyed")

// fakeStore is an in-memory Store that counts name writes.
type fakeStore struct {
	records    map[entity.Identity]Record
	order      []entity.Identity
	generation map[uint32]uint32
	nextIndex  uint32

	nameWrites     map[entity.Identity]int
	queryErr       error
	destroyOnWrite map[entity.Identity]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records:        map[entity.Identity]Record{},
		generation:     map[uint32]uint32{},
		nameWrites:     map[entity.Identity]int{},
		destroyOnWrite: map[entity.Identity]bool{},
	}
}

func (s *fakeStore) add(name string) entity.Identity {
	s.nextIndex++
	s.generation[s.nextIndex]++
	id := entity.Identity{Index: s.nextIndex, Version: s.generation[s.nextIndex]}
	s.records[id] = Record{Name: NewName(name)}
	s.order = append(s.order, id)
	return id
}

func (s *fakeStore) destroy(id entity.Identity) {
	delete(s.records, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *fakeStore) Query(_ context.Context) ([]Candidate, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	out := make([]Candidate, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, Candidate{ID: id, Record: s.records[id]})
	}
	return out, nil
}

func (s *fakeStore) IsLive(id entity.Identity) bool {
	_, ok := s.records[id]
	return ok
}

func (s *fakeStore) Read(id entity.Identity) (Record, error) {
	rec, ok := s.records[id]
	if !ok {
		return Record{}, fmt.Errorf("read %s: %w", id, errDestroyed)
	}
	return rec, nil
}

func (s *fakeStore) Write(id entity.Identity, rec Record) error {
	if s.destroyOnWrite[id] {
		s.destroy(id)
	}
	old, ok := s.records[id]
	if !ok {
		return errDestroyed
	}
	if old.Name != rec.Name {
		s.nameWrites[id]++
	}
	s.records[id] = rec
	return nil
}

// sequenceNames hands out distinct names and counts how often it is asked.
type sequenceNames struct {
	calls int
}

func (n *sequenceNames) Generate() Name {
	n.calls++
	return NewName(fmt.Sprintf("Gateway Plaza %d", n.calls))
}

// recordingListener collects every event it receives.
type recordingListener struct {
	events []NameAssigned
}

func (l *recordingListener) OnNameAssigned(_ context.Context, ev NameAssigned) error {
	l.events = append(l.events, ev)
	return nil
}

type fakeOwners map[entity.Identity]entity.Identity

func (o fakeOwners) OwnerOf(id entity.Identity) (entity.Identity, bool) {
	owner, ok := o[id]
	return owner, ok
}

type fakeDisplayNames struct {
	names map[entity.Identity]string
	err   error
}

func (d *fakeDisplayNames) SetCustomName(id entity.Identity, name string) error {
	if d.err != nil {
		return d.err
	}
	if d.names == nil {
		d.names = map[entity.Identity]string{}
	}
	d.names[id] = name
	return nil
}
