package tollbooth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-tollbooth/internal/entity"
)

// NameAssigned is emitted once per entity, right after the engine writes its
// name.
type NameAssigned struct {
	ID   entity.Identity
	Name Name
	Tick uint64
}

// Listener receives NameAssigned events synchronously during a tick.
type Listener interface {
	OnNameAssigned(ctx context.Context, ev NameAssigned) error
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(ctx context.Context, ev NameAssigned) error

func (f ListenerFunc) OnNameAssigned(ctx context.Context, ev NameAssigned) error {
	return f(ctx, ev)
}

type subscription struct {
	id       int
	key      string
	listener Listener
}

// fanout delivers events to subscribers in registration order.
type fanout struct {
	subs   []subscription
	nextId int
}

func (f *fanout) subscribe(key string, l Listener) func() {
	f.nextId++
	id := f.nextId
	f.subs = append(f.subs, subscription{id: id, key: key, listener: l})

	return func() {
		for i, s := range f.subs {
			if s.id == id {
				f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
				return
			}
		}
	}
}

// publish calls every listener and returns the failures. One listener failing
// never prevents delivery to the rest.
func (f *fanout) publish(ctx context.Context, ev NameAssigned) []error {
	var errs []error
	for _, s := range f.subs {
		if err := deliver(ctx, s, ev); err != nil {
			slog.WarnContext(ctx, "name listener failed", "listener", s.key, "entity", ev.ID.String(), "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

func deliver(ctx context.Context, s subscription, ev NameAssigned) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ListenerFailure{Listener: s.key, ID: ev.ID, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if lerr := s.listener.OnNameAssigned(ctx, ev); lerr != nil {
		return &ListenerFailure{Listener: s.key, ID: ev.ID, Err: lerr}
	}
	return nil
}
