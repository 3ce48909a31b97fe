package ui

import (
	"fmt"
	"sync"
)

// Bindings is the set of values and triggers a panel exposes to the UI host.
// Changed values are collected until the host flushes them.
type Bindings struct {
	group string

	mu       sync.Mutex
	dirty    map[string]any
	triggers map[string]func()
}

func NewBindings(group string) *Bindings {
	return &Bindings{
		group:    group,
		dirty:    map[string]any{},
		triggers: map[string]func(){},
	}
}

func (b *Bindings) key(name string) string {
	return fmt.Sprintf("%s.%s", b.group, name)
}

// Flush returns every value changed since the last flush, keyed by
// "group.name".
func (b *Bindings) Flush() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.dirty
	b.dirty = map[string]any{}
	return out
}

// AddTrigger registers a callback the UI host can invoke by name.
func (b *Bindings) AddTrigger(name string, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.triggers[b.key(name)] = fn
}

// Trigger invokes the callback registered under "group.name".
func (b *Bindings) Trigger(key string) error {
	b.mu.Lock()
	fn, ok := b.triggers[key]
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown trigger %q", key)
	}
	fn()
	return nil
}

// ValueBinding holds one value exposed to the UI host.
type ValueBinding[T comparable] struct {
	owner *Bindings
	key   string
	value T
}

// NewValueBinding creates a binding with an initial value. The initial value
// is reported on the first flush.
func NewValueBinding[T comparable](b *Bindings, name string, initial T) *ValueBinding[T] {
	v := &ValueBinding[T]{owner: b, key: b.key(name), value: initial}

	b.mu.Lock()
	b.dirty[v.key] = initial
	b.mu.Unlock()

	return v
}

func (v *ValueBinding[T]) Value() T {
	v.owner.mu.Lock()
	defer v.owner.mu.Unlock()

	return v.value
}

// Update sets the value and reports whether it changed.
func (v *ValueBinding[T]) Update(val T) bool {
	v.owner.mu.Lock()
	defer v.owner.mu.Unlock()

	if v.value == val {
		return false
	}
	v.value = val
	v.owner.dirty[v.key] = val
	return true
}
