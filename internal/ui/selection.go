package ui

import (
	"sync"

	"github.com/pixil98/go-tollbooth/internal/entity"
)

// Selection tracks the entity the player currently has selected.
type Selection struct {
	mu       sync.RWMutex
	selected entity.Identity
}

func (s *Selection) Select(id entity.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = id
}

func (s *Selection) Clear() {
	s.Select(entity.Null)
}

func (s *Selection) Selected() entity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selected
}
