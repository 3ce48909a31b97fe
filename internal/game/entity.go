package game

import "github.com/pixil98/go-tollbooth/internal/entity"

// slots hands out entity identities and recycles destroyed slots under a new
// version.
type slots struct {
	versions []uint32
	live     []bool
	free     []uint32
}

func (s *slots) alloc() entity.Identity {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		// Slot 0 is reserved so that entity.Null is never issued.
		if len(s.versions) == 0 {
			s.versions = append(s.versions, 0)
			s.live = append(s.live, false)
		}
		idx = uint32(len(s.versions))
		s.versions = append(s.versions, 0)
		s.live = append(s.live, false)
	}

	s.versions[idx]++
	s.live[idx] = true
	return entity.Identity{Index: idx, Version: s.versions[idx]}
}

// claim occupies the exact slot named by id, as needed when a scene is loaded.
func (s *slots) claim(id entity.Identity) error {
	if id.IsNull() {
		return ErrEntityNotFound
	}

	for uint32(len(s.versions)) <= id.Index {
		s.versions = append(s.versions, 0)
		s.live = append(s.live, false)
	}
	if s.live[id.Index] {
		return ErrSlotOccupied
	}

	s.versions[id.Index] = id.Version
	s.live[id.Index] = true
	s.rebuildFree()
	return nil
}

func (s *slots) release(id entity.Identity) error {
	if err := s.check(id); err != nil {
		return err
	}
	s.live[id.Index] = false
	s.free = append(s.free, id.Index)
	return nil
}

func (s *slots) check(id entity.Identity) error {
	if id.IsNull() || id.Index >= uint32(len(s.versions)) || !s.live[id.Index] {
		return ErrEntityNotFound
	}
	if s.versions[id.Index] != id.Version {
		return ErrStaleIdentity
	}
	return nil
}

func (s *slots) rebuildFree() {
	s.free = s.free[:0]
	for i := len(s.live) - 1; i >= 1; i-- {
		if !s.live[i] {
			s.free = append(s.free, uint32(i))
		}
	}
}
