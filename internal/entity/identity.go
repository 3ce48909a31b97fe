package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Identity refers to an entity slot in the host world. Version is bumped every
// time a slot is recycled, so an Identity held past its entity's destruction
// never matches the slot's new occupant.
type Identity struct {
	Index   uint32 `json:"index"`
	Version uint32 `json:"version"`
}

// Null is the zero Identity. It never refers to a live entity.
var Null = Identity{}

func (id Identity) IsNull() bool {
	return id == Null
}

func (id Identity) String() string {
	return fmt.Sprintf("%d:%d", id.Index, id.Version)
}

// ParseIdentity parses the "index:version" form produced by String.
func ParseIdentity(s string) (Identity, error) {
	idx, ver, ok := strings.Cut(s, ":")
	if !ok {
		return Null, fmt.Errorf("identity %q: expected index:version", s)
	}

	i, err := strconv.ParseUint(idx, 10, 32)
	if err != nil {
		return Null, fmt.Errorf("identity %q: parsing index: %w", s, err)
	}
	v, err := strconv.ParseUint(ver, 10, 32)
	if err != nil {
		return Null, fmt.Errorf("identity %q: parsing version: %w", s, err)
	}

	return Identity{Index: uint32(i), Version: uint32(v)}, nil
}
