package persistence

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tollbooth/internal/entity"
	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

const SceneVersion = 1

type Header struct {
	Version int    `json:"version"`
	Tick    uint64 `json:"tick"`
}

// SceneV1 is the saved form of a world. Processed naming state is not part of
// it; the engine rebuilds that from the names stored here.
type SceneV1 struct {
	Header   Header     `json:"header"`
	Entities []EntityV1 `json:"entities"`
}

type EntityV1 struct {
	ID         entity.Identity   `json:"id"`
	TollBooth  *tollbooth.Record `json:"toll_booth,omitempty"`
	Owner      entity.Identity   `json:"owner,omitzero"`
	CustomName string            `json:"custom_name,omitempty"`
}

func (s *SceneV1) Validate() error {
	el := errors.NewErrorList()

	if s.Header.Version != SceneVersion {
		el.Add(fmt.Errorf("unsupported scene version %d", s.Header.Version))
	}

	seen := make(map[uint32]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e.ID.IsNull() {
			el.Add(fmt.Errorf("entity %d has a null id", i))
			continue
		}
		if seen[e.ID.Index] {
			el.Add(fmt.Errorf("entity %d reuses slot %d", i, e.ID.Index))
		}
		seen[e.ID.Index] = true
	}

	return el.Err()
}
