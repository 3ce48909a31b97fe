package tollbooth

import (
	"context"

	"github.com/pixil98/go-tollbooth/internal/entity"
)

// Store is the slice of the host entity store the naming engine needs.
type Store interface {
	// Query returns every live entity carrying toll booth data.
	Query(ctx context.Context) ([]Candidate, error)
	IsLive(id entity.Identity) bool
	Read(id entity.Identity) (Record, error)
	Write(id entity.Identity, rec Record) error
}
