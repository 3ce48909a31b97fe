package tollbooth

import "github.com/pixil98/go-tollbooth/internal/entity"

// Record is the toll booth data attached to an entity.
type Record struct {
	Name Name `json:"name"`

	// Owner is the entity the toll booth belongs to, typically the highway
	// segment it was placed on. entity.Null means no owner has been recorded.
	Owner entity.Identity `json:"owner_link,omitzero"`
}

func (r Record) HasOwner() bool {
	return !r.Owner.IsNull()
}

// Candidate is a snapshot of one live toll booth taken during a scan.
type Candidate struct {
	ID     entity.Identity
	Record Record
}
