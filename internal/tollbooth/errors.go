package tollbooth

import (
	"errors"
	"fmt"

	"github.com/pixil98/go-tollbooth/internal/entity"
)

var ErrNotLive = errors.New("entity is not live")

// QueryFailure means the store could not enumerate toll booths. It aborts the
// current tick only.
type QueryFailure struct {
	Err error
}

func (e *QueryFailure) Error() string {
	return fmt.Sprintf("querying toll booths: %v", e.Err)
}

func (e *QueryFailure) Unwrap() error {
	return e.Err
}

// WriteConflict means the store rejected a name write, usually because the
// entity was destroyed after the scan.
type WriteConflict struct {
	ID  entity.Identity
	Err error
}

func (e *WriteConflict) Error() string {
	return fmt.Sprintf("writing toll booth %s: %v", e.ID, e.Err)
}

func (e *WriteConflict) Unwrap() error {
	return e.Err
}

// ListenerFailure wraps an error or panic raised by a NameAssigned listener.
type ListenerFailure struct {
	Listener string
	ID       entity.Identity
	Err      error
}

func (e *ListenerFailure) Error() string {
	return fmt.Sprintf("listener %s handling %s: %v", e.Listener, e.ID, e.Err)
}

func (e *ListenerFailure) Unwrap() error {
	return e.Err
}
