package storage

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)

// ValidatingSpec is the payload of an asset file.
type ValidatingSpec interface {
	Validate() error
}

// KindedSpec is a spec that names the kind of asset it is stored as. Files
// holding a different kind are rejected on load.
type KindedSpec interface {
	ValidatingSpec
	AssetKind() string
}

type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Asset wraps a spec with the metadata every asset file carries.
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Kind       string     `json:"kind,omitempty"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func newAsset[T ValidatingSpec](id Identifier, spec T) *Asset[T] {
	return &Asset[T]{
		Version:    1,
		Kind:       kindOf(spec),
		Identifier: id,
		Spec:       spec,
	}
}

func kindOf(spec any) string {
	if k, ok := spec.(KindedSpec); ok {
		return k.AssetKind()
	}
	return ""
}

func (a *Asset[T]) Id() Identifier {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	switch {
	case a.Identifier == "":
		el.Add(fmt.Errorf("id must be set"))
	case !identifierPattern.MatchString(a.Identifier.String()):
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	if want := kindOf(a.Spec); want != "" && a.Kind != want {
		el.Add(fmt.Errorf("kind %q does not match expected %q", a.Kind, want))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}
