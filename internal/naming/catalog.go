package naming

import (
	"fmt"
	"os"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tollbooth/internal/tollbooth"
	"gopkg.in/yaml.v3"
)

// maxBaseBytes leaves room for the " nn" suffix inside a record name.
const maxBaseBytes = tollbooth.MaxNameBytes - 3

// Catalog is a set of place-like names toll booths are named from. Prefixes
// and Suffixes are only used by StyleDecorated.
type Catalog struct {
	Names    []string `json:"names" yaml:"names"`
	Prefixes []string `json:"prefixes,omitempty" yaml:"prefixes,omitempty"`
	Suffixes []string `json:"suffixes,omitempty" yaml:"suffixes,omitempty"`
}

// AssetKind tags catalog asset files.
func (c *Catalog) AssetKind() string {
	return "catalog"
}

func (c *Catalog) Validate() error {
	el := errors.NewErrorList()

	if len(c.Names) == 0 {
		el.Add(fmt.Errorf("names must not be empty"))
	}

	seen := make(map[string]bool, len(c.Names))
	for i, n := range c.Names {
		if strings.TrimSpace(n) == "" {
			el.Add(fmt.Errorf("name %d is blank", i))
			continue
		}
		if len(n) > maxBaseBytes {
			el.Add(fmt.Errorf("name %q is longer than %d bytes", n, maxBaseBytes))
		}
		if seen[n] {
			el.Add(fmt.Errorf("duplicate name %q", n))
		}
		seen[n] = true
	}

	for i, p := range c.Prefixes {
		if strings.TrimSpace(p) == "" {
			el.Add(fmt.Errorf("prefix %d is blank", i))
		}
	}
	for i, s := range c.Suffixes {
		if strings.TrimSpace(s) == "" {
			el.Add(fmt.Errorf("suffix %d is blank", i))
		}
	}

	return el.Err()
}

// contains reports whether base is one of the catalog names.
func (c *Catalog) contains(base string) bool {
	for _, n := range c.Names {
		if n == base {
			return true
		}
	}
	return false
}

// validateDecorated checks that the longest decorated name still fits in a
// record, so decoration never truncates a catalog name.
func (c *Catalog) validateDecorated() error {
	n := longest(c.Prefixes) + 1 + longest(c.Names) + 1 + longest(c.Suffixes)
	if n > tollbooth.MaxNameBytes {
		return fmt.Errorf("decorated names can reach %d bytes, limit is %d", n, tollbooth.MaxNameBytes)
	}
	return nil
}

func longest(from []string) int {
	m := 0
	for _, s := range from {
		m = max(m, len(s))
	}
	return m
}

// LoadCatalog reads and validates a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog %s: %w", path, err)
	}

	return &c, nil
}

// DefaultCatalog returns the built-in names.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Names: []string{
			"Gateway Plaza",
			"Golden Bridge Toll",
			"Sunrise Station",
			"Mountain View Plaza",
			"Riverside Checkpoint",
			"Valley Express",
			"Harbor Gate",
			"Summit Pass",
			"Metro Junction",
			"Central Plaza",
			"Pine Ridge Station",
			"Coastal Gateway",
			"Highland Passage",
			"Urban Express",
			"Parkway Plaza",
			"Commerce Gate",
			"Industrial Junction",
			"Liberty Station",
			"Eagle Pass",
			"Thunder Ridge",
			"Crystal Bay Plaza",
			"Meadowbrook Gate",
			"Silverstone Pass",
			"Woodland Station",
			"Lakeside Plaza",
		},
		Prefixes: []string{"North", "South", "East", "West", "Central", "Upper", "Lower", "New", "Old"},
		Suffixes: []string{"A", "B", "C", "1", "2", "3", "Main", "Ext"},
	}
}
