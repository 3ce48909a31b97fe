package naming

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pixil98/go-tollbooth/internal/tollbooth"
)

const (
	numberChance = 30
	prefixChance = 40
	suffixChance = 20
)

type Style int

const (
	// StylePlain picks a catalog name and sometimes appends a number.
	StylePlain Style = iota
	// StyleDecorated picks a catalog name and sometimes adds a prefix and a
	// dash suffix.
	StyleDecorated
)

func (s *Style) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "plain":
		*s = StylePlain
	case "decorated":
		*s = StyleDecorated
	default:
		return fmt.Errorf("unknown naming style: %s", text)
	}
	return nil
}

func (s Style) String() string {
	switch s {
	case StyleDecorated:
		return "decorated"
	default:
		return "plain"
	}
}

// Generator produces random toll booth names from a Catalog. It is not safe
// for concurrent use.
type Generator struct {
	catalog *Catalog
	style   Style
	seed    uint64
	rng     *rand.Rand
}

func NewGenerator(catalog *Catalog, opts ...GeneratorOpt) (*Generator, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	g := &Generator{
		catalog: catalog,
		seed:    uint64(time.Now().UnixNano()),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.style == StyleDecorated {
		if len(catalog.Prefixes) == 0 || len(catalog.Suffixes) == 0 {
			return nil, fmt.Errorf("decorated style requires prefixes and suffixes")
		}
		if err := catalog.validateDecorated(); err != nil {
			return nil, fmt.Errorf("validating catalog: %w", err)
		}
	}

	g.rng = rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	return g, nil
}

func (g *Generator) Generate() tollbooth.Name {
	base := g.pick(g.catalog.Names)

	switch g.style {
	case StyleDecorated:
		if g.rng.IntN(100) < prefixChance {
			base = fmt.Sprintf("%s %s", g.pick(g.catalog.Prefixes), base)
		}
		if g.rng.IntN(100) < suffixChance {
			base = fmt.Sprintf("%s-%s", base, g.pick(g.catalog.Suffixes))
		}
		return tollbooth.NewName(base)

	default:
		n := 1 + g.rng.IntN(99)
		if g.rng.IntN(100) < numberChance {
			return tollbooth.NewName(fmt.Sprintf("%s %d", base, n))
		}
		return tollbooth.NewName(base)
	}
}

func (g *Generator) pick(from []string) string {
	return from[g.rng.IntN(len(from))]
}
