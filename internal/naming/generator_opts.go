package naming

type GeneratorOpt func(*Generator)

// WithSeed makes the generator's output reproducible.
func WithSeed(seed uint64) GeneratorOpt {
	return func(g *Generator) {
		g.seed = seed
	}
}

func WithStyle(s Style) GeneratorOpt {
	return func(g *Generator) {
		g.style = s
	}
}
