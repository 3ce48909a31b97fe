package tollbooth

type EngineOpt func(*Engine)

// WithEvictEvery runs the eviction sweep every n ticks instead of every tick.
func WithEvictEvery(n uint64) EngineOpt {
	return func(e *Engine) {
		if n > 0 {
			e.evictEvery = n
		}
	}
}

// WithHooks adds post-assignment hooks, run in the given order.
func WithHooks(hooks ...Hook) EngineOpt {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks...)
	}
}
