package tollbooth

import "context"

// Scanner enumerates the toll booths currently present in a Store.
type Scanner struct {
	store Store
}

func NewScanner(store Store) *Scanner {
	return &Scanner{store: store}
}

// Scan returns the live toll booths in store order. A failing query is
// returned as a *QueryFailure.
func (s *Scanner) Scan(ctx context.Context) ([]Candidate, error) {
	candidates, err := s.store.Query(ctx)
	if err != nil {
		return nil, &QueryFailure{Err: err}
	}
	return candidates, nil
}
