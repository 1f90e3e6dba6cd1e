package store

import "time"

// Option configures an InMemoryStore at construction time.
type Option func(*InMemoryStore)

// WithClock overrides the time source used to default sale dates.
func WithClock(now func() time.Time) Option {
	return func(s *InMemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStrictDates makes RegisterSale reject dates that do not parse as
// YYYY-MM-DD. The default accepts any non-empty string as given.
func WithStrictDates(strict bool) Option {
	return func(s *InMemoryStore) {
		s.strictDates = strict
	}
}
