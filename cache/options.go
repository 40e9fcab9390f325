package cache

import "time"

type settings struct {
	now func() time.Time
}

// Option configures a cache implementation
type Option func(*settings)

// WithClock overrides the time source used to stamp and age entries
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func applyOptions(opts []Option) settings {
	s := settings{now: time.Now}
	for _, o := range opts {
		o(&s)
	}
	return s
}
