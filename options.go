package formstamp

import (
	"time"

	"go.uber.org/zap"

	"github.com/lvillar/formstamp/profile"
)

// Option is a functional option for configuring a Stamper via New.
type Option func(*Stamper)

// WithProfile selects the template layout profile. Defaults to
// profile.Default().
func WithProfile(p *profile.Profile) Option {
	return func(s *Stamper) {
		if p != nil {
			s.profile = p
		}
	}
}

// WithFont overrides the profile's font family and size for overlay text.
// An empty family or non-positive size keeps the profile's value.
func WithFont(family string, size float64) Option {
	return func(s *Stamper) {
		s.font = family
		s.size = size
	}
}

// WithNow sets the clock used for the date default when the input record
// carries no date. Defaults to time.Now.
func WithNow(now func() time.Time) Option {
	return func(s *Stamper) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used for layout overflow reporting.
// Overflow is a policy, not an error; it is logged at Debug and never
// fails a request. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Stamper) {
		if log != nil {
			s.log = log
		}
	}
}
