// Package clock provides an injectable time source so engine timestamps are
// controllable in tests.
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/wildlands/hexcrawl-api/internal/pkg/clock Clock

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using the system time.
type Real struct{}

// Now returns the current system time.
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a real clock.
func New() Clock {
	return &Real{}
}

// Fixed is a Clock pinned to one instant, for tests that need stable
// travel log timestamps.
type Fixed struct {
	T time.Time
}

// Now returns the pinned instant.
func (c *Fixed) Now() time.Time {
	return c.T
}
