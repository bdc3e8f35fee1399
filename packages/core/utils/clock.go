package utils

import "time"

// Clock provides the current time so tests can pin it.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant until moved.
type FixedClock struct {
	CurrentTime time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{CurrentTime: t}
}

func (c *FixedClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// NowSeconds returns clock's current time in UTC truncated to whole seconds,
// the resolution of every stored timestamp.
func NowSeconds(clock Clock) time.Time {
	return clock.Now().UTC().Truncate(time.Second)
}
