package clock

import "time"

// Clock is injected wherever scheduling rules compare against "now" so that
// tests can pin time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	current time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (c *MockClock) Now() time.Time {
	return c.current
}

func (c *MockClock) Set(t time.Time) {
	c.current = t
}

func (c *MockClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
