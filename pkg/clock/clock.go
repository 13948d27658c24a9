package clock

import (
	"sync"
	"time"
)

type Clock interface {
	NowUtc() time.Time
}

type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (c *RealClock) NowUtc() time.Time {
	return time.Now().UTC()
}

// StubClock returns a fixed instant until moved with SetNow or Advance.
type StubClock struct {
	now  time.Time
	lock sync.Mutex
}

func NewStubClock(now time.Time) *StubClock {
	return &StubClock{now: now.UTC()}
}

func (c *StubClock) NowUtc() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *StubClock) SetNow(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = now.UTC()
}

func (c *StubClock) Advance(d time.Duration) time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
