package network

import (
	"sync"
	"time"
)

// clockSmoothing is how far each new pong moves the offset estimate.
const clockSmoothing = 0.25

// Clock estimates the server clock from Ping/Pong round trips. Local times
// are durations since the clock was created.
type Clock struct {
	mu     sync.Mutex
	start  time.Time
	offset time.Duration // server minus local
	rtt    time.Duration
	synced bool
}

func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

// Local returns the local clock.
func (c *Clock) Local() time.Duration {
	return time.Since(c.start)
}

// Observe folds one Pong into the estimate. sent is the local time the Ping
// left, received the local time the Pong arrived.
func (c *Clock) Observe(sent, server, received time.Duration) {
	rtt := max(received-sent, 0)
	sample := server + rtt/2 - received

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rtt = rtt
	if !c.synced {
		c.offset = sample
		c.synced = true
		return
	}
	c.offset += time.Duration(float64(sample-c.offset) * clockSmoothing)
}

// Reset seeds the estimate with a server time received without a round trip,
// such as the one in JoinAccepted.
func (c *Clock) Reset(server, received time.Duration) {
	c.mu.Lock()
	c.offset = server - received
	c.rtt = 0
	c.synced = true
	c.mu.Unlock()
}

// ServerAt converts a local time to the estimated server time.
func (c *Clock) ServerAt(local time.Duration) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return local + c.offset
}

// ServerNow returns the estimated current server time.
func (c *Clock) ServerNow() time.Duration {
	return c.ServerAt(c.Local())
}

// RTT returns the last measured round trip.
func (c *Clock) RTT() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rtt
}

// Synced reports whether the clock has seen the server at least once.
func (c *Clock) Synced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.synced
}
