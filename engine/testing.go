package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a hand-driven clock for tests and scripted playback
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider starts the mock clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// SetTime jumps the clock to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Step advances clock by total in increments of step, running the scheduler after each
// increment the way the frame loop would. Returns the number of tasks fired.
func Step(clock *MockTimeProvider, s *Scheduler, total, step time.Duration) int {
	if step <= 0 {
		step = total
	}
	fired := 0
	for elapsed := time.Duration(0); elapsed < total; {
		d := step
		if elapsed+d > total {
			d = total - elapsed
		}
		clock.Advance(d)
		elapsed += d
		fired += s.Update()
	}
	return fired
}
