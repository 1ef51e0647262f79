package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/giftcard/engine/status"
)

// Task is a handle to a scheduled callback
// A nil *Task is valid and behaves as an already cancelled task
type Task struct {
	id       uint64
	deadline time.Time
	interval time.Duration // 0 = one-shot
	fn       func()
	done     bool
}

// Cancel prevents any further firing; safe to call repeatedly and on nil
func (t *Task) Cancel() {
	if t != nil {
		t.done = true
	}
}

// Active reports whether the task can still fire
func (t *Task) Active() bool {
	return t != nil && !t.done
}

// Deadline returns the next time the task is due
func (t *Task) Deadline() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.deadline
}

// Scheduler is the cooperative timer queue of the single event loop
// All callbacks run synchronously inside Update on the caller's goroutine; the scheduler
// never spawns goroutines and is not safe for concurrent use
type Scheduler struct {
	clock  TimeProvider
	tasks  []*Task
	nextID uint64

	statFired     *atomic.Int64
	statScheduled *atomic.Int64
	statCancelled *atomic.Int64
}

// NewScheduler creates a scheduler reading time from clock
// reg may be nil
func NewScheduler(clock TimeProvider, reg *status.Registry) *Scheduler {
	return &Scheduler{
		clock:         clock,
		statFired:     reg.Counter("scheduler.fired"),
		statScheduled: reg.Counter("scheduler.scheduled"),
		statCancelled: reg.Counter("scheduler.cancelled"),
	}
}

// Now returns the scheduler's current time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// After schedules fn to run once, d from now
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	return s.add(d, 0, fn)
}

// Every schedules fn to run every d, first at now+d
// Intervals below one millisecond are raised to one millisecond
func (s *Scheduler) Every(d time.Duration, fn func()) *Task {
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(delay, interval time.Duration, fn func()) *Task {
	s.nextID++
	t := &Task{
		id:       s.nextID,
		deadline: s.clock.Now().Add(delay),
		interval: interval,
		fn:       fn,
	}
	s.tasks = append(s.tasks, t)
	s.statScheduled.Add(1)
	return t
}

// Update fires every task that is due, in deadline order with ties broken by creation order
// Interval tasks catch up one interval at a time, so a late frame yields the same sequence of
// ticks as punctual ones. Tasks created by callbacks during this Update wait for the next one.
// Cancellation is re-checked before every fire. Returns the number of callbacks run.
func (s *Scheduler) Update() int {
	now := s.clock.Now()
	limit := s.nextID
	fired := 0

	for {
		t := s.nextDue(now, limit)
		if t == nil {
			break
		}
		if t.interval > 0 {
			t.deadline = t.deadline.Add(t.interval)
		} else {
			t.done = true
		}
		t.fn()
		fired++
	}

	if fired > 0 {
		s.statFired.Add(int64(fired))
	}
	s.compact()
	return fired
}

// nextDue returns the earliest live task with deadline <= now created before limit
func (s *Scheduler) nextDue(now time.Time, limit uint64) *Task {
	var best *Task
	for _, t := range s.tasks {
		if t.done || t.id > limit || t.deadline.After(now) {
			continue
		}
		if best == nil || t.deadline.Before(best.deadline) ||
			(t.deadline.Equal(best.deadline) && t.id < best.id) {
			best = t
		}
	}
	return best
}

// compact drops finished tasks from the queue
func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.done {
			continue
		}
		live = append(live, t)
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Pending returns the number of tasks that can still fire
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// NextDeadline returns the earliest deadline among live tasks
func (s *Scheduler) NextDeadline() (time.Time, bool) {
	var next time.Time
	found := false
	for _, t := range s.tasks {
		if t.done {
			continue
		}
		if !found || t.deadline.Before(next) {
			next = t.deadline
			found = true
		}
	}
	return next, found
}

// CancelAll cancels every live task
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		if !t.done {
			t.done = true
			s.statCancelled.Add(1)
		}
	}
	s.compact()
}

// NewScope returns a cancellation scope whose tasks all die with it
func (s *Scheduler) NewScope() *Scope {
	return &Scope{sched: s}
}

// Scope groups tasks under one cancellation token
// Mounted views own exactly one scope; unmounting cancels it
type Scope struct {
	sched  *Scheduler
	tasks  []*Task
	closed bool
}

// After schedules a one-shot task inside the scope
// A closed scope returns an inert task that never fires
func (sc *Scope) After(d time.Duration, fn func()) *Task {
	if sc.closed {
		return &Task{done: true}
	}
	return sc.track(sc.sched.After(d, fn))
}

// Every schedules an interval task inside the scope
func (sc *Scope) Every(d time.Duration, fn func()) *Task {
	if sc.closed {
		return &Task{done: true}
	}
	return sc.track(sc.sched.Every(d, fn))
}

func (sc *Scope) track(t *Task) *Task {
	live := sc.tasks[:0]
	for _, old := range sc.tasks {
		if !old.done {
			live = append(live, old)
		}
	}
	sc.tasks = append(live, t)
	return t
}

// Now returns the owning scheduler's current time
func (sc *Scope) Now() time.Time {
	return sc.sched.Now()
}

// Cancel cancels every task of the scope and closes it against new ones
func (sc *Scope) Cancel() {
	if sc.closed {
		return
	}
	sc.closed = true
	for _, t := range sc.tasks {
		if !t.done {
			t.done = true
			sc.sched.statCancelled.Add(1)
		}
	}
	sc.tasks = nil
}

// Closed reports whether Cancel has been called
func (sc *Scope) Closed() bool {
	return sc.closed
}

// Live returns the number of tasks of the scope that can still fire
func (sc *Scope) Live() int {
	n := 0
	for _, t := range sc.tasks {
		if !t.done {
			n++
		}
	}
	return n
}
