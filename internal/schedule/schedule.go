// Package schedule provides cancellable delayed tasks.
//
// Timers runs tasks on real timers. Manual runs them only when its clock is
// advanced, so callers can assert scheduled work without sleeping.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Task is a handle to a scheduled function.
type Task interface {
	// Stop cancels the task. It reports whether the call prevented the run.
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// Timers schedules tasks with time.AfterFunc and tracks the ones still pending.
type Timers struct {
	wg sync.WaitGroup
}

type timerTask struct {
	t    *time.Timer
	once sync.Once
	done func()
}

func (t *timerTask) Stop() bool {
	stopped := t.t.Stop()
	if stopped {
		t.once.Do(t.done)
	}
	return stopped
}

// AfterFunc schedules f on a real timer.
func (s *Timers) AfterFunc(d time.Duration, f func()) Task {
	s.wg.Add(1)
	task := &timerTask{done: s.wg.Done}
	task.t = time.AfterFunc(d, func() {
		defer task.once.Do(task.done)
		f()
	})
	return task
}

// Wait blocks until every task scheduled so far has run or been stopped.
func (s *Timers) Wait() {
	s.wg.Wait()
}

// Manual is a fake clock for tests. Nothing runs until Advance is called.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	m   *Manual
	at  time.Time
	seq int
	f   func()
}

// NewManual returns a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// AfterFunc registers f to run once the clock has advanced by d.
func (m *Manual) AfterFunc(d time.Duration, f func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTask{m: m, at: m.now.Add(d), seq: m.seq, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

func (t *manualTask) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for i, other := range t.m.tasks {
		if other == t {
			t.m.tasks = append(t.m.tasks[:i], t.m.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Now returns the current fake time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of tasks that have not yet run or been stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves the clock forward and runs every task that became due, in
// deadline order. Tasks run outside the lock so they may schedule more work.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	var due, rest []*manualTask
	for _, t := range m.tasks {
		if !t.at.After(m.now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	m.tasks = rest
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, t := range due {
		t.f()
	}
}
