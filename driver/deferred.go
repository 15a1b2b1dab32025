package driver

import (
	"sync"
	"time"
)

// deferredTask runs a callback once after a delay. At most one callback is
// armed at a time; arming again replaces the pending one. CancelAndJoin
// blocks until any in-flight callback has returned, so resources released
// afterwards cannot be touched by a concurrently firing callback.
type deferredTask struct {
	mu    sync.Mutex
	timer *time.Timer
	wg    sync.WaitGroup
}

// Arm schedules fn to run after d, replacing a previously armed callback
// that has not fired yet. A callback that is already executing is left
// alone; it is accounted for until it returns.
func (t *deferredTask) Arm(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil && t.timer.Stop() {
		// the pending callback will never run; settle its accounting here.
		t.wg.Done()
	}

	t.wg.Add(1)

	t.timer = time.AfterFunc(d, func() {
		defer t.wg.Done()

		fn()
	})
}

// CancelAndJoin unarms the pending callback (if any) and waits for an
// in-flight one to finish. Callers must guarantee no further Arm() happens
// concurrently with or after the join.
func (t *deferredTask) CancelAndJoin() {
	t.mu.Lock()

	if t.timer != nil {
		if t.timer.Stop() {
			t.wg.Done()
		}

		t.timer = nil
	}

	t.mu.Unlock()

	t.wg.Wait()
}
