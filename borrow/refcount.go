package borrow

import "sync"

// refCount is the shared wait block held jointly by a Guard and every
// Handle minted from it. It lives in its own allocation so that handles
// keep it reachable on their own, independent of the Guard.
type refCount struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

func newRefCount() *refCount {
	rc := &refCount{}
	rc.cond = sync.NewCond(&rc.mu)
	return rc
}

// acquire registers one more live handle and returns the new count.
func (rc *refCount) acquire() int {
	rc.mu.Lock()
	rc.count++
	n := rc.count
	rc.mu.Unlock()
	return n
}

// release unregisters a live handle, wakes the teardown waiter if one is
// parked, and returns the new count. It is a run-time error to release
// more often than acquired.
func (rc *refCount) release() int {
	rc.mu.Lock()
	if rc.count == 0 {
		rc.mu.Unlock()
		panic("borrow: release without matching acquire")
	}
	rc.count--
	n := rc.count
	rc.cond.Signal()
	rc.mu.Unlock()
	return n
}

// waitUntilZero parks the caller until the count reaches zero. The
// predicate is checked before the first wait and after every wake, so a
// zero count returns immediately and spurious wakeups are harmless.
func (rc *refCount) waitUntilZero() {
	rc.mu.Lock()
	for rc.count != 0 {
		rc.cond.Wait()
	}
	rc.mu.Unlock()
}

func (rc *refCount) live() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.count
}
