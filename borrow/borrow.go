package borrow

import (
	"sync/atomic"
	"time"
)

type Option func(*Options)

type Options struct {
	Observer Observer
}

func defaultOptions() Options { return Options{} }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Observer receives lifecycle hooks from a Guard and its Handles. The
// live/outstanding counts let an embedding program see what a slow
// teardown is waiting on. Hooks run inline on the calling goroutine and
// must be cheap and non-blocking.
type Observer interface {
	GuardCreated()
	HandleAcquired(live int)
	HandleReleased(live int)
	TeardownStarted(outstanding int)
	TeardownFinished(wait time.Duration)
}

// Guard wraps a value the caller owns and broadcasts read access to it
// through Handles. The caller must not mutate or free the value until
// Close has returned; Close blocks until every Handle is released, which
// is what makes the borrow sound.
type Guard[T any] struct {
	data *T
	rc   *refCount

	opts Options
	obs  Observer
}

// New wraps v in a Guard. The Guard borrows v; ownership and lifetime
// responsibility stay with the caller.
func New[T any](v *T, optFns ...Option) *Guard[T] {
	g := &Guard[T]{data: v, rc: newRefCount(), opts: defaultOptions()}
	for _, fn := range optFns {
		fn(&g.opts)
	}
	g.obs = g.opts.Observer
	if g.obs != nil {
		g.obs.GuardCreated()
	}
	return g
}

// Get mints a new Handle on the Guard's value. Each call is independent;
// there is no bound on concurrent handles. Callers must not call Get once
// Close has begun — the Guard does not detect this, and a handle minted
// during teardown may outlive the borrow it depends on.
func (g *Guard[T]) Get() *Handle[T] {
	n := g.rc.acquire()
	if g.obs != nil {
		g.obs.HandleAcquired(n)
	}
	return &Handle[T]{data: g.data, rc: g.rc, obs: g.obs}
}

// Live reports how many handles are currently outstanding.
func (g *Guard[T]) Live() int { return g.rc.live() }

// Close tears the Guard down, blocking until every Handle minted from it
// has been released. With no live handles it returns immediately. Close
// must not be called from a goroutine that still owns an unreleased
// Handle, and should not be called while holding locks a handle-owning
// goroutine may need — either deadlocks by construction. After Close
// returns the caller may freely mutate or destroy the value.
func (g *Guard[T]) Close() {
	outstanding := g.rc.live()
	if g.obs != nil {
		g.obs.TeardownStarted(outstanding)
	}
	start := time.Now()
	g.rc.waitUntilZero()
	if g.obs != nil {
		g.obs.TeardownFinished(time.Since(start))
	}
}

// Handle is a read-only capability on a Guard's value. It may be moved
// to and released from any goroutine. Release must be called exactly
// once; a leaked Handle blocks the Guard's Close forever.
type Handle[T any] struct {
	data     *T
	rc       *refCount
	obs      Observer
	released atomic.Bool
}

// Value reads the borrowed value. Valid from creation until Release.
func (h *Handle[T]) Value() T {
	if h.released.Load() {
		panic("borrow: Value on released handle")
	}
	return *h.data
}

// Release ends the borrow, waking a blocked Close once this was the last
// live handle. It is a run-time error to release a handle twice.
func (h *Handle[T]) Release() {
	if !h.released.CompareAndSwap(false, true) {
		panic("borrow: handle released twice")
	}
	n := h.rc.release()
	if h.obs != nil {
		h.obs.HandleReleased(n)
	}
}
