package store

import "sync"

// Derived is a read-only projection of a base Store through a selector.
// Get always recomputes from the base store's current state. Subscribers
// are notified only when the selected value actually changes between
// commits, which is why V must be comparable.
type Derived[S any, V comparable] struct {
	base     *Store[S]
	selector func(S) V
}

// Derive creates a projection of base through selector.
func Derive[S any, V comparable](base *Store[S], selector func(S) V) *Derived[S, V] {
	return &Derived[S, V]{base: base, selector: selector}
}

// Get returns selector applied to the base store's current state.
func (d *Derived[S, V]) Get() V {
	return d.selector(d.base.Get())
}

// Subscribe registers fn to run with the new selected value whenever a base
// commit changes it. Returns an unsubscribe function.
func (d *Derived[S, V]) Subscribe(fn func(V)) func() {
	if fn == nil {
		return func() {}
	}

	// Commits can arrive from the owning goroutine and from timer fires, so
	// the change tracking is guarded.
	var mu sync.Mutex
	last := d.selector(d.base.Get())
	return d.base.Subscribe(func(state S) {
		next := d.selector(state)
		mu.Lock()
		changed := next != last
		last = next
		mu.Unlock()
		if changed {
			fn(next)
		}
	})
}
