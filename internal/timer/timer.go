// Package timer abstracts one-shot timers behind a Clock so that
// component-owned delays (auto-close, debounce) can be driven by virtual
// time in tests.
package timer

import "time"

// Handle controls a scheduled callback. Stop reports whether the callback
// was prevented from running; it returns false if the timer already fired
// or was already stopped.
type Handle interface {
	Stop() bool
}

// Clock schedules a callback to run once after the given duration.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Handle
}

// Real returns a Clock backed by the system timer.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Handle {
	return realHandle{t: time.AfterFunc(d, fn)}
}

type realHandle struct {
	t *time.Timer
}

func (h realHandle) Stop() bool {
	return h.t.Stop()
}

// Noop returns a Handle that controls nothing. Stop always reports false.
func Noop() Handle {
	return noopHandle{}
}

type noopHandle struct{}

func (noopHandle) Stop() bool { return false }
