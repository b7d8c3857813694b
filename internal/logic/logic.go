// Package logic implements the interaction and accessibility layer of a
// primitive: declarative event handlers, per-element accessibility
// generators, and per-element interaction mappers, assembled with a builder
// and executed by a connected instance.
package logic

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/headless/internal/a11y"
	"github.com/alexisbeaulieu97/headless/internal/store"
	"github.com/alexisbeaulieu97/headless/internal/timer"
	"github.com/alexisbeaulieu97/headless/pkg/errors"
)

// EventName identifies a domain event. Component packages declare their
// event names as typed constants rather than free strings.
type EventName string

// ElementName identifies a named sub-element of a primitive.
type ElementName string

// InteractionName identifies a native interaction kind (click, keydown, ...).
type InteractionName string

// EventHandler reacts to a dispatched event. It receives the current state
// as an argument and must not read it back from the store. Returning a
// non-empty EventName requests one chained dispatch.
type EventHandler[S any] func(state S, payload any) (EventName, error)

// A11yFunc computes the accessibility attributes of one element. It must be
// a pure function of state.
type A11yFunc[S any] func(state S) a11y.Props

// InteractionFunc maps a native interaction to a domain event. Returning an
// empty EventName means the mapper already performed its side effect.
type InteractionFunc[S any] func(state S, native any) (EventName, error)

// SetupFunc runs once during Initialize, typically to start timers.
type SetupFunc[S any] func(inst *Instance[S])

// Phase is the lifecycle state of a logic instance.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseConnected
	PhaseActive
	PhaseDisposed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseConnected:
		return "connected"
	case PhaseActive:
		return "active"
	case PhaseDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Builder assembles the registration tables for one component type.
// Registration order is irrelevant; the last registration per key wins.
type Builder[S any] struct {
	name         string
	events       map[EventName]EventHandler[S]
	a11y         map[ElementName]A11yFunc[S]
	interactions map[ElementName]map[InteractionName]InteractionFunc[S]
	setup        SetupFunc[S]
}

// NewBuilder creates a Builder for the named component type.
func NewBuilder[S any](name string) *Builder[S] {
	return &Builder[S]{
		name:         name,
		events:       make(map[EventName]EventHandler[S]),
		a11y:         make(map[ElementName]A11yFunc[S]),
		interactions: make(map[ElementName]map[InteractionName]InteractionFunc[S]),
	}
}

// OnEvent registers the handler for an event name.
func (b *Builder[S]) OnEvent(name EventName, handler EventHandler[S]) *Builder[S] {
	b.events[name] = handler
	return b
}

// WithA11y registers the accessibility generator for an element.
func (b *Builder[S]) WithA11y(element ElementName, fn A11yFunc[S]) *Builder[S] {
	b.a11y[element] = fn
	return b
}

// WithInteraction registers the mapper for one interaction on one element.
func (b *Builder[S]) WithInteraction(element ElementName, interaction InteractionName, fn InteractionFunc[S]) *Builder[S] {
	mappers, ok := b.interactions[element]
	if !ok {
		mappers = make(map[InteractionName]InteractionFunc[S])
		b.interactions[element] = mappers
	}
	mappers[interaction] = fn
	return b
}

// WithSetup registers the one-time setup hook run by Initialize.
func (b *Builder[S]) WithSetup(fn SetupFunc[S]) *Builder[S] {
	b.setup = fn
	return b
}

// Build snapshots the registrations into an immutable Logic table. The
// builder can be discarded afterwards.
func (b *Builder[S]) Build() *Logic[S] {
	events := make(map[EventName]EventHandler[S], len(b.events))
	for name, handler := range b.events {
		events[name] = handler
	}
	generators := make(map[ElementName]A11yFunc[S], len(b.a11y))
	for element, fn := range b.a11y {
		generators[element] = fn
	}
	interactions := make(map[ElementName]map[InteractionName]InteractionFunc[S], len(b.interactions))
	for element, mappers := range b.interactions {
		copied := make(map[InteractionName]InteractionFunc[S], len(mappers))
		for interaction, fn := range mappers {
			copied[interaction] = fn
		}
		interactions[element] = copied
	}

	return &Logic[S]{
		name:         b.name,
		events:       events,
		a11y:         generators,
		interactions: interactions,
		setup:        b.setup,
	}
}

// Logic is the immutable registration table produced by a Builder. One
// Logic value can back any number of instances.
type Logic[S any] struct {
	name         string
	events       map[EventName]EventHandler[S]
	a11y         map[ElementName]A11yFunc[S]
	interactions map[ElementName]map[InteractionName]InteractionFunc[S]
	setup        SetupFunc[S]
}

// Name returns the component type the table was built for.
func (l *Logic[S]) Name() string {
	return l.name
}

// Events lists the registered event names in sorted order.
func (l *Logic[S]) Events() []EventName {
	names := make([]EventName, 0, len(l.events))
	for name := range l.events {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Elements lists every element with an accessibility generator or an
// interaction mapper, sorted.
func (l *Logic[S]) Elements() []ElementName {
	seen := make(map[ElementName]struct{}, len(l.a11y)+len(l.interactions))
	for element := range l.a11y {
		seen[element] = struct{}{}
	}
	for element := range l.interactions {
		seen[element] = struct{}{}
	}
	names := make([]ElementName, 0, len(seen))
	for element := range seen {
		names = append(names, element)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Instance creates a fresh, unconnected instance of this table. A nil clock
// selects the system timer.
func (l *Logic[S]) Instance(clk timer.Clock) *Instance[S] {
	if clk == nil {
		clk = timer.Real()
	}
	return &Instance[S]{table: l, clock: clk}
}

// Instance executes one component instance's logic against exactly one
// Store. Handlers, mappers, setup and lifecycle transitions are serialized
// on runMu: the system timer fires callbacks on its own goroutine, and
// those dispatches must not interleave with the owning goroutine's. mu
// guards the lifecycle fields themselves so timer wrappers can check the
// phase without waiting on a running dispatch.
type Instance[S any] struct {
	runMu sync.Mutex
	mu    sync.Mutex

	table     *Logic[S]
	st        *store.Store[S]
	phase     Phase
	clock     timer.Clock
	timers    []timer.Handle
	teardowns []func()
}

// Phase returns the current lifecycle phase.
func (i *Instance[S]) Phase() Phase {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.phase
}

// Store returns the connected store, or nil before Connect / after Close.
func (i *Instance[S]) Store() *store.Store[S] {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.st
}

// Connect binds the instance to its store. It must be called exactly once,
// before any other instance operation.
func (i *Instance[S]) Connect(st *store.Store[S]) error {
	i.runMu.Lock()
	defer i.runMu.Unlock()
	i.mu.Lock()
	defer i.mu.Unlock()

	if st == nil {
		return errors.NewConfigurationError(i.table.name, "connect requires a store", nil)
	}
	if i.phase != PhaseUninitialized {
		return errors.NewConfigurationError(i.table.name,
			fmt.Sprintf("connect called on %s instance; a logic instance binds to exactly one store", i.phase), nil)
	}

	i.st = st
	i.phase = PhaseConnected
	return nil
}

// Initialize runs the one-time setup hook and activates the instance.
// Calling it on an already active instance is a no-op.
func (i *Instance[S]) Initialize() error {
	i.runMu.Lock()
	defer i.runMu.Unlock()

	i.mu.Lock()
	switch i.phase {
	case PhaseUninitialized:
		i.mu.Unlock()
		return errors.NewConfigurationError(i.table.name, "initialize called before connect", nil)
	case PhaseActive:
		i.mu.Unlock()
		return nil
	case PhaseDisposed:
		i.mu.Unlock()
		return errors.NewConfigurationError(i.table.name, "initialize called on disposed instance", nil)
	}
	i.phase = PhaseActive
	i.mu.Unlock()

	if i.table.setup != nil {
		i.table.setup(i)
	}
	return nil
}

// HandleEvent dispatches a named event. The payload may be the raw domain
// value, an Envelope, or a single-key {"event": value} map; handlers see
// the unwrapped value in all three cases. A handler returning another event
// name triggers at most one chained dispatch; deeper chains are ignored.
// Events without a registered handler are ignored. After Close this is a
// safe no-op, since unmount ordering cannot be relied on to stop in-flight
// events.
func (i *Instance[S]) HandleEvent(name EventName, payload any) error {
	i.runMu.Lock()
	defer i.runMu.Unlock()

	i.mu.Lock()
	phase, st := i.phase, i.st
	i.mu.Unlock()

	if phase == PhaseDisposed {
		return nil
	}
	if st == nil {
		return errors.NewConfigurationError(i.table.name, "handle event called before connect", nil)
	}
	return i.dispatch(name, Normalize(payload), 0)
}

func (i *Instance[S]) dispatch(name EventName, payload any, depth int) error {
	handler, ok := i.table.events[name]
	if !ok {
		return nil
	}

	next, err := handler(i.st.Get(), payload)
	if err != nil {
		return err
	}
	if next == "" || depth >= 1 {
		return nil
	}
	return i.dispatch(next, payload, depth+1)
}

// A11yProps evaluates the element's accessibility generator against the
// current state. Unregistered elements and unconnected or disposed
// instances yield an empty record.
func (i *Instance[S]) A11yProps(element ElementName) a11y.Props {
	i.mu.Lock()
	phase, st := i.phase, i.st
	i.mu.Unlock()

	if st == nil || phase == PhaseDisposed {
		return a11y.Props{}
	}
	fn, ok := i.table.a11y[element]
	if !ok {
		return a11y.Props{}
	}
	return fn(st.Get())
}

// InteractionHandlers returns the bound interaction handlers for an
// element. Each handler runs its mapper with the current state; when the
// mapper names an event, the handler dispatches it with the raw native
// event as payload. Handlers become no-ops once the instance is disposed.
func (i *Instance[S]) InteractionHandlers(element ElementName) map[InteractionName]func(native any) error {
	handlers := make(map[InteractionName]func(native any) error, len(i.table.interactions[element]))
	for interaction, fn := range i.table.interactions[element] {
		mapper := fn
		handlers[interaction] = func(native any) error {
			i.runMu.Lock()
			defer i.runMu.Unlock()

			i.mu.Lock()
			active := i.phase == PhaseActive
			i.mu.Unlock()
			if !active {
				return nil
			}

			event, err := mapper(i.st.Get(), native)
			if err != nil {
				return err
			}
			if event == "" {
				return nil
			}
			return i.dispatch(event, Normalize(native), 0)
		}
	}
	return handlers
}

// StartTimer schedules an instance-owned callback. The handle is cancelled
// on Close, and the callback is suppressed if the instance is no longer
// active when it fires. Calling StartTimer on an inactive instance returns
// an inert handle. Callable from within handlers and setup.
func (i *Instance[S]) StartTimer(d time.Duration, fn func()) timer.Handle {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.phase != PhaseActive || fn == nil {
		return timer.Noop()
	}

	h := i.clock.AfterFunc(d, func() {
		// First-pass check only; the dispatch the callback performs makes
		// its own serialized phase check.
		i.mu.Lock()
		active := i.phase == PhaseActive
		i.mu.Unlock()
		if !active {
			return
		}
		fn()
	})
	i.timers = append(i.timers, h)
	return h
}

// OnCleanup registers fn to run during Close, in reverse registration
// order.
func (i *Instance[S]) OnCleanup(fn func()) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if fn == nil || i.phase == PhaseDisposed {
		return
	}
	i.teardowns = append(i.teardowns, fn)
}

// Close cancels owned timers, runs registered teardowns, detaches the
// store and moves the instance to its terminal phase. It is idempotent.
// The disposed phase is published before the teardowns run, so a timer
// firing concurrently no-ops instead of dispatching into a dying instance.
func (i *Instance[S]) Close() {
	i.runMu.Lock()
	i.mu.Lock()
	if i.phase == PhaseDisposed {
		i.mu.Unlock()
		i.runMu.Unlock()
		return
	}
	i.phase = PhaseDisposed
	timers := i.timers
	teardowns := i.teardowns
	i.timers = nil
	i.teardowns = nil
	i.st = nil
	i.mu.Unlock()
	i.runMu.Unlock()

	for _, h := range timers {
		h.Stop()
	}
	for j := len(teardowns) - 1; j >= 0; j-- {
		teardowns[j]()
	}
}
