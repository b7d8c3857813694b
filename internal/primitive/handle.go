package primitive

import (
	"fmt"

	"github.com/alexisbeaulieu97/headless/internal/a11y"
	"github.com/alexisbeaulieu97/headless/internal/logic"
)

// Handle is the view of a live primitive handed to adapters: state access,
// change subscription, accessibility props and interaction handlers.
type Handle[S any] struct {
	p *Primitive[S]
}

// Descriptor returns the type metadata.
func (h *Handle[S]) Descriptor() Descriptor {
	return h.p.descriptor
}

// ID returns the instance identity.
func (h *Handle[S]) ID() string {
	return h.p.id
}

// State returns the current state snapshot.
func (h *Handle[S]) State() S {
	return h.p.st.Get()
}

// Subscribe registers fn for state commits; returns an unsubscribe func.
func (h *Handle[S]) Subscribe(fn func(S)) func() {
	return h.p.st.Subscribe(fn)
}

// Changed registers a snapshot-free change signal, for callers that only
// need to know when to re-read.
func (h *Handle[S]) Changed(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return h.p.st.Subscribe(func(S) { fn() })
}

// A11yProps returns the accessibility attributes for the named element.
func (h *Handle[S]) A11yProps(element logic.ElementName) a11y.Props {
	return h.p.lg.A11yProps(element)
}

// InteractionHandlers returns the bound interaction handlers for the named
// element.
func (h *Handle[S]) InteractionHandlers(element logic.ElementName) map[logic.InteractionName]func(native any) error {
	return h.p.lg.InteractionHandlers(element)
}

// Trigger invokes one interaction handler directly. Unknown element or
// interaction names are reported as errors so adapters surface wiring
// mistakes instead of dropping input.
func (h *Handle[S]) Trigger(element logic.ElementName, interaction logic.InteractionName, native any) error {
	handlers := h.p.lg.InteractionHandlers(element)
	handler, ok := handlers[interaction]
	if !ok {
		return fmt.Errorf("primitive %q has no %q interaction on element %q", h.p.descriptor.Type, interaction, element)
	}
	return handler(native)
}

// Close tears down the underlying instance.
func (h *Handle[S]) Close() {
	h.p.Close()
}

// Mounted is the non-generic surface of a live primitive, used by the
// registry and introspection tooling where the state type is not known
// statically.
type Mounted interface {
	Descriptor() Descriptor
	ID() string
	A11yProps(element logic.ElementName) a11y.Props
	Trigger(element logic.ElementName, interaction logic.InteractionName, native any) error
	Changed(fn func()) func()
	Close()
}

var _ Mounted = (*Handle[struct{}])(nil)
