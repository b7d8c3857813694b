// Package primitive packages a component type's metadata together with a
// concrete store and logic instance into one addressable, framework-agnostic
// unit, and keeps a registry of the available types.
package primitive

import (
	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/headless/internal/logic"
	"github.com/alexisbeaulieu97/headless/internal/store"
	headlesserrors "github.com/alexisbeaulieu97/headless/pkg/errors"
)

// Primitive combines a Descriptor with, once attached, a live store and
// logic instance. A freshly created Primitive is a metadata-only shell;
// introspection works immediately, everything else requires Attach.
type Primitive[S any] struct {
	descriptor Descriptor
	id         string
	st         *store.Store[S]
	lg         *logic.Instance[S]
}

// New creates a metadata-only shell for the described type.
func New[S any](descriptor Descriptor) (*Primitive[S], error) {
	if err := descriptor.Validate(); err != nil {
		return nil, err
	}
	return &Primitive[S]{descriptor: descriptor}, nil
}

// Descriptor returns the type metadata.
func (p *Primitive[S]) Descriptor() Descriptor {
	return p.descriptor
}

// ID returns the instance identity assigned by Attach, or the empty string
// for a bare shell.
func (p *Primitive[S]) ID() string {
	return p.id
}

// Attached reports whether a live implementation is bound.
func (p *Primitive[S]) Attached() bool {
	return p.lg != nil
}

// Attach binds a store and logic instance to the shell: it connects the
// logic to the store, runs its initialization, and assigns the instance
// identity. Attaching twice is a configuration error.
func (p *Primitive[S]) Attach(st *store.Store[S], lg *logic.Instance[S]) error {
	if p.Attached() {
		return headlesserrors.NewConfigurationError(p.descriptor.Type, "implementation already attached", nil)
	}
	if st == nil || lg == nil {
		return headlesserrors.NewConfigurationError(p.descriptor.Type, "attach requires a store and a logic instance", nil)
	}

	if err := lg.Connect(st); err != nil {
		return err
	}
	if err := lg.Initialize(); err != nil {
		return err
	}

	p.id = uuid.NewString()
	p.st = st
	p.lg = lg
	return nil
}

// Connect hands the live primitive to a rendering adapter and returns the
// framework-native renderable the adapter mounts. Connecting before Attach
// is a configuration error.
func (p *Primitive[S]) Connect(adapter Adapter[S]) (any, error) {
	if !p.Attached() {
		return nil, headlesserrors.NewConfigurationError(p.descriptor.Type,
			"connect called before an implementation was attached; call Attach first", nil)
	}
	if adapter == nil {
		return nil, headlesserrors.NewConfigurationError(p.descriptor.Type, "connect requires an adapter", nil)
	}
	return adapter.Mount(p.Handle())
}

// Handle returns the adapter-facing view of the live primitive, or nil for
// a bare shell.
func (p *Primitive[S]) Handle() *Handle[S] {
	if !p.Attached() {
		return nil
	}
	return &Handle[S]{p: p}
}

// Close tears down the logic instance. Safe on a bare shell and idempotent.
func (p *Primitive[S]) Close() {
	if p.lg != nil {
		p.lg.Close()
	}
}
