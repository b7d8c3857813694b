// Package tui renders primitives in the terminal with Bubble Tea. It is the
// reference adapter: state changes re-render the view, accessibility props
// are rendered as an attribute block and key presses route through the
// primitive's interaction handlers.
package tui

import (
	"github.com/alexisbeaulieu97/headless/internal/logic"
	"github.com/alexisbeaulieu97/headless/internal/primitive"
	headlesserrors "github.com/alexisbeaulieu97/headless/pkg/errors"
)

// KeyBinding routes terminal keys to one interaction on one element. Keys
// use Bubble Tea's key names ("enter", "esc", " ", "t", ...). AllKeys
// forwards every key press, for text-entry primitives; it narrows the quit
// binding to ctrl+c so typed characters reach the primitive.
type KeyBinding struct {
	Keys        []string
	AllKeys     bool
	Element     logic.ElementName
	Interaction logic.InteractionName
	Help        string
}

// Adapter mounts a primitive into a Bubble Tea model. Render turns a state
// snapshot into the body of the view; Busy, when set, shows a spinner while
// it reports true.
type Adapter[S any] struct {
	Render   func(s S) string
	Busy     func(s S) bool
	Bindings []KeyBinding
	ShowA11y bool
}

// Mount implements the primitive adapter contract. The returned renderable
// is a *Model ready to hand to tea.NewProgram.
func (a Adapter[S]) Mount(h *primitive.Handle[S]) (any, error) {
	if a.Render == nil {
		return nil, headlesserrors.NewConfigurationError(h.Descriptor().Type, "tui adapter requires a render function", nil)
	}
	for _, b := range a.Bindings {
		if !h.Descriptor().HasElement(b.Element) {
			return nil, headlesserrors.NewConfigurationError(h.Descriptor().Type,
				"key binding targets unknown element "+string(b.Element), nil)
		}
	}
	return newModel(h, a), nil
}

var _ primitive.Adapter[struct{}] = Adapter[struct{}]{}
