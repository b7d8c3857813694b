package components

import (
	"github.com/alexisbeaulieu97/headless/internal/a11y"
	"github.com/alexisbeaulieu97/headless/internal/logic"
	"github.com/alexisbeaulieu97/headless/internal/primitive"
	"github.com/alexisbeaulieu97/headless/internal/store"
	"github.com/alexisbeaulieu97/headless/internal/timer"
)

// ToggleType is the registry name of the toggle primitive.
const ToggleType = "toggle"

// Toggle events.
const (
	// ToggleEventToggle flips the checked flag unless the toggle is
	// disabled, then chains into ToggleEventChanged.
	ToggleEventToggle logic.EventName = "toggle"
	// ToggleEventChanged notifies observers after the flip. Its handler sees
	// the post-flip state.
	ToggleEventChanged logic.EventName = "changed"
)

// Toggle elements.
const (
	ToggleElementRoot    logic.ElementName = "root"
	ToggleElementControl logic.ElementName = "control"
)

// ToggleOptions configures a toggle instance.
type ToggleOptions struct {
	Label    string `validate:"required"`
	Checked  bool
	Disabled bool
	// OnChange receives the new checked value after each flip.
	OnChange func(checked bool)
}

// ToggleState is the observable state of a toggle.
type ToggleState struct {
	Label    string
	Checked  bool
	Disabled bool
	Focused  bool
}

// NewToggleState returns the initial state for the given options.
func NewToggleState(opts ToggleOptions) ToggleState {
	return ToggleState{
		Label:    opts.Label,
		Checked:  opts.Checked,
		Disabled: opts.Disabled,
	}
}

// ToggleDescriptor returns the toggle's type metadata.
func ToggleDescriptor() primitive.Descriptor {
	return primitive.Descriptor{
		Type:        ToggleType,
		Role:        "switch",
		Description: "Two-state switch with keyboard and pointer interactions.",
		Events:      []logic.EventName{ToggleEventToggle, ToggleEventChanged},
		Elements:    []logic.ElementName{ToggleElementRoot, ToggleElementControl},
	}
}

// NewToggleLogic builds an unconnected toggle logic instance over the given
// store.
func NewToggleLogic(st *store.Store[ToggleState], opts ToggleOptions, clk timer.Clock) (*logic.Instance[ToggleState], error) {
	if err := validateOptions(ToggleType, opts); err != nil {
		return nil, err
	}

	b := logic.NewBuilder[ToggleState](ToggleType)

	b.OnEvent(ToggleEventToggle, func(state ToggleState, payload any) (logic.EventName, error) {
		if state.Disabled {
			return "", nil
		}
		st.Update(func(s ToggleState) ToggleState {
			s.Checked = !s.Checked
			return s
		})
		return ToggleEventChanged, nil
	})

	b.OnEvent(ToggleEventChanged, func(state ToggleState, payload any) (logic.EventName, error) {
		if opts.OnChange != nil {
			opts.OnChange(state.Checked)
		}
		return "", nil
	})

	b.WithA11y(ToggleElementControl, func(state ToggleState) a11y.Props {
		tabIndex := 0
		if state.Disabled {
			tabIndex = -1
		}
		return a11y.Props{
			a11y.AttrRole:     "switch",
			a11y.AttrLabel:    state.Label,
			a11y.AttrChecked:  state.Checked,
			a11y.AttrDisabled: state.Disabled,
			a11y.AttrTabIndex: tabIndex,
		}
	})

	b.WithInteraction(ToggleElementControl, InteractionClick, func(state ToggleState, native any) (logic.EventName, error) {
		return ToggleEventToggle, nil
	})

	b.WithInteraction(ToggleElementControl, InteractionKeyDown, func(state ToggleState, native any) (logic.EventName, error) {
		switch keyName(native) {
		case " ", "space", "enter":
			return ToggleEventToggle, nil
		}
		return "", nil
	})

	// Focus tracking mutates directly; no observers care beyond the store.
	b.WithInteraction(ToggleElementControl, InteractionFocus, func(state ToggleState, native any) (logic.EventName, error) {
		st.Update(func(s ToggleState) ToggleState {
			s.Focused = true
			return s
		})
		return "", nil
	})

	b.WithInteraction(ToggleElementControl, InteractionBlur, func(state ToggleState, native any) (logic.EventName, error) {
		st.Update(func(s ToggleState) ToggleState {
			s.Focused = false
			return s
		})
		return "", nil
	})

	return b.Build().Instance(clk), nil
}

// NewToggle assembles a complete toggle primitive, attached and active.
func NewToggle(opts ToggleOptions, clk timer.Clock) (*primitive.Primitive[ToggleState], error) {
	st := store.New(ToggleType, NewToggleState(opts))
	lg, err := NewToggleLogic(st, opts, clk)
	if err != nil {
		return nil, err
	}
	p, err := primitive.New[ToggleState](ToggleDescriptor())
	if err != nil {
		return nil, err
	}
	if err := p.Attach(st, lg); err != nil {
		return nil, err
	}
	return p, nil
}
