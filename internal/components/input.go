package components

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/alexisbeaulieu97/headless/internal/a11y"
	"github.com/alexisbeaulieu97/headless/internal/logic"
	"github.com/alexisbeaulieu97/headless/internal/primitive"
	"github.com/alexisbeaulieu97/headless/internal/store"
	"github.com/alexisbeaulieu97/headless/internal/timer"
)

// InputType is the registry name of the input primitive.
const InputType = "input"

// Input events.
const (
	// InputEventChange stores a new value. With a debounce configured the
	// OnChange callback is deferred and restarted on every change.
	InputEventChange logic.EventName = "change"
	// InputEventCommit flushes the debounced value to OnChange.
	InputEventCommit logic.EventName = "commit"
)

// Input elements.
const (
	InputElementRoot  logic.ElementName = "root"
	InputElementField logic.ElementName = "field"
)

// InputOptions configures an input instance.
type InputOptions struct {
	Label       string `validate:"required"`
	Placeholder string
	Value       string
	// Debounce defers OnChange until the value has been stable for the
	// given duration. Zero reports every change immediately.
	Debounce time.Duration `validate:"min=0"`
	// OnChange receives the settled value.
	OnChange func(value string)
}

// InputState is the observable state of an input.
type InputState struct {
	Label       string
	Placeholder string
	Value       string
	Focused     bool
}

// NewInputState returns the initial state for the given options.
func NewInputState(opts InputOptions) InputState {
	return InputState{
		Label:       opts.Label,
		Placeholder: opts.Placeholder,
		Value:       opts.Value,
	}
}

// InputDescriptor returns the input's type metadata.
func InputDescriptor() primitive.Descriptor {
	return primitive.Descriptor{
		Type:        InputType,
		Role:        "textbox",
		Description: "Single-line text value with an optionally debounced change callback.",
		Events:      []logic.EventName{InputEventChange, InputEventCommit},
		Elements:    []logic.ElementName{InputElementRoot, InputElementField},
	}
}

// NewInputLogic builds an unconnected input logic instance over the given
// store.
func NewInputLogic(st *store.Store[InputState], opts InputOptions, clk timer.Clock) (*logic.Instance[InputState], error) {
	if err := validateOptions(InputType, opts); err != nil {
		return nil, err
	}

	var inst *logic.Instance[InputState]
	var pending timer.Handle

	b := logic.NewBuilder[InputState](InputType)

	b.OnEvent(InputEventChange, func(state InputState, payload any) (logic.EventName, error) {
		value := inputValue(payload, state.Value)
		st.Update(func(s InputState) InputState {
			s.Value = value
			return s
		})
		if opts.OnChange == nil {
			return "", nil
		}
		if opts.Debounce == 0 {
			return InputEventCommit, nil
		}
		if pending != nil {
			pending.Stop()
		}
		pending = inst.StartTimer(opts.Debounce, func() {
			_ = inst.HandleEvent(InputEventCommit, nil)
		})
		return "", nil
	})

	b.OnEvent(InputEventCommit, func(state InputState, payload any) (logic.EventName, error) {
		pending = nil
		if opts.OnChange != nil {
			opts.OnChange(state.Value)
		}
		return "", nil
	})

	b.WithA11y(InputElementField, func(state InputState) a11y.Props {
		return a11y.Props{
			a11y.AttrRole:     "textbox",
			a11y.AttrLabel:    state.Label,
			a11y.AttrTabIndex: 0,
		}
	})

	b.WithInteraction(InputElementField, InteractionInput, func(state InputState, native any) (logic.EventName, error) {
		return InputEventChange, nil
	})

	b.WithInteraction(InputElementField, InteractionKeyDown, func(state InputState, native any) (logic.EventName, error) {
		return InputEventChange, nil
	})

	b.WithInteraction(InputElementField, InteractionFocus, func(state InputState, native any) (logic.EventName, error) {
		st.Update(func(s InputState) InputState {
			s.Focused = true
			return s
		})
		return "", nil
	})

	b.WithInteraction(InputElementField, InteractionBlur, func(state InputState, native any) (logic.EventName, error) {
		st.Update(func(s InputState) InputState {
			s.Focused = false
			return s
		})
		return "", nil
	})

	inst = b.Build().Instance(clk)
	return inst, nil
}

// NewInput assembles a complete input primitive, attached and active.
func NewInput(opts InputOptions, clk timer.Clock) (*primitive.Primitive[InputState], error) {
	st := store.New(InputType, NewInputState(opts))
	lg, err := NewInputLogic(st, opts, clk)
	if err != nil {
		return nil, err
	}
	p, err := primitive.New[InputState](InputDescriptor())
	if err != nil {
		return nil, err
	}
	if err := p.Attach(st, lg); err != nil {
		return nil, err
	}
	return p, nil
}

// inputValue interprets a change payload. A plain string or a
// {"value": ...} map replaces the value wholesale; a native key event (any
// value with a key-name String method) edits it. Anything else leaves the
// value untouched.
func inputValue(payload any, current string) string {
	switch v := payload.(type) {
	case string:
		return v
	case map[string]any:
		if value, ok := v["value"].(string); ok {
			return value
		}
	case fmt.Stringer:
		return applyKey(current, v.String())
	}
	return current
}

func applyKey(current, name string) string {
	switch name {
	case "backspace":
		if current == "" {
			return current
		}
		runes := []rune(current)
		return string(runes[:len(runes)-1])
	case "space":
		return current + " "
	default:
		if utf8.RuneCountInString(name) == 1 {
			return current + name
		}
	}
	return current
}
