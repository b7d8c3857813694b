package components

import (
	"time"

	"github.com/alexisbeaulieu97/headless/internal/a11y"
	"github.com/alexisbeaulieu97/headless/internal/logic"
	"github.com/alexisbeaulieu97/headless/internal/primitive"
	"github.com/alexisbeaulieu97/headless/internal/store"
	"github.com/alexisbeaulieu97/headless/internal/timer"
)

// AlertType is the registry name of the alert primitive.
const AlertType = "alert"

// Alert events.
const (
	// AlertEventDismiss begins dismissal: the alert enters its fading state
	// and a timer finalizes the removal. The payload carries the dismissal
	// reason as a string (or a {"reason": ...} map); it defaults to "user".
	// Non-dismissible alerts ignore every reason except the auto-close
	// timeout.
	AlertEventDismiss logic.EventName = "dismiss"
	// AlertEventDismissed finishes dismissal after the fade delay.
	AlertEventDismissed logic.EventName = "dismissed"
)

// Alert elements.
const (
	AlertElementRoot  logic.ElementName = "root"
	AlertElementClose logic.ElementName = "close"
)

// Dismissal reasons reported to OnDismiss.
const (
	AlertReasonUser    = "user"
	AlertReasonTimeout = "timeout"
)

const defaultFadeDelay = 300 * time.Millisecond

// AlertOptions configures an alert instance.
type AlertOptions struct {
	Title       string `validate:"required"`
	Variant     string `validate:"omitempty,oneof=info success warning error"`
	Dismissible bool
	// AutoClose dismisses the alert after the given duration. Zero disables
	// auto-close. A manual dismissal cancels the pending timer.
	AutoClose time.Duration `validate:"min=0"`
	// FadeDelay is the gap between the dismissing and hidden states, giving
	// adapters room for an exit transition. Zero selects the default.
	FadeDelay time.Duration `validate:"min=0"`
	// OnDismiss is invoked exactly once, after the fade completes, with the
	// dismissal reason.
	OnDismiss func(reason string)
}

func (o AlertOptions) withDefaults() AlertOptions {
	if o.Variant == "" {
		o.Variant = "info"
	}
	if o.FadeDelay == 0 {
		o.FadeDelay = defaultFadeDelay
	}
	return o
}

// AlertState is the observable state of an alert.
type AlertState struct {
	Title       string
	Variant     string
	Visible     bool
	Dismissing  bool
	Dismissible bool
}

// NewAlertState returns the initial state for the given options.
func NewAlertState(opts AlertOptions) AlertState {
	opts = opts.withDefaults()
	return AlertState{
		Title:       opts.Title,
		Variant:     opts.Variant,
		Visible:     true,
		Dismissible: opts.Dismissible,
	}
}

// AlertDescriptor returns the alert's type metadata.
func AlertDescriptor() primitive.Descriptor {
	return primitive.Descriptor{
		Type:        AlertType,
		Role:        "alert",
		Description: "Dismissible notification with optional auto-close and a two-phase exit.",
		Events:      []logic.EventName{AlertEventDismiss, AlertEventDismissed},
		Elements:    []logic.ElementName{AlertElementRoot, AlertElementClose},
	}
}

// NewAlertLogic builds an unconnected alert logic instance over the given
// store. A nil clock selects the system timer.
func NewAlertLogic(st *store.Store[AlertState], opts AlertOptions, clk timer.Clock) (*logic.Instance[AlertState], error) {
	if err := validateOptions(AlertType, opts); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	// Assigned below, before the instance can run any handler.
	var inst *logic.Instance[AlertState]
	var autoClose timer.Handle

	b := logic.NewBuilder[AlertState](AlertType)

	b.OnEvent(AlertEventDismiss, func(state AlertState, payload any) (logic.EventName, error) {
		if !state.Visible || state.Dismissing {
			return "", nil
		}
		reason := dismissReason(payload)
		if !state.Dismissible && reason != AlertReasonTimeout {
			return "", nil
		}
		if autoClose != nil {
			autoClose.Stop()
			autoClose = nil
		}
		st.Update(func(s AlertState) AlertState {
			s.Dismissing = true
			return s
		})
		inst.StartTimer(opts.FadeDelay, func() {
			_ = inst.HandleEvent(AlertEventDismissed, reason)
		})
		return "", nil
	})

	b.OnEvent(AlertEventDismissed, func(state AlertState, payload any) (logic.EventName, error) {
		if !state.Dismissing {
			return "", nil
		}
		st.Update(func(s AlertState) AlertState {
			s.Visible = false
			s.Dismissing = false
			return s
		})
		if opts.OnDismiss != nil {
			opts.OnDismiss(dismissReason(payload))
		}
		return "", nil
	})

	b.WithA11y(AlertElementRoot, func(state AlertState) a11y.Props {
		return a11y.Props{
			a11y.AttrRole:   "alert",
			a11y.AttrLive:   "assertive",
			a11y.AttrLabel:  state.Title,
			a11y.AttrHidden: !state.Visible,
		}
	})

	b.WithA11y(AlertElementClose, func(state AlertState) a11y.Props {
		return a11y.Props{
			a11y.AttrRole:   "button",
			a11y.AttrLabel:  "dismiss",
			a11y.AttrHidden: !state.Dismissible || !state.Visible,
		}
	})

	b.WithInteraction(AlertElementClose, InteractionClick, func(state AlertState, native any) (logic.EventName, error) {
		if !state.Dismissible {
			return "", nil
		}
		return AlertEventDismiss, nil
	})

	b.WithInteraction(AlertElementRoot, InteractionKeyDown, func(state AlertState, native any) (logic.EventName, error) {
		if !state.Dismissible {
			return "", nil
		}
		switch keyName(native) {
		case "esc", "escape":
			return AlertEventDismiss, nil
		}
		return "", nil
	})

	b.WithSetup(func(in *logic.Instance[AlertState]) {
		if opts.AutoClose > 0 {
			autoClose = in.StartTimer(opts.AutoClose, func() {
				_ = in.HandleEvent(AlertEventDismiss, AlertReasonTimeout)
			})
		}
	})

	inst = b.Build().Instance(clk)
	return inst, nil
}

// NewAlert assembles a complete alert primitive: store, logic and shell,
// attached and active.
func NewAlert(opts AlertOptions, clk timer.Clock) (*primitive.Primitive[AlertState], error) {
	st := store.New(AlertType, NewAlertState(opts))
	lg, err := NewAlertLogic(st, opts, clk)
	if err != nil {
		return nil, err
	}
	p, err := primitive.New[AlertState](AlertDescriptor())
	if err != nil {
		return nil, err
	}
	if err := p.Attach(st, lg); err != nil {
		return nil, err
	}
	return p, nil
}

// dismissReason interprets the dismiss payload. Interaction-mapped
// dismissals carry the raw native event, which has no reason in it, so
// anything unrecognized counts as a user dismissal.
func dismissReason(payload any) string {
	switch v := payload.(type) {
	case string:
		if v != "" {
			return v
		}
	case map[string]any:
		if reason, ok := v["reason"].(string); ok && reason != "" {
			return reason
		}
	}
	return AlertReasonUser
}
