package components

import (
	"time"

	"github.com/alexisbeaulieu97/headless/internal/primitive"
	"github.com/alexisbeaulieu97/headless/internal/timer"
)

// RegisterDefaults registers the built-in primitives with demo-ready
// options. A nil clock selects the system timer.
func RegisterDefaults(reg *primitive.Registry, clk timer.Clock) error {
	for _, f := range DefaultFactories(clk) {
		if err := reg.Register(f); err != nil {
			return err
		}
	}
	return nil
}

// DefaultFactories returns the built-in primitive factories.
func DefaultFactories(clk timer.Clock) []primitive.Factory {
	return []primitive.Factory{
		{
			Descriptor: AlertDescriptor(),
			New: func() (primitive.Mounted, error) {
				p, err := NewAlert(AlertOptions{
					Title:       "Saved",
					Variant:     "success",
					Dismissible: true,
					AutoClose:   5 * time.Second,
				}, clk)
				if err != nil {
					return nil, err
				}
				return p.Handle(), nil
			},
		},
		{
			Descriptor: ToggleDescriptor(),
			New: func() (primitive.Mounted, error) {
				p, err := NewToggle(ToggleOptions{Label: "Notifications"}, clk)
				if err != nil {
					return nil, err
				}
				return p.Handle(), nil
			},
		},
		{
			Descriptor: InputDescriptor(),
			New: func() (primitive.Mounted, error) {
				p, err := NewInput(InputOptions{Label: "Name", Placeholder: "type a name"}, clk)
				if err != nil {
					return nil, err
				}
				return p.Handle(), nil
			},
		},
	}
}
