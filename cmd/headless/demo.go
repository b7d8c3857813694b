package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/headless/internal/components"
	"github.com/alexisbeaulieu97/headless/internal/tui"
)

type demoOptions struct {
	autoClose time.Duration
	showA11y  bool
}

func newDemoCmd(app *appContext) *cobra.Command {
	opts := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo <type>",
		Short: "Run a primitive in the terminal adapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(app, opts, args[0])
		},
	}

	cmd.Flags().DurationVar(&opts.autoClose, "auto-close", 0, "Auto-close delay for the alert demo (0 disables)")
	cmd.Flags().BoolVar(&opts.showA11y, "a11y", true, "Render the accessibility attribute block")

	return cmd
}

func runDemo(app *appContext, opts *demoOptions, typeName string) error {
	var (
		renderable any
		cleanup    func()
		err        error
	)

	switch typeName {
	case components.AlertType:
		renderable, cleanup, err = mountAlertDemo(app, opts)
	case components.ToggleType:
		renderable, cleanup, err = mountToggleDemo(app, opts)
	case components.InputType:
		renderable, cleanup, err = mountInputDemo(app, opts)
	default:
		return newCommandError("demo", "resolving type", fmt.Errorf("no demo for primitive type %q", typeName),
			"Run 'headless list' to see the available types.")
	}
	if err != nil {
		return newCommandError("demo", "mounting primitive", err, "")
	}
	defer cleanup()

	model, ok := renderable.(tea.Model)
	if !ok {
		return newCommandError("demo", "mounting primitive", fmt.Errorf("adapter produced %T, not a tea.Model", renderable), "")
	}

	_, err = tea.NewProgram(model).Run()
	return err
}

var demoVariantStyles = map[string]lipgloss.Style{
	"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	"success": lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
}

var demoDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

func mountAlertDemo(app *appContext, opts *demoOptions) (any, func(), error) {
	p, err := components.NewAlert(components.AlertOptions{
		Title:       "Deployment finished",
		Variant:     "success",
		Dismissible: true,
		AutoClose:   opts.autoClose,
		OnDismiss: func(reason string) {
			app.log.WithComponent(components.AlertType).WithFields(map[string]any{"reason": reason}).Debug("alert dismissed")
		},
	}, nil)
	if err != nil {
		return nil, nil, err
	}

	renderable, err := p.Connect(tui.Adapter[components.AlertState]{
		Render: func(s components.AlertState) string {
			if !s.Visible {
				return demoDimStyle.Render("(dismissed)")
			}
			style, ok := demoVariantStyles[s.Variant]
			if !ok {
				style = demoVariantStyles["info"]
			}
			body := style.Render(s.Title)
			if s.Dismissing {
				body += demoDimStyle.Render(" (fading)")
			}
			return body
		},
		Busy: func(s components.AlertState) bool { return s.Dismissing },
		Bindings: []tui.KeyBinding{
			{Keys: []string{"esc"}, Element: components.AlertElementRoot, Interaction: components.InteractionKeyDown, Help: "dismiss"},
			{Keys: []string{"enter"}, Element: components.AlertElementClose, Interaction: components.InteractionClick, Help: "close button"},
		},
		ShowA11y: opts.showA11y,
	})
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	return renderable, p.Close, nil
}

func mountToggleDemo(app *appContext, opts *demoOptions) (any, func(), error) {
	p, err := components.NewToggle(components.ToggleOptions{
		Label: "Notifications",
		OnChange: func(checked bool) {
			app.log.WithComponent(components.ToggleType).WithFields(map[string]any{"checked": checked}).Debug("toggle changed")
		},
	}, nil)
	if err != nil {
		return nil, nil, err
	}

	renderable, err := p.Connect(tui.Adapter[components.ToggleState]{
		Render: func(s components.ToggleState) string {
			box := "[ ]"
			if s.Checked {
				box = "[x]"
			}
			return box + " " + s.Label
		},
		Bindings: []tui.KeyBinding{
			{Keys: []string{" ", "enter"}, Element: components.ToggleElementControl, Interaction: components.InteractionKeyDown, Help: "toggle"},
		},
		ShowA11y: opts.showA11y,
	})
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	return renderable, p.Close, nil
}

func mountInputDemo(app *appContext, opts *demoOptions) (any, func(), error) {
	p, err := components.NewInput(components.InputOptions{
		Label:       "Name",
		Placeholder: "start typing",
		Debounce:    300 * time.Millisecond,
		OnChange: func(value string) {
			app.log.WithComponent(components.InputType).WithFields(map[string]any{"value": value}).Debug("input settled")
		},
	}, nil)
	if err != nil {
		return nil, nil, err
	}

	renderable, err := p.Connect(tui.Adapter[components.InputState]{
		Render: func(s components.InputState) string {
			if s.Value == "" {
				return s.Label + ": " + demoDimStyle.Render(s.Placeholder)
			}
			return s.Label + ": " + s.Value + "▌"
		},
		Bindings: []tui.KeyBinding{
			{AllKeys: true, Element: components.InputElementField, Interaction: components.InteractionKeyDown, Help: "type to edit"},
		},
		ShowA11y: opts.showA11y,
	})
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	return renderable, p.Close, nil
}
