package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/headless/internal/primitive"
)

// stateChangedMsg reports that the primitive committed new state.
type stateChangedMsg struct{}

type keyMap struct {
	Quit key.Binding
}

func defaultKeyMap(captureKeys bool) keyMap {
	if captureKeys {
		return keyMap{
			Quit: key.NewBinding(
				key.WithKeys("ctrl+c"),
				key.WithHelp("ctrl+c", "quit"),
			),
		}
	}
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model drives one mounted primitive. State snapshots arrive over the
// change channel so timer-driven commits re-render like key-driven ones.
// The subscription callback fires on whichever goroutine committed, so the
// send and the close are serialized on mu.
type Model[S any] struct {
	handle  *primitive.Handle[S]
	adapter Adapter[S]
	keys    keyMap
	spin    spinner.Model

	state       S
	changes     chan struct{}
	unsubscribe func()
	lastErr     error

	mu   sync.Mutex
	done bool
}

func newModel[S any](h *primitive.Handle[S], a Adapter[S]) *Model[S] {
	captureKeys := false
	for _, b := range a.Bindings {
		if b.AllKeys {
			captureKeys = true
		}
	}

	m := &Model[S]{
		handle:  h,
		adapter: a,
		keys:    defaultKeyMap(captureKeys),
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		state:   h.State(),
		changes: make(chan struct{}, 16),
	}

	m.unsubscribe = h.Changed(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.done {
			return
		}
		// Drop the signal when the channel is full; the next read refreshes
		// from the handle anyway.
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})

	return m
}

// Init implements tea.Model.
func (m *Model[S]) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitForChange())
}

func (m *Model[S]) waitForChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.changes; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model[S]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		m.state = m.handle.State()
		return m, m.waitForChange()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.finish()
			return m, tea.Quit
		}
		m.lastErr = nil
		for _, b := range m.adapter.Bindings {
			if !matchesKey(b, msg.String()) {
				continue
			}
			if err := m.handle.Trigger(b.Element, b.Interaction, msg); err != nil {
				m.lastErr = err
			}
			m.state = m.handle.State()
		}
		return m, nil

	case tea.QuitMsg:
		m.finish()
		return m, nil
	}

	return m, nil
}

func (m *Model[S]) finish() {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return
	}
	m.done = true
	m.mu.Unlock()

	// No send can start after done is set, and any in-flight send holds mu,
	// so the close below cannot race it.
	m.unsubscribe()
	close(m.changes)
}

func matchesKey(b KeyBinding, name string) bool {
	if b.AllKeys {
		return true
	}
	for _, k := range b.Keys {
		if k == name {
			return true
		}
	}
	return false
}

// View implements tea.Model.
func (m *Model[S]) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.handle.Descriptor().Type))
	sb.WriteString("\n\n")

	if m.adapter.Busy != nil && m.adapter.Busy(m.state) {
		sb.WriteString(m.spin.View())
		sb.WriteString(" ")
	}
	sb.WriteString(m.adapter.Render(m.state))
	sb.WriteString("\n")

	if m.adapter.ShowA11y {
		sb.WriteString(m.a11yBlock())
	}

	if m.lastErr != nil {
		sb.WriteString(errorStyle.Render("error: " + m.lastErr.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render(m.helpLine()))
	sb.WriteString("\n")
	return sb.String()
}

func (m *Model[S]) a11yBlock() string {
	var sb strings.Builder
	sb.WriteString(sectionStyle.Render("accessibility"))
	sb.WriteString("\n")
	for _, element := range m.handle.Descriptor().Elements {
		props := m.handle.A11yProps(element)
		sb.WriteString(attrNameStyle.Render("  " + string(element) + ":"))
		for _, k := range props.Keys() {
			sb.WriteString(fmt.Sprintf(" %s=%v", k, props[k]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Model[S]) helpLine() string {
	parts := make([]string, 0, len(m.adapter.Bindings)+1)
	for _, b := range m.adapter.Bindings {
		switch {
		case b.AllKeys && b.Help != "":
			parts = append(parts, b.Help)
		case b.Help != "" && len(b.Keys) > 0:
			parts = append(parts, b.Keys[0]+" "+b.Help)
		}
	}
	quit := m.keys.Quit.Help()
	parts = append(parts, quit.Key+" "+quit.Desc)
	return strings.Join(parts, " • ")
}
