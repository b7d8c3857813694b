package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/headless/internal/a11y"
	"github.com/alexisbeaulieu97/headless/internal/logic"
	"github.com/alexisbeaulieu97/headless/internal/store"
	headlesserrors "github.com/alexisbeaulieu97/headless/pkg/errors"
)

func newToggleFixture(t *testing.T, opts ToggleOptions) (*store.Store[ToggleState], *logic.Instance[ToggleState]) {
	t.Helper()

	st := store.New(ToggleType, NewToggleState(opts))
	inst, err := NewToggleLogic(st, opts, nil)
	require.NoError(t, err)
	require.NoError(t, inst.Connect(st))
	require.NoError(t, inst.Initialize())
	t.Cleanup(inst.Close)
	return st, inst
}

func TestToggleOptionsRequireLabel(t *testing.T) {
	st := store.New(ToggleType, ToggleState{})
	_, err := NewToggleLogic(st, ToggleOptions{}, nil)

	var valErr *headlesserrors.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestToggleFlipsAndReportsNewValue(t *testing.T) {
	var seen []bool
	st, inst := newToggleFixture(t, ToggleOptions{
		Label:    "Notifications",
		OnChange: func(checked bool) { seen = append(seen, checked) },
	})

	require.NoError(t, inst.HandleEvent(ToggleEventToggle, nil))
	require.NoError(t, inst.HandleEvent(ToggleEventToggle, nil))

	assert.False(t, st.Get().Checked)
	assert.Equal(t, []bool{true, false}, seen, "callback sees the post-flip value")
}

func TestToggleDisabledIgnoresToggle(t *testing.T) {
	calls := 0
	st, inst := newToggleFixture(t, ToggleOptions{
		Label:    "Notifications",
		Disabled: true,
		OnChange: func(bool) { calls++ },
	})

	require.NoError(t, inst.HandleEvent(ToggleEventToggle, nil))

	assert.False(t, st.Get().Checked)
	assert.Zero(t, calls)
}

func TestToggleKeyboardInteraction(t *testing.T) {
	st, inst := newToggleFixture(t, ToggleOptions{Label: "Notifications"})
	handlers := inst.InteractionHandlers(ToggleElementControl)

	require.NoError(t, handlers[InteractionKeyDown]("x"))
	assert.False(t, st.Get().Checked)

	require.NoError(t, handlers[InteractionKeyDown](" "))
	assert.True(t, st.Get().Checked)

	require.NoError(t, handlers[InteractionKeyDown]("enter"))
	assert.False(t, st.Get().Checked)
}

func TestToggleClickInteraction(t *testing.T) {
	st, inst := newToggleFixture(t, ToggleOptions{Label: "Notifications"})

	require.NoError(t, inst.InteractionHandlers(ToggleElementControl)[InteractionClick](nil))
	assert.True(t, st.Get().Checked)
}

func TestToggleFocusTracking(t *testing.T) {
	st, inst := newToggleFixture(t, ToggleOptions{Label: "Notifications"})
	handlers := inst.InteractionHandlers(ToggleElementControl)

	require.NoError(t, handlers[InteractionFocus](nil))
	assert.True(t, st.Get().Focused)

	require.NoError(t, handlers[InteractionBlur](nil))
	assert.False(t, st.Get().Focused)
}

func TestToggleA11y(t *testing.T) {
	_, inst := newToggleFixture(t, ToggleOptions{Label: "Notifications", Checked: true})

	assert.Equal(t, a11y.Props{
		a11y.AttrRole:     "switch",
		a11y.AttrLabel:    "Notifications",
		a11y.AttrChecked:  true,
		a11y.AttrDisabled: false,
		a11y.AttrTabIndex: 0,
	}, inst.A11yProps(ToggleElementControl))
}

func TestToggleDisabledA11yDropsFromTabOrder(t *testing.T) {
	_, inst := newToggleFixture(t, ToggleOptions{Label: "Notifications", Disabled: true})

	props := inst.A11yProps(ToggleElementControl)
	assert.Equal(t, true, props[a11y.AttrDisabled])
	assert.Equal(t, -1, props[a11y.AttrTabIndex])
}
