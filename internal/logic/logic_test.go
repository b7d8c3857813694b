package logic

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/headless/internal/a11y"
	"github.com/alexisbeaulieu97/headless/internal/store"
	"github.com/alexisbeaulieu97/headless/internal/timer"
	headlesserrors "github.com/alexisbeaulieu97/headless/pkg/errors"
)

type toggleState struct {
	Checked  bool
	Disabled bool
}

const (
	evToggle  EventName = "toggle"
	evChanged EventName = "changed"
	evNoisy   EventName = "noisy"

	elRoot  ElementName = "root"
	elInput ElementName = "input"

	inClick InteractionName = "click"
	inFocus InteractionName = "focus"
)

func newToggleInstance(t *testing.T, st *store.Store[toggleState], onChange func(bool)) *Instance[toggleState] {
	t.Helper()

	b := NewBuilder[toggleState]("toggle")
	b.OnEvent(evToggle, func(state toggleState, payload any) (EventName, error) {
		if state.Disabled {
			return "", nil
		}
		st.Update(func(s toggleState) toggleState {
			s.Checked = !s.Checked
			return s
		})
		return evChanged, nil
	})
	b.OnEvent(evChanged, func(state toggleState, payload any) (EventName, error) {
		if onChange != nil {
			onChange(state.Checked)
		}
		return "", nil
	})
	b.WithA11y(elRoot, func(state toggleState) a11y.Props {
		return a11y.Props{a11y.AttrRole: "switch", a11y.AttrChecked: state.Checked}
	})
	b.WithInteraction(elInput, inClick, func(state toggleState, native any) (EventName, error) {
		return evToggle, nil
	})

	inst := b.Build().Instance(nil)
	require.NoError(t, inst.Connect(st))
	require.NoError(t, inst.Initialize())
	return inst
}

func TestLifecyclePhases(t *testing.T) {
	st := store.New("toggle", toggleState{})
	inst := NewBuilder[toggleState]("toggle").Build().Instance(nil)

	assert.Equal(t, PhaseUninitialized, inst.Phase())
	require.NoError(t, inst.Connect(st))
	assert.Equal(t, PhaseConnected, inst.Phase())
	require.NoError(t, inst.Initialize())
	assert.Equal(t, PhaseActive, inst.Phase())
	inst.Close()
	assert.Equal(t, PhaseDisposed, inst.Phase())
}

func TestConnectTwiceIsConfigurationError(t *testing.T) {
	st := store.New("toggle", toggleState{})
	inst := NewBuilder[toggleState]("toggle").Build().Instance(nil)

	require.NoError(t, inst.Connect(st))
	err := inst.Connect(st)

	var cfgErr *headlesserrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "toggle", cfgErr.Component)
}

func TestConnectNilStoreIsConfigurationError(t *testing.T) {
	inst := NewBuilder[toggleState]("toggle").Build().Instance(nil)

	var cfgErr *headlesserrors.ConfigurationError
	assert.ErrorAs(t, inst.Connect(nil), &cfgErr)
}

func TestInitializeBeforeConnectFails(t *testing.T) {
	inst := NewBuilder[toggleState]("toggle").Build().Instance(nil)

	var cfgErr *headlesserrors.ConfigurationError
	assert.ErrorAs(t, inst.Initialize(), &cfgErr)
}

func TestInitializeIsIdempotentOnceActive(t *testing.T) {
	setupRuns := 0
	b := NewBuilder[toggleState]("toggle")
	b.WithSetup(func(*Instance[toggleState]) { setupRuns++ })

	inst := b.Build().Instance(nil)
	require.NoError(t, inst.Connect(store.New("toggle", toggleState{})))
	require.NoError(t, inst.Initialize())
	require.NoError(t, inst.Initialize())

	assert.Equal(t, 1, setupRuns)
}

func TestHandleEventBeforeConnectFails(t *testing.T) {
	inst := NewBuilder[toggleState]("toggle").Build().Instance(nil)

	var cfgErr *headlesserrors.ConfigurationError
	assert.ErrorAs(t, inst.HandleEvent(evToggle, nil), &cfgErr)
}

func TestHandleEventMutatesAndChainsOnce(t *testing.T) {
	st := store.New("toggle", toggleState{})

	var reported []bool
	inst := newToggleInstance(t, st, func(checked bool) { reported = append(reported, checked) })

	require.NoError(t, inst.HandleEvent(evToggle, nil))

	assert.True(t, st.Get().Checked)
	// The chained handler observed the post-mutation state.
	assert.Equal(t, []bool{true}, reported)
}

func TestChainDepthIsBoundedToOneHop(t *testing.T) {
	st := store.New("chain", 0)

	b := NewBuilder[int]("chain")
	b.OnEvent("a", func(state int, payload any) (EventName, error) {
		st.Set(state + 1)
		return "b", nil
	})
	b.OnEvent("b", func(state int, payload any) (EventName, error) {
		st.Set(state + 10)
		return "c", nil
	})
	b.OnEvent("c", func(state int, payload any) (EventName, error) {
		st.Set(state + 100)
		return "", nil
	})

	inst := b.Build().Instance(nil)
	require.NoError(t, inst.Connect(st))
	require.NoError(t, inst.Initialize())

	require.NoError(t, inst.HandleEvent("a", nil))

	// a and the chained b ran; b's request for c was ignored.
	assert.Equal(t, 11, st.Get())
}

func TestHandleEventUnregisteredIsIgnored(t *testing.T) {
	st := store.New("toggle", toggleState{})
	inst := newToggleInstance(t, st, nil)

	assert.NoError(t, inst.HandleEvent("unknown", nil))
	assert.False(t, st.Get().Checked)
}

func TestHandleEventPayloadNormalization(t *testing.T) {
	st := store.New("payloads", "")

	var seen []any
	b := NewBuilder[string]("payloads")
	b.OnEvent(evNoisy, func(state string, payload any) (EventName, error) {
		seen = append(seen, payload)
		return "", nil
	})

	inst := b.Build().Instance(nil)
	require.NoError(t, inst.Connect(st))
	require.NoError(t, inst.Initialize())

	require.NoError(t, inst.HandleEvent(evNoisy, "raw"))
	require.NoError(t, inst.HandleEvent(evNoisy, Envelope{Event: "raw"}))
	require.NoError(t, inst.HandleEvent(evNoisy, map[string]any{"event": "raw"}))

	assert.Equal(t, []any{"raw", "raw", "raw"}, seen)
}

func TestHandlerErrorPropagates(t *testing.T) {
	st := store.New("failing", 0)
	handlerErr := errors.New("handler failed")

	b := NewBuilder[int]("failing")
	b.OnEvent(evNoisy, func(state int, payload any) (EventName, error) {
		return "", handlerErr
	})

	inst := b.Build().Instance(nil)
	require.NoError(t, inst.Connect(st))
	require.NoError(t, inst.Initialize())

	assert.ErrorIs(t, inst.HandleEvent(evNoisy, nil), handlerErr)
}

func TestLastRegistrationWins(t *testing.T) {
	st := store.New("toggle", toggleState{})

	b := NewBuilder[toggleState]("toggle")
	b.OnEvent(evToggle, func(toggleState, any) (EventName, error) {
		st.Update(func(s toggleState) toggleState { s.Checked = true; return s })
		return "", nil
	})
	b.OnEvent(evToggle, func(toggleState, any) (EventName, error) {
		st.Update(func(s toggleState) toggleState { s.Disabled = true; return s })
		return "", nil
	})

	inst := b.Build().Instance(nil)
	require.NoError(t, inst.Connect(st))
	require.NoError(t, inst.Initialize())
	require.NoError(t, inst.HandleEvent(evToggle, nil))

	assert.False(t, st.Get().Checked)
	assert.True(t, st.Get().Disabled)
}

func TestA11yPropsForUnregisteredElement(t *testing.T) {
	st := store.New("toggle", toggleState{})
	inst := newToggleInstance(t, st, nil)

	assert.Equal(t, a11y.Props{}, inst.A11yProps("missing"))
}

func TestA11yPropsPure(t *testing.T) {
	st := store.New("toggle", toggleState{Checked: true})
	inst := newToggleInstance(t, st, nil)

	first := inst.A11yProps(elRoot)
	second := inst.A11yProps(elRoot)

	assert.True(t, first.Equal(second))
	assert.Equal(t, a11y.Props{a11y.AttrRole: "switch", a11y.AttrChecked: true}, first)
}

func TestInteractionHandlerDispatches(t *testing.T) {
	st := store.New("toggle", toggleState{})
	inst := newToggleInstance(t, st, nil)

	handlers := inst.InteractionHandlers(elInput)
	require.Contains(t, handlers, inClick)

	require.NoError(t, handlers[inClick](nil))
	assert.True(t, st.Get().Checked)
}

func TestInteractionMapperDirectMutation(t *testing.T) {
	st := store.New("toggle", toggleState{})

	focused := false
	b := NewBuilder[toggleState]("toggle")
	b.WithInteraction(elInput, inFocus, func(state toggleState, native any) (EventName, error) {
		focused = true
		return "", nil
	})

	inst := b.Build().Instance(nil)
	require.NoError(t, inst.Connect(st))
	require.NoError(t, inst.Initialize())

	handlers := inst.InteractionHandlers(elInput)
	require.NoError(t, handlers[inFocus](nil))
	assert.True(t, focused)
}

func TestInteractionHandlersForUnregisteredElement(t *testing.T) {
	st := store.New("toggle", toggleState{})
	inst := newToggleInstance(t, st, nil)

	assert.Empty(t, inst.InteractionHandlers("missing"))
}

func TestCloseIsIdempotentAndSilencesEvents(t *testing.T) {
	st := store.New("toggle", toggleState{})

	changes := 0
	inst := newToggleInstance(t, st, func(bool) { changes++ })

	inst.Close()
	inst.Close()

	assert.NoError(t, inst.HandleEvent(evToggle, map[string]any{"reason": "late"}))
	assert.False(t, st.Get().Checked)
	assert.Zero(t, changes)
}

func TestInteractionHandlerNoOpAfterClose(t *testing.T) {
	st := store.New("toggle", toggleState{})
	inst := newToggleInstance(t, st, nil)

	handlers := inst.InteractionHandlers(elInput)
	inst.Close()

	require.NoError(t, handlers[inClick](nil))
	assert.False(t, st.Get().Checked)
}

func TestOwnedTimersAreCancelledOnClose(t *testing.T) {
	clk := timer.NewFake()
	st := store.New("timed", 0)

	fired := false
	b := NewBuilder[int]("timed")
	b.WithSetup(func(inst *Instance[int]) {
		inst.StartTimer(time.Second, func() { fired = true })
	})

	inst := b.Build().Instance(clk)
	require.NoError(t, inst.Connect(st))
	require.NoError(t, inst.Initialize())

	inst.Close()
	clk.Advance(2 * time.Second)

	assert.False(t, fired)
}

func TestTimerCallbackSuppressedWhenInactive(t *testing.T) {
	clk := timer.NewFake()
	st := store.New("timed", 0)

	fired := false
	var handle timer.Handle
	b := NewBuilder[int]("timed")
	b.WithSetup(func(inst *Instance[int]) {
		handle = inst.StartTimer(time.Second, func() { fired = true })
	})

	inst := b.Build().Instance(clk)
	require.NoError(t, inst.Connect(st))
	require.NoError(t, inst.Initialize())
	require.NotNil(t, handle)

	// Dispose between scheduling and expiry; the clock still ticks but the
	// callback must not touch anything.
	inst.Close()
	clk.Advance(time.Second)
	assert.False(t, fired)
}

func TestStartTimerOnInactiveInstanceIsInert(t *testing.T) {
	inst := NewBuilder[int]("timed").Build().Instance(timer.NewFake())
	h := inst.StartTimer(time.Second, func() { t.Fatal("must not fire") })
	assert.False(t, h.Stop())
}

func TestOnCleanupRunsInReverseOrder(t *testing.T) {
	st := store.New("cleanup", 0)

	var order []string
	b := NewBuilder[int]("cleanup")
	b.WithSetup(func(inst *Instance[int]) {
		inst.OnCleanup(func() { order = append(order, "first") })
		inst.OnCleanup(func() { order = append(order, "second") })
	})

	inst := b.Build().Instance(nil)
	require.NoError(t, inst.Connect(st))
	require.NoError(t, inst.Initialize())

	inst.Close()
	inst.Close()

	assert.Equal(t, []string{"second", "first"}, order)
}

func TestLogicIntrospection(t *testing.T) {
	table := NewBuilder[toggleState]("toggle").
		OnEvent(evToggle, func(toggleState, any) (EventName, error) { return "", nil }).
		OnEvent(evChanged, func(toggleState, any) (EventName, error) { return "", nil }).
		WithA11y(elRoot, func(toggleState) a11y.Props { return a11y.Props{} }).
		WithInteraction(elInput, inClick, func(toggleState, any) (EventName, error) { return "", nil }).
		Build()

	assert.Equal(t, "toggle", table.Name())
	assert.Equal(t, []EventName{evChanged, evToggle}, table.Events())
	assert.Equal(t, []ElementName{elInput, elRoot}, table.Elements())
}

func TestRealClockFiresSerializeWithClose(t *testing.T) {
	st := store.New("toggle", toggleState{})
	inst := newToggleInstance(t, st, nil)

	// Real-clock callbacks arrive on the timer goroutine; they must not
	// interleave with dispatches or teardown on other goroutines.
	for i := 0; i < 25; i++ {
		inst.StartTimer(time.Duration(i%5)*time.Millisecond, func() {
			_ = inst.HandleEvent(evToggle, nil)
		})
	}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = inst.HandleEvent(evToggle, nil)
				_ = inst.A11yProps(elRoot)
				_ = st.Get()
			}
		}()
	}

	time.Sleep(2 * time.Millisecond)
	inst.Close()
	wg.Wait()

	assert.Equal(t, PhaseDisposed, inst.Phase())
	require.NoError(t, inst.HandleEvent(evToggle, nil))
}

func TestConcurrentCloseIsIdempotent(t *testing.T) {
	st := store.New("toggle", toggleState{})
	inst := newToggleInstance(t, st, nil)

	cleanups := 0
	inst.OnCleanup(func() { cleanups++ })

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inst.Close()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, cleanups)
	assert.Equal(t, PhaseDisposed, inst.Phase())
}
