package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inputState struct {
	Value   string
	Focused bool
}

func TestDerivedGetRecomputes(t *testing.T) {
	st := New("input", inputState{Value: "a"})
	length := Derive(st, func(s inputState) int { return len(s.Value) })

	assert.Equal(t, 1, length.Get())

	st.Update(func(s inputState) inputState {
		s.Value = "abc"
		return s
	})
	assert.Equal(t, 3, length.Get())
}

func TestDerivedSubscribersSeeFreshValue(t *testing.T) {
	st := New("input", inputState{})
	length := Derive(st, func(s inputState) int { return len(s.Value) })

	var got []int
	length.Subscribe(func(v int) {
		got = append(got, v)
		assert.Equal(t, length.Get(), v)
	})

	st.Set(inputState{Value: "ab"})
	st.Set(inputState{Value: "abcd"})

	require.Equal(t, []int{2, 4}, got)
}

func TestDerivedOnlyFiresWhenSelectedValueChanges(t *testing.T) {
	st := New("input", inputState{Value: "ab"})
	length := Derive(st, func(s inputState) int { return len(s.Value) })

	calls := 0
	length.Subscribe(func(int) { calls++ })

	// Focus changes leave the selected value untouched.
	st.Set(inputState{Value: "ab", Focused: true})
	st.Set(inputState{Value: "cd", Focused: true})
	assert.Zero(t, calls)

	st.Set(inputState{Value: "cde"})
	assert.Equal(t, 1, calls)
}

func TestDerivedUnsubscribe(t *testing.T) {
	st := New("input", inputState{})
	length := Derive(st, func(s inputState) int { return len(s.Value) })

	calls := 0
	cancel := length.Subscribe(func(int) { calls++ })
	cancel()

	st.Set(inputState{Value: "abc"})
	assert.Zero(t, calls)
}

func TestDerivedPanickingSelectorPropagates(t *testing.T) {
	st := New("input", inputState{})
	broken := Derive(st, func(s inputState) int {
		if s.Value == "boom" {
			panic("selector failure")
		}
		return len(s.Value)
	})
	broken.Subscribe(func(int) {})

	assert.PanicsWithValue(t, "selector failure", func() {
		st.Set(inputState{Value: "boom"})
	})
}
