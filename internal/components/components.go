// Package components ships the built-in primitives: alert, toggle and
// input. Each one declares its events and elements as typed constants,
// validates its options once at construction and builds its behavior with
// the logic builder, so the package doubles as the reference for writing
// primitives on top of the core.
package components

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/headless/internal/logic"
	headlesserrors "github.com/alexisbeaulieu97/headless/pkg/errors"
)

// Interaction names shared across the built-in primitives. Adapters bind
// native input to these.
const (
	InteractionClick   logic.InteractionName = "click"
	InteractionKeyDown logic.InteractionName = "keydown"
	InteractionInput   logic.InteractionName = "input"
	InteractionFocus   logic.InteractionName = "focus"
	InteractionBlur    logic.InteractionName = "blur"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func optionsValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// validateOptions runs struct validation and wraps the failure in a typed
// error naming the component.
func validateOptions(component string, opts any) error {
	if err := optionsValidator().Struct(opts); err != nil {
		return headlesserrors.NewValidationError(component,
			fmt.Sprintf("invalid options: %v", err), err)
	}
	return nil
}

// keyName extracts a key identifier from a native keyboard event. Adapters
// pass either the key string itself or any value whose String method yields
// it (tea.KeyMsg does).
func keyName(native any) string {
	switch v := native.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}
