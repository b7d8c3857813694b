package primitive

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/headless/internal/logic"
	headlesserrors "github.com/alexisbeaulieu97/headless/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	typePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	rolePattern = regexp.MustCompile(`^[a-z]+$`)
)

// validatorInstance configures the shared validator used for descriptors.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("primitive_type", func(fl validator.FieldLevel) bool {
			return typePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("aria_role", func(fl validator.FieldLevel) bool {
			return rolePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Descriptor is the per-type metadata of a primitive: its addressable type
// name, accessibility role, supported events and named sub-elements. A
// Descriptor is usable for introspection before any live instance exists.
type Descriptor struct {
	Type        string              `json:"type" validate:"required,primitive_type"`
	Role        string              `json:"role" validate:"required,aria_role"`
	Description string              `json:"description"`
	Events      []logic.EventName   `json:"events" validate:"min=1,dive,required"`
	Elements    []logic.ElementName `json:"elements" validate:"min=1,dive,required"`
}

// Validate checks descriptor well-formedness, including duplicate event and
// element names.
func (d Descriptor) Validate() error {
	if err := validatorInstance().Struct(d); err != nil {
		return headlesserrors.NewValidationError(d.Type, err.Error(), err)
	}

	seenEvents := make(map[logic.EventName]struct{}, len(d.Events))
	for _, event := range d.Events {
		if _, exists := seenEvents[event]; exists {
			return headlesserrors.NewValidationError(d.Type,
				fmt.Sprintf("event %q listed more than once", event), nil)
		}
		seenEvents[event] = struct{}{}
	}

	seenElements := make(map[logic.ElementName]struct{}, len(d.Elements))
	for _, element := range d.Elements {
		if _, exists := seenElements[element]; exists {
			return headlesserrors.NewValidationError(d.Type,
				fmt.Sprintf("element %q listed more than once", element), nil)
		}
		seenElements[element] = struct{}{}
	}

	return nil
}

// HasElement reports whether the descriptor names the element.
func (d Descriptor) HasElement(element logic.ElementName) bool {
	for _, candidate := range d.Elements {
		if candidate == element {
			return true
		}
	}
	return false
}

// HasEvent reports whether the descriptor names the event.
func (d Descriptor) HasEvent(event logic.EventName) bool {
	for _, candidate := range d.Events {
		if candidate == event {
			return true
		}
	}
	return false
}
