// Package a11y defines the accessibility attribute records computed for
// named sub-elements of a primitive. Values are plain scalars (string, bool,
// int) so any rendering adapter can apply them directly.
package a11y

import "sort"

// Common attribute keys.
const (
	AttrRole     = "role"
	AttrLabel    = "aria-label"
	AttrLive     = "aria-live"
	AttrHidden   = "aria-hidden"
	AttrChecked  = "aria-checked"
	AttrDisabled = "aria-disabled"
	AttrTabIndex = "tabindex"
)

// Props is a flat attribute record for one rendered element.
type Props map[string]any

// Keys returns the attribute names in sorted order.
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a new record combining p with overrides; keys in overrides
// win. Neither input is modified.
func (p Props) Merge(overrides Props) Props {
	merged := make(Props, len(p)+len(overrides))
	for key, value := range p {
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}
	return merged
}

// Equal reports whether two records carry the same attributes and values.
func (p Props) Equal(other Props) bool {
	if len(p) != len(other) {
		return false
	}
	for key, value := range p {
		otherValue, ok := other[key]
		if !ok || otherValue != value {
			return false
		}
	}
	return true
}
