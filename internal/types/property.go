package types

import "fmt"

// PropertyType enumerates the widget kinds a property descriptor may use.
// The set is closed: the panel renderer keeps a total mapping from each kind
// to its render/parse behavior, checked for exhaustiveness in tests.
type PropertyType string

const (
	PropertyText     PropertyType = "text"
	PropertyNumber   PropertyType = "number"
	PropertySelect   PropertyType = "select"
	PropertyCheckbox PropertyType = "checkbox"
	PropertyColor    PropertyType = "color"
	PropertyTextarea PropertyType = "textarea"
	PropertyButton   PropertyType = "button"
	PropertyHidden   PropertyType = "hidden"
)

// AllPropertyTypes returns every widget kind, in declaration order.
func AllPropertyTypes() []PropertyType {
	return []PropertyType{
		PropertyText,
		PropertyNumber,
		PropertySelect,
		PropertyCheckbox,
		PropertyColor,
		PropertyTextarea,
		PropertyButton,
		PropertyHidden,
	}
}

// Valid reports whether t is a known widget kind.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyText, PropertyNumber, PropertySelect, PropertyCheckbox,
		PropertyColor, PropertyTextarea, PropertyButton, PropertyHidden:
		return true
	}
	return false
}

// SelectOption is one entry of a select descriptor's option list.
type SelectOption struct {
	Value string
	Label string
}

// PropertyDescriptor describes one editable attribute of a component:
// its widget kind, display label, default value, and kind-specific extras.
type PropertyDescriptor struct {
	Type    PropertyType
	Label   string
	Default any
	// Options is the value list for select descriptors. Values are unique
	// within the list.
	Options []SelectOption
	// Min and Max bound number inputs when non-nil.
	Min *float64
	Max *float64
	// Group names the panel section the field renders under; empty means
	// "General".
	Group string
	// BeforeInit, when set, overrides the descriptor just-in-time at panel
	// render.
	BeforeInit BeforeInitFunc
}

// GroupOrDefault returns the panel group, defaulting to "General".
func (p PropertyDescriptor) GroupOrDefault() string {
	if p.Group == "" {
		return "General"
	}
	return p.Group
}

// OptionValues returns the descriptor's option values in declaration order.
func (p PropertyDescriptor) OptionValues() []string {
	vals := make([]string, 0, len(p.Options))
	for _, o := range p.Options {
		vals = append(vals, o.Value)
	}
	return vals
}

// Validate checks descriptor invariants: the type must be a known widget
// kind, select option values must be unique, and min must not exceed max.
func (p PropertyDescriptor) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("unknown property type %q", p.Type)
	}
	if len(p.Options) > 0 {
		seen := make(map[string]struct{}, len(p.Options))
		for _, o := range p.Options {
			if _, dup := seen[o.Value]; dup {
				return fmt.Errorf("duplicate option value %q", o.Value)
			}
			seen[o.Value] = struct{}{}
		}
	}
	if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
		return fmt.Errorf("min %v exceeds max %v", *p.Min, *p.Max)
	}
	return nil
}
