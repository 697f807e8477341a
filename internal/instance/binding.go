// Package instance materializes component definitions into live DOM
// subtrees and keeps their property values synchronized with data-prop-*
// attributes, the sole persisted representation of instance state.
package instance

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/errors"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/types"
)

// Defaults computes the schema default value of every property.
func Defaults(def *types.ComponentDefinition) types.PropertyValues {
	values := make(types.PropertyValues, len(def.Properties))
	for _, p := range def.Properties {
		values[p.Name] = p.Default
	}
	return values
}

// ReadProperties derives the current property values of a live instance from
// its data-prop-* attributes, falling back to schema defaults, coercing each
// value by its descriptor type. Pure: the element is not mutated.
func ReadProperties(el *html.Node, def *types.ComponentDefinition) types.PropertyValues {
	values := make(types.PropertyValues, len(def.Properties))
	for _, p := range def.Properties {
		raw, ok := dom.GetAttr(el, dom.PropAttrPrefix+p.Name)
		if !ok {
			values[p.Name] = p.Default
			continue
		}
		values[p.Name] = coerce(raw, p.PropertyDescriptor)
	}
	return values
}

// coerce maps an attribute string back to the descriptor's value domain.
// A failed number parse falls back to the schema default; a boolean-typed
// default reads as string "true" equality; everything else passes through.
func coerce(raw string, desc types.PropertyDescriptor) any {
	if desc.Type == types.PropertyNumber {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return desc.Default
		}
		return f
	}
	if _, isBool := desc.Default.(bool); isBool || desc.Type == types.PropertyCheckbox {
		return raw == "true"
	}
	return raw
}

// WriteProperty persists one property value onto the element. Nil removes
// the attribute; any other value is stored in string form.
func WriteProperty(el *html.Node, name string, value any) {
	if el == nil || name == "" {
		return
	}
	if value == nil {
		dom.RemoveAttr(el, dom.PropAttrPrefix+name)
		return
	}
	dom.SetAttr(el, dom.PropAttrPrefix+name, fmt.Sprint(value))
}

// Binding applies property changes to live instances: persist to the DOM,
// dispatch the definition's update hook, notify the host. Hook panics are
// recovered, logged, and collected; DOM state written before a panic stays.
type Binding struct {
	host      dom.HostEditor
	logger    logging.Logger
	collector *errors.Collector
}

// NewBinding creates a binding layer over the host.
func NewBinding(host dom.HostEditor, logger logging.Logger, collector *errors.Collector) *Binding {
	if logger == nil {
		logger = logging.NewNop()
	}
	if collector == nil {
		collector = errors.NewCollector()
	}
	return &Binding{host: host, logger: logger.WithComponent("binding"), collector: collector}
}

// Apply validates value against the named descriptor, persists it, and
// dispatches the definition's OnUpdate hook with the changed field. Returns
// false (and skips the write) when the schema does not declare the property
// or the value fails coercion for its type.
func (b *Binding) Apply(def *types.ComponentDefinition, el *html.Node, name string, value any) bool {
	if def == nil || el == nil {
		return false
	}
	desc, ok := def.Property(name)
	if !ok {
		b.logger.Debug(context.Background(), "ignoring write to undeclared property",
			"component", def.ID, "property", name)
		return false
	}
	typed, ok := coerceInput(value, desc)
	if !ok {
		b.logger.Debug(context.Background(), "skipping write, value failed coercion",
			"component", def.ID, "property", name)
		return false
	}

	WriteProperty(el, name, typed)

	if def.OnUpdate != nil {
		b.dispatchUpdate(def, el, name, typed, desc)
	}
	b.host.NotifyContentChanged()
	return true
}

// coerceInput maps a raw user-supplied value into the descriptor's value
// domain: checkbox to bool, number to float-or-reject, everything else to
// its string form. Nil passes through, meaning "remove".
func coerceInput(value any, desc types.PropertyDescriptor) (any, bool) {
	if value == nil {
		return nil, true
	}
	switch desc.Type {
	case types.PropertyCheckbox:
		switch v := value.(type) {
		case bool:
			return v, true
		case string:
			return v == "true", true
		default:
			return nil, false
		}
	case types.PropertyNumber:
		switch v := value.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, false
			}
			return f, true
		default:
			return nil, false
		}
	default:
		return fmt.Sprint(value), true
	}
}

func (b *Binding) dispatchUpdate(def *types.ComponentDefinition, el *html.Node, name string, value any, desc types.PropertyDescriptor) {
	defer func() {
		if rec := recover(); rec != nil {
			err := errors.NewHookError("update_panic", fmt.Sprintf("onUpdate panicked: %v", rec)).
				WithComponent(def.ID).WithContext("property", name)
			b.collector.Add(err)
			b.logger.Error(context.Background(), err, "update hook failed")
		}
	}()
	def.OnUpdate(b.host, el, name, value, desc)
}

// Host exposes the host editor the binding writes through.
func (b *Binding) Host() dom.HostEditor { return b.host }
