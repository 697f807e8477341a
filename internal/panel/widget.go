// Package panel generates the property-editing UI for the current selection:
// schema-driven input controls for known components, a generic inline-style
// editor for everything else, and the style-selector header shared by both.
package panel

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/ankitkaran99/tinymce-components/internal/types"
)

// widget bundles the behavior of one property widget kind: rendering the
// control and parsing raw input back into the descriptor's value domain.
type widget struct {
	// Render writes the control markup for the named property.
	Render func(b *strings.Builder, name string, desc types.PropertyDescriptor, value any)
	// Parse maps raw input to a typed value; false rejects the change.
	Parse func(raw string, desc types.PropertyDescriptor) (any, bool)
}

// attr renders an HTML-escaped attribute value.
func attr(v string) string {
	return html.EscapeString(v)
}

// widgetTable is the total mapping from widget kind to behavior. Every
// member of types.AllPropertyTypes must have an entry; the exhaustiveness
// test enforces this when a new kind is added.
var widgetTable = map[types.PropertyType]widget{
	types.PropertyText: {
		Render: func(b *strings.Builder, name string, desc types.PropertyDescriptor, value any) {
			fmt.Fprintf(b, `<input type="text" class="tmce-input" name="%s" value="%s">`,
				attr(name), attr(stringValue(value)))
		},
		Parse: parseString,
	},
	types.PropertyNumber: {
		Render: func(b *strings.Builder, name string, desc types.PropertyDescriptor, value any) {
			fmt.Fprintf(b, `<input type="number" class="tmce-input" name="%s" value="%s"`,
				attr(name), attr(stringValue(value)))
			if desc.Min != nil {
				fmt.Fprintf(b, ` min="%s"`, formatFloat(*desc.Min))
			}
			if desc.Max != nil {
				fmt.Fprintf(b, ` max="%s"`, formatFloat(*desc.Max))
			}
			b.WriteString(`>`)
		},
		Parse: func(raw string, desc types.PropertyDescriptor) (any, bool) {
			f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, false
			}
			return f, true
		},
	},
	types.PropertySelect: {
		Render: func(b *strings.Builder, name string, desc types.PropertyDescriptor, value any) {
			fmt.Fprintf(b, `<select class="tmce-select" name="%s">`, attr(name))
			current := stringValue(value)
			for _, opt := range desc.Options {
				selected := ""
				if opt.Value == current {
					selected = ` selected`
				}
				fmt.Fprintf(b, `<option value="%s"%s>%s</option>`,
					attr(opt.Value), selected, html.EscapeString(opt.Label))
			}
			b.WriteString(`</select>`)
		},
		Parse: parseString,
	},
	types.PropertyCheckbox: {
		Render: func(b *strings.Builder, name string, desc types.PropertyDescriptor, value any) {
			checked := ""
			if v, ok := value.(bool); ok && v {
				checked = ` checked`
			}
			fmt.Fprintf(b, `<input type="checkbox" class="tmce-checkbox" name="%s"%s>`, attr(name), checked)
		},
		Parse: func(raw string, desc types.PropertyDescriptor) (any, bool) {
			return raw == "true" || raw == "on", true
		},
	},
	types.PropertyColor: {
		Render: func(b *strings.Builder, name string, desc types.PropertyDescriptor, value any) {
			fmt.Fprintf(b, `<input type="color" class="tmce-color" name="%s" value="%s">`,
				attr(name), attr(stringValue(value)))
		},
		Parse: parseString,
	},
	types.PropertyTextarea: {
		Render: func(b *strings.Builder, name string, desc types.PropertyDescriptor, value any) {
			fmt.Fprintf(b, `<textarea class="tmce-textarea" name="%s" rows="4">%s</textarea>`,
				attr(name), html.EscapeString(stringValue(value)))
		},
		Parse: parseString,
	},
	types.PropertyButton: {
		Render: func(b *strings.Builder, name string, desc types.PropertyDescriptor, value any) {
			label := desc.Label
			if label == "" {
				label = name
			}
			fmt.Fprintf(b, `<button type="button" class="tmce-prop-button" name="%s">%s</button>`,
				attr(name), html.EscapeString(label))
		},
		Parse: parseString,
	},
	types.PropertyHidden: {
		Render: func(b *strings.Builder, name string, desc types.PropertyDescriptor, value any) {
			fmt.Fprintf(b, `<input type="hidden" name="%s" value="%s">`, attr(name), attr(stringValue(value)))
		},
		Parse: parseString,
	},
}

func parseString(raw string, desc types.PropertyDescriptor) (any, bool) {
	return raw, true
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if f, ok := v.(float64); ok {
		return formatFloat(f)
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
