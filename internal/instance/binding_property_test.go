//go:build property

package instance

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ankitkaran99/tinymce-components/internal/types"
)

func freshElement() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}

// TestBindingRoundTripProperties validates that property writes survive the
// attribute round trip for every widget value domain.
func TestBindingRoundTripProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("text values round-trip exactly", prop.ForAll(
		func(value string) bool {
			def := &types.ComponentDefinition{
				ID: "t", Name: "t",
				Content: func(props types.PropertyValues) string { return "<div></div>" },
				Properties: []types.PropertySpec{
					{Name: "label", PropertyDescriptor: types.PropertyDescriptor{Type: types.PropertyText, Default: ""}},
				},
			}
			el := freshElement()
			WriteProperty(el, "label", value)
			return ReadProperties(el, def)["label"] == value
		},
		gen.RegexMatch(`[a-zA-Z0-9 _.:/#-]{0,40}`),
	))

	properties.Property("finite numbers round-trip", prop.ForAll(
		func(value float64) bool {
			def := &types.ComponentDefinition{
				ID: "t", Name: "t",
				Content: func(props types.PropertyValues) string { return "<div></div>" },
				Properties: []types.PropertySpec{
					{Name: "width", PropertyDescriptor: types.PropertyDescriptor{Type: types.PropertyNumber, Default: 0.0}},
				},
			}
			el := freshElement()
			WriteProperty(el, "width", value)
			got, ok := ReadProperties(el, def)["width"].(float64)
			return ok && got == value
		},
		gen.Float64Range(-1e6, 1e6),
	))

	properties.Property("booleans round-trip", prop.ForAll(
		func(value bool) bool {
			def := &types.ComponentDefinition{
				ID: "t", Name: "t",
				Content: func(props types.PropertyValues) string { return "<div></div>" },
				Properties: []types.PropertySpec{
					{Name: "shadow", PropertyDescriptor: types.PropertyDescriptor{Type: types.PropertyCheckbox, Default: false}},
				},
			}
			el := freshElement()
			WriteProperty(el, "shadow", value)
			return ReadProperties(el, def)["shadow"] == value
		},
		gen.Bool(),
	))

	properties.Property("writing then removing restores the default", prop.ForAll(
		func(value string, deflt string) bool {
			def := &types.ComponentDefinition{
				ID: "t", Name: "t",
				Content: func(props types.PropertyValues) string { return "<div></div>" },
				Properties: []types.PropertySpec{
					{Name: "label", PropertyDescriptor: types.PropertyDescriptor{Type: types.PropertyText, Default: deflt}},
				},
			}
			el := freshElement()
			WriteProperty(el, "label", value)
			WriteProperty(el, "label", nil)
			return ReadProperties(el, def)["label"] == deflt
		},
		gen.RegexMatch(`[a-z]{0,10}`),
		gen.RegexMatch(`[a-z]{0,10}`),
	))

	properties.TestingRun(t)
}
