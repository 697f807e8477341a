package panel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/instance"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/registry"
	"github.com/ankitkaran99/tinymce-components/internal/types"
)

type fixture struct {
	host     *dom.Host
	registry *registry.Registry
	styles   *registry.StyleRegistry
	renderer *Renderer
}

func newFixture(t *testing.T, markup string, defs ...*types.ComponentDefinition) *fixture {
	t.Helper()
	host, err := dom.NewHost(markup)
	require.NoError(t, err)
	logger := logging.NewNop()
	reg := registry.New(logger)
	for _, d := range defs {
		require.NoError(t, reg.Register(d))
	}
	styles := registry.NewStyleRegistry()
	binding := instance.NewBinding(host, logger, nil)
	return &fixture{
		host:     host,
		registry: reg,
		styles:   styles,
		renderer: NewRenderer(reg, styles, binding, host, logger, nil),
	}
}

func cardDef() *types.ComponentDefinition {
	return &types.ComponentDefinition{
		ID:   "card",
		Name: "Card",
		Content: func(props types.PropertyValues) string {
			return `<div class="card"></div>`
		},
		Properties: []types.PropertySpec{
			{Name: "title", PropertyDescriptor: types.PropertyDescriptor{Type: types.PropertyText, Label: "Title", Default: "Card"}},
			{Name: "shadow", PropertyDescriptor: types.PropertyDescriptor{Type: types.PropertyCheckbox, Group: "Appearance", Default: false}},
			{Name: "tone", PropertyDescriptor: types.PropertyDescriptor{
				Type:  types.PropertySelect,
				Group: "Appearance",
				Options: []types.SelectOption{
					{Value: "light", Label: "Light"},
					{Value: "dark", Label: "Dark"},
				},
				Default: "light",
			}},
			{Name: "state", PropertyDescriptor: types.PropertyDescriptor{Type: types.PropertyHidden, Default: "idle"}},
		},
	}
}

func (f *fixture) firstElement(t *testing.T) *xhtml.Node {
	t.Helper()
	for c := f.host.DocumentRoot().FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c) {
			return c
		}
	}
	t.Fatal("no element in document")
	return nil
}

func TestWidgetTable_CoversEveryPropertyType(t *testing.T) {
	for _, pt := range types.AllPropertyTypes() {
		w, ok := widgetTable[pt]
		require.True(t, ok, "missing widget for %q", pt)
		assert.NotNil(t, w.Render, "widget %q has no renderer", pt)
		assert.NotNil(t, w.Parse, "widget %q has no parser", pt)
	}
}

func TestWidgetRender_EscapesValues(t *testing.T) {
	var b strings.Builder
	widgetTable[types.PropertyText].Render(&b, "label", types.PropertyDescriptor{Type: types.PropertyText}, `"><script>`)
	out := b.String()
	assert.NotContains(t, out, `"><script>`)
	assert.Contains(t, out, `&#34;&gt;&lt;script&gt;`)
}

func TestRender_SchemaMode(t *testing.T) {
	f := newFixture(t, `<div data-component="card" data-prop-title="Pricing" data-prop-tone="dark"></div>`, cardDef())
	sel := f.firstElement(t)

	out := f.renderer.Render(sel)

	// Style selector always leads.
	assert.Less(t, strings.Index(out, "tmce-style-selector"), strings.Index(out, "tmce-group"))

	// Groups appear in first-appearance order.
	assert.Less(t, strings.Index(out, "General"), strings.Index(out, "Appearance"))

	// Stored values win over defaults.
	assert.Contains(t, out, `value="Pricing"`)
	assert.Contains(t, out, `<option value="dark" selected>`)

	// Hidden fields render without a wrapper or label.
	assert.Contains(t, out, `<input type="hidden" name="state" value="idle">`)
	assert.NotContains(t, out, `data-prop="state"`)
}

func TestRender_OrphanComponentFallsBackToStyleEditor(t *testing.T) {
	f := newFixture(t, `<div data-component="ghost"></div>`)
	out := f.renderer.Render(f.firstElement(t))
	assert.Contains(t, out, "Typography")
	assert.NotContains(t, out, `data-prop=`)
}

func TestRender_NilSelectionStillHasStyleSelector(t *testing.T) {
	f := newFixture(t, `<p>x</p>`)
	out := f.renderer.Render(nil)
	assert.Contains(t, out, "tmce-style-selector")
	assert.NotContains(t, out, "Typography")
}

func TestRender_BeforeInitOverridesDescriptor(t *testing.T) {
	def := cardDef()
	def.Properties[2].BeforeInit = func(el *xhtml.Node, desc types.PropertyDescriptor) types.PropertyDescriptor {
		desc.Options = append(desc.Options, types.SelectOption{Value: "sepia", Label: "Sepia"})
		return desc
	}
	f := newFixture(t, `<div data-component="card"></div>`, def)

	out := f.renderer.Render(f.firstElement(t))
	assert.Contains(t, out, `<option value="sepia">`)

	// The override is per-render; the registered schema keeps two options.
	reg := f.registry.Get("card")
	desc, ok := reg.Property("tone")
	require.True(t, ok)
	assert.Len(t, desc.Options, 2)
}

func TestRender_BeforeInitPanicFallsBackToDeclared(t *testing.T) {
	def := cardDef()
	def.Properties[2].BeforeInit = func(el *xhtml.Node, desc types.PropertyDescriptor) types.PropertyDescriptor {
		panic("boom")
	}
	f := newFixture(t, `<div data-component="card"></div>`, def)

	var out string
	assert.NotPanics(t, func() { out = f.renderer.Render(f.firstElement(t)) })
	assert.Contains(t, out, `<option value="light"`)
	assert.Contains(t, out, `<option value="dark"`)
}

func TestApplyChange_Pipeline(t *testing.T) {
	f := newFixture(t, `<div data-component="card"></div>`, cardDef())
	sel := f.firstElement(t)

	out, applied := f.renderer.ApplyChange(sel, "title", "Hello")
	assert.True(t, applied)
	got, _ := dom.GetAttr(sel, dom.PropAttrPrefix+"title")
	assert.Equal(t, "Hello", got)
	assert.Contains(t, out, `value="Hello"`)

	// Checkbox input normalizes to a boolean attribute value.
	_, applied = f.renderer.ApplyChange(sel, "shadow", "on")
	assert.True(t, applied)
	got, _ = dom.GetAttr(sel, dom.PropAttrPrefix+"shadow")
	assert.Equal(t, "true", got)
}

func TestApplyChange_RejectsUnknownTargets(t *testing.T) {
	f := newFixture(t, `<p>plain</p>`, cardDef())
	sel := f.firstElement(t)

	_, applied := f.renderer.ApplyChange(sel, "title", "x")
	assert.False(t, applied, "schema-less elements take no property writes")

	_, applied = f.renderer.ApplyChange(nil, "title", "x")
	assert.False(t, applied)
}

func TestApplyChange_RejectsUnparsableNumber(t *testing.T) {
	def := cardDef()
	def.Properties = append(def.Properties, types.PropertySpec{
		Name:               "cols",
		PropertyDescriptor: types.PropertyDescriptor{Type: types.PropertyNumber, Default: 2.0},
	})
	f := newFixture(t, `<div data-component="card"></div>`, def)
	sel := f.firstElement(t)

	_, applied := f.renderer.ApplyChange(sel, "cols", "lots")
	assert.False(t, applied)
	_, ok := dom.GetAttr(sel, dom.PropAttrPrefix+"cols")
	assert.False(t, ok)
}

func TestApplyStyleChange_WritesInlineStyle(t *testing.T) {
	f := newFixture(t, `<p>plain</p>`)
	sel := f.firstElement(t)
	notified := 0
	f.host.OnContentChanged(func() { notified++ })

	out := f.renderer.ApplyStyleChange(sel, "color", "red")
	assert.Equal(t, "red", f.host.InlineStyle(sel, "color"))
	assert.Equal(t, 1, notified)
	assert.Contains(t, out, `data-style-prop="color"`)
}

func TestRenderStyleEditor_ConditionalSections(t *testing.T) {
	f := newFixture(t, `<div style="display: flex"></div><div style="display: grid"></div><div></div>`)

	var els []*xhtml.Node
	for c := f.host.DocumentRoot().FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c) {
			els = append(els, c)
		}
	}
	require.Len(t, els, 3)

	flexOut := f.renderer.Render(els[0])
	assert.Contains(t, flexOut, "Flex Layout")
	assert.NotContains(t, flexOut, "Grid Layout")

	gridOut := f.renderer.Render(els[1])
	assert.Contains(t, gridOut, "Grid Layout")
	assert.NotContains(t, gridOut, "Flex Layout")

	plainOut := f.renderer.Render(els[2])
	assert.NotContains(t, plainOut, "Flex Layout")
	assert.NotContains(t, plainOut, "Grid Layout")
}
