package panel

import (
	"context"
	"fmt"
	"html"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/errors"
	"github.com/ankitkaran99/tinymce-components/internal/instance"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/registry"
	"github.com/ankitkaran99/tinymce-components/internal/types"
)

// Renderer generates the properties panel for the current selection and
// applies control changes back through the binding layer.
type Renderer struct {
	registry  *registry.Registry
	styles    *registry.StyleRegistry
	binding   *instance.Binding
	host      dom.HostEditor
	logger    logging.Logger
	collector *errors.Collector
}

// NewRenderer creates a panel renderer.
func NewRenderer(reg *registry.Registry, styles *registry.StyleRegistry, binding *instance.Binding, host dom.HostEditor, logger logging.Logger, collector *errors.Collector) *Renderer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if collector == nil {
		collector = errors.NewCollector()
	}
	return &Renderer{
		registry:  reg,
		styles:    styles,
		binding:   binding,
		host:      host,
		logger:    logger.WithComponent("panel"),
		collector: collector,
	}
}

// Render produces the panel markup for the selected element. A selection
// with a known component definition gets the schema-driven field list; any
// other element gets the generic inline-style editor. The style selector is
// always prepended, whichever mode is active.
func (r *Renderer) Render(sel *xhtml.Node) string {
	var b strings.Builder
	b.WriteString(`<div class="tmce-panel">`)
	r.renderStyleSelector(&b, sel)

	if sel != nil {
		if id, ok := dom.GetAttr(sel, dom.AttrComponent); ok {
			if def := r.registry.Get(id); def != nil {
				r.renderSchema(&b, def, sel)
				b.WriteString(`</div>`)
				return b.String()
			}
			// orphaned data-component reference: fall through to the
			// generic editor
		}
		r.renderStyleEditor(&b, sel)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// renderStyleSelector prepends the named-style dropdown fed by the style
// registry, with the element's current classification selected.
func (r *Renderer) renderStyleSelector(b *strings.Builder, sel *xhtml.Node) {
	current := ""
	if sel != nil {
		current = r.styles.CurrentStyle(sel)
	}
	b.WriteString(`<div class="tmce-field tmce-style-selector"><label>Style</label>`)
	b.WriteString(`<select class="tmce-select" name="__style">`)
	b.WriteString(`<option value=""></option>`)
	for _, name := range r.styles.Names() {
		selected := ""
		if name == current {
			selected = ` selected`
		}
		fmt.Fprintf(b, `<option value="%s"%s>%s</option>`, attr(name), selected, html.EscapeString(name))
	}
	b.WriteString(`</select></div>`)
}

// renderSchema renders one control per property descriptor, grouped by the
// descriptor's panel group in schema order.
func (r *Renderer) renderSchema(b *strings.Builder, def *types.ComponentDefinition, sel *xhtml.Node) {
	values := instance.ReadProperties(sel, def)

	// Snapshot the schema before rendering; a BeforeInit override only
	// affects the field being drawn, never the definition.
	props := make([]types.PropertySpec, len(def.Properties))
	copy(props, def.Properties)

	groupOrder := make([]string, 0, 4)
	grouped := make(map[string][]types.PropertySpec)
	for _, p := range props {
		g := p.GroupOrDefault()
		if _, seen := grouped[g]; !seen {
			groupOrder = append(groupOrder, g)
		}
		grouped[g] = append(grouped[g], p)
	}

	for _, g := range groupOrder {
		fmt.Fprintf(b, `<div class="tmce-group"><div class="tmce-group-title">%s</div>`, html.EscapeString(g))
		for _, p := range grouped[g] {
			desc := r.effectiveDescriptor(def, sel, p)
			if desc.Type == types.PropertyHidden {
				w := widgetTable[desc.Type]
				w.Render(b, p.Name, desc, values[p.Name])
				continue
			}
			fmt.Fprintf(b, `<div class="tmce-field" data-prop="%s">`, attr(p.Name))
			if desc.Type != types.PropertyButton {
				label := desc.Label
				if label == "" {
					label = p.Name
				}
				fmt.Fprintf(b, `<label>%s</label>`, html.EscapeString(label))
			}
			w, ok := widgetTable[desc.Type]
			if !ok {
				b.WriteString(`</div>`)
				continue
			}
			w.Render(b, p.Name, desc, values[p.Name])
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
	}
}

// effectiveDescriptor applies the property's BeforeInit override, if any,
// against the live element. A panicking override falls back to the declared
// descriptor.
func (r *Renderer) effectiveDescriptor(def *types.ComponentDefinition, sel *xhtml.Node, p types.PropertySpec) (desc types.PropertyDescriptor) {
	desc = p.PropertyDescriptor
	if p.BeforeInit == nil {
		return desc
	}
	defer func() {
		if rec := recover(); rec != nil {
			err := errors.NewHookError("before_init_panic", fmt.Sprintf("beforeInit panicked: %v", rec)).
				WithComponent(def.ID).WithContext("property", p.Name)
			r.collector.Add(err)
			r.logger.Error(context.Background(), err, "descriptor override failed")
			desc = p.PropertyDescriptor
		}
	}()
	return p.BeforeInit(sel, desc)
}

// ApplyChange runs the full change pipeline for one control: parse the raw
// input by widget kind, persist through the binding layer (which dispatches
// the update hook and notifies the host), and return the re-rendered panel
// so dynamic descriptor state is reflected immediately.
func (r *Renderer) ApplyChange(sel *xhtml.Node, name, raw string) (string, bool) {
	if sel == nil {
		return r.Render(sel), false
	}
	id, ok := dom.GetAttr(sel, dom.AttrComponent)
	if !ok {
		return r.Render(sel), false
	}
	def := r.registry.Get(id)
	if def == nil {
		return r.Render(sel), false
	}
	desc, ok := def.Property(name)
	if !ok {
		return r.Render(sel), false
	}
	w := widgetTable[desc.Type]
	value, ok := w.Parse(raw, desc)
	if !ok {
		r.logger.Debug(context.Background(), "rejecting control input",
			"component", id, "property", name)
		return r.Render(sel), false
	}
	applied := r.binding.Apply(def, sel, name, value)
	return r.Render(sel), applied
}

// ApplyStyleChange writes one inline style declaration on a schema-less
// selection through the host and returns the re-rendered panel.
func (r *Renderer) ApplyStyleChange(sel *xhtml.Node, prop, value string) string {
	if sel != nil {
		r.host.SetInlineStyle(sel, prop, value)
		r.host.NotifyContentChanged()
	}
	return r.Render(sel)
}
