package panel

import (
	"fmt"
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// styleField is one control of the generic inline-style editor.
type styleField struct {
	Label string
	Prop  string
	// Kind selects the control: "text", "color", or "select".
	Kind    string
	Options []string
}

// The generic editor sections. Border and spacing are offered both unified
// and per-side; the unified field simply writes the shorthand property.
var (
	typographyFields = []styleField{
		{Label: "Font family", Prop: "font-family", Kind: "text"},
		{Label: "Font size", Prop: "font-size", Kind: "text"},
		{Label: "Font weight", Prop: "font-weight", Kind: "select",
			Options: []string{"", "normal", "bold", "100", "300", "400", "500", "700", "900"}},
		{Label: "Line height", Prop: "line-height", Kind: "text"},
		{Label: "Text align", Prop: "text-align", Kind: "select",
			Options: []string{"", "left", "center", "right", "justify"}},
	}
	colorFields = []styleField{
		{Label: "Text color", Prop: "color", Kind: "color"},
		{Label: "Background", Prop: "background-color", Kind: "color"},
	}
	borderFields = []styleField{
		{Label: "Border", Prop: "border", Kind: "text"},
		{Label: "Border top", Prop: "border-top", Kind: "text"},
		{Label: "Border right", Prop: "border-right", Kind: "text"},
		{Label: "Border bottom", Prop: "border-bottom", Kind: "text"},
		{Label: "Border left", Prop: "border-left", Kind: "text"},
		{Label: "Border radius", Prop: "border-radius", Kind: "text"},
	}
	spacingFields = []styleField{
		{Label: "Margin", Prop: "margin", Kind: "text"},
		{Label: "Margin top", Prop: "margin-top", Kind: "text"},
		{Label: "Margin right", Prop: "margin-right", Kind: "text"},
		{Label: "Margin bottom", Prop: "margin-bottom", Kind: "text"},
		{Label: "Margin left", Prop: "margin-left", Kind: "text"},
		{Label: "Padding", Prop: "padding", Kind: "text"},
		{Label: "Padding top", Prop: "padding-top", Kind: "text"},
		{Label: "Padding right", Prop: "padding-right", Kind: "text"},
		{Label: "Padding bottom", Prop: "padding-bottom", Kind: "text"},
		{Label: "Padding left", Prop: "padding-left", Kind: "text"},
	}
	sizeFields = []styleField{
		{Label: "Width", Prop: "width", Kind: "text"},
		{Label: "Height", Prop: "height", Kind: "text"},
		{Label: "Position", Prop: "position", Kind: "select",
			Options: []string{"", "static", "relative", "absolute", "fixed", "sticky"}},
		{Label: "Top", Prop: "top", Kind: "text"},
		{Label: "Left", Prop: "left", Kind: "text"},
		{Label: "Display", Prop: "display", Kind: "select",
			Options: []string{"", "block", "inline", "inline-block", "flex", "grid", "none"}},
	}
	flexFields = []styleField{
		{Label: "Direction", Prop: "flex-direction", Kind: "select",
			Options: []string{"", "row", "row-reverse", "column", "column-reverse"}},
		{Label: "Justify", Prop: "justify-content", Kind: "select",
			Options: []string{"", "flex-start", "center", "flex-end", "space-between", "space-around"}},
		{Label: "Align", Prop: "align-items", Kind: "select",
			Options: []string{"", "stretch", "flex-start", "center", "flex-end", "baseline"}},
		{Label: "Wrap", Prop: "flex-wrap", Kind: "select",
			Options: []string{"", "nowrap", "wrap", "wrap-reverse"}},
		{Label: "Gap", Prop: "gap", Kind: "text"},
	}
	gridFields = []styleField{
		{Label: "Columns", Prop: "grid-template-columns", Kind: "text"},
		{Label: "Rows", Prop: "grid-template-rows", Kind: "text"},
		{Label: "Gap", Prop: "gap", Kind: "text"},
		{Label: "Justify items", Prop: "justify-items", Kind: "select",
			Options: []string{"", "start", "center", "end", "stretch"}},
		{Label: "Align items", Prop: "align-items", Kind: "select",
			Options: []string{"", "start", "center", "end", "stretch"}},
	}
)

// renderStyleEditor renders the generic CSS-property editor for a selection
// with no known definition. Values read and write inline styles through the
// host; no schema, no data-prop-* attributes. Flex and grid sections appear
// only when the element's display declares that layout.
func (r *Renderer) renderStyleEditor(b *strings.Builder, sel *xhtml.Node) {
	r.renderStyleSection(b, sel, "Typography", typographyFields)
	r.renderStyleSection(b, sel, "Color", colorFields)
	r.renderStyleSection(b, sel, "Border", borderFields)
	r.renderStyleSection(b, sel, "Spacing", spacingFields)
	r.renderStyleSection(b, sel, "Size & Position", sizeFields)

	switch r.host.InlineStyle(sel, "display") {
	case "flex", "inline-flex":
		r.renderStyleSection(b, sel, "Flex Layout", flexFields)
	case "grid", "inline-grid":
		r.renderStyleSection(b, sel, "Grid Layout", gridFields)
	}
}

func (r *Renderer) renderStyleSection(b *strings.Builder, sel *xhtml.Node, title string, fields []styleField) {
	fmt.Fprintf(b, `<div class="tmce-group"><div class="tmce-group-title">%s</div>`, html.EscapeString(title))
	for _, f := range fields {
		current := r.host.InlineStyle(sel, f.Prop)
		fmt.Fprintf(b, `<div class="tmce-field" data-style-prop="%s"><label>%s</label>`,
			attr(f.Prop), html.EscapeString(f.Label))
		switch f.Kind {
		case "color":
			fmt.Fprintf(b, `<input type="color" class="tmce-color" name="%s" value="%s">`,
				attr(f.Prop), attr(current))
		case "select":
			fmt.Fprintf(b, `<select class="tmce-select" name="%s">`, attr(f.Prop))
			for _, opt := range f.Options {
				selected := ""
				if opt == current {
					selected = ` selected`
				}
				fmt.Fprintf(b, `<option value="%s"%s>%s</option>`, attr(opt), selected, html.EscapeString(opt))
			}
			b.WriteString(`</select>`)
		default:
			fmt.Fprintf(b, `<input type="text" class="tmce-input" name="%s" value="%s">`,
				attr(f.Prop), attr(current))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
}
