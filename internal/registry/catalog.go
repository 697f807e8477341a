package registry

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tabTitle formats category slugs as tab labels.
var tabTitle = cases.Title(language.English)

// RenderCatalog renders the browsable catalog panel: one tab per category in
// first-registration order plus one list of draggable entries per tab. The
// first category is active by default; switching tabs is pure visibility
// toggling on the client, so the whole panel is rendered once.
//
// Each entry is a native drag source carrying the component id as its
// transfer payload. The drag payload encoding (and the explicit clearing of
// the plain-text payload, which would otherwise trigger the host editor's
// text-insertion fallback) is handled by the drag controller.
func (r *Registry) RenderCatalog() string {
	categories := r.Categories()
	var b strings.Builder
	b.WriteString(`<div class="tmce-catalog">`)

	b.WriteString(`<div class="tmce-catalog-tabs">`)
	for i, cat := range categories {
		active := ""
		if i == 0 {
			active = " active"
		}
		fmt.Fprintf(&b, `<button type="button" class="tmce-catalog-tab%s" data-category="%s">%s</button>`,
			active, html.EscapeString(cat), html.EscapeString(tabTitle.String(cat)))
	}
	b.WriteString(`</div>`)

	for i, cat := range categories {
		active := ""
		if i == 0 {
			active = " active"
		}
		fmt.Fprintf(&b, `<div class="tmce-catalog-panel%s" data-category="%s">`, active, html.EscapeString(cat))
		for _, def := range r.ByCategory(cat) {
			fmt.Fprintf(&b, `<div class="tmce-catalog-item" draggable="true" data-component="%s">`,
				html.EscapeString(def.ID))
			if def.Icon != "" {
				fmt.Fprintf(&b, `<span class="tmce-catalog-icon">%s</span>`, def.Icon)
			}
			fmt.Fprintf(&b, `<span class="tmce-catalog-name">%s</span>`, html.EscapeString(def.Name))
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}
