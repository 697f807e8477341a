// Package catalog ships the built-in component definitions: buttons, text,
// cards, column layouts, dropdowns, and the layered panel. Definitions are
// data conforming to the engine's schema; the engine itself knows nothing
// about them.
package catalog

import (
	"fmt"
	"html"
	"strconv"

	xhtml "golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/registry"
	"github.com/ankitkaran99/tinymce-components/internal/types"
)

// Definitions returns the built-in component definitions in catalog order.
func Definitions() []*types.ComponentDefinition {
	return []*types.ComponentDefinition{
		Button(),
		Text(),
		Card(),
		Columns(),
		Column(),
		Dropdown(),
		DropdownItem(),
		LayerPanel(),
	}
}

// RegisterAll registers every built-in definition, stopping at the first
// failure.
func RegisterAll(reg *registry.Registry) error {
	for _, def := range Definitions() {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Button is a styled action button. Its btnStyle select drives the btn-*
// class on the live element; switching styles removes the previous option
// class before adding the new one.
func Button() *types.ComponentDefinition {
	styleOptions := []types.SelectOption{
		{Value: "btn-primary", Label: "Primary"},
		{Value: "btn-secondary", Label: "Secondary"},
		{Value: "btn-success", Label: "Success"},
		{Value: "btn-danger", Label: "Danger"},
		{Value: "btn-warning", Label: "Warning"},
	}
	return &types.ComponentDefinition{
		ID:       "button",
		Name:     "Button",
		Icon:     `<span class="tmce-icon-button"></span>`,
		Category: "basic",
		Content: func(props types.PropertyValues) string {
			return fmt.Sprintf(`<button type="button" class="btn %s">%s</button>`,
				str(props["btnStyle"]), html.EscapeString(str(props["text"])))
		},
		Properties: []types.PropertySpec{
			{Name: "text", PropertyDescriptor: types.PropertyDescriptor{
				Type: types.PropertyText, Label: "Label", Default: "Button",
			}},
			{Name: "btnStyle", PropertyDescriptor: types.PropertyDescriptor{
				Type: types.PropertySelect, Label: "Style", Default: "btn-primary",
				Options: styleOptions,
			}},
		},
		EditorStyle: `.btn{cursor:default;}`,
		OnUpdate: func(host dom.HostEditor, el *xhtml.Node, name string, value any, desc types.PropertyDescriptor) {
			switch name {
			case "text":
				dom.SetText(el, str(value))
			case "btnStyle":
				for _, opt := range desc.Options {
					dom.RemoveClass(el, opt.Value)
				}
				if v := str(value); v != "" {
					dom.AddClass(el, v)
				}
			}
		},
	}
}

// Text is a plain paragraph block used as a default slot filler.
func Text() *types.ComponentDefinition {
	return &types.ComponentDefinition{
		ID:       "text",
		Name:     "Text",
		Category: "basic",
		Content: func(props types.PropertyValues) string {
			return fmt.Sprintf(`<p>%s</p>`, html.EscapeString(str(props["text"])))
		},
		Properties: []types.PropertySpec{
			{Name: "text", PropertyDescriptor: types.PropertyDescriptor{
				Type: types.PropertyTextarea, Label: "Text", Default: "Text",
			}},
		},
		OnUpdate: func(host dom.HostEditor, el *xhtml.Node, name string, value any, desc types.PropertyDescriptor) {
			if name == "text" {
				dom.SetText(el, str(value))
			}
		},
	}
}

// Card is a header/body container whose slots auto-fill with text blocks.
func Card() *types.ComponentDefinition {
	return &types.ComponentDefinition{
		ID:       "card",
		Name:     "Card",
		Category: "layout",
		Content: func(props types.PropertyValues) string {
			return `<div class="card">` +
				`<div class="card-header" data-component-children="header"></div>` +
				`<div class="card-body" data-component-children="body"></div>` +
				`</div>`
		},
		Properties: []types.PropertySpec{
			{Name: "shadow", PropertyDescriptor: types.PropertyDescriptor{
				Type: types.PropertyCheckbox, Label: "Shadow", Default: false, Group: "Appearance",
			}},
		},
		Children: map[string]types.SlotSpec{
			"header": types.Fill("text"),
			"body":   types.Fill("text"),
		},
		EditorStyle: `.card{border:1px dashed #ccd;}`,
		OnUpdate: func(host dom.HostEditor, el *xhtml.Node, name string, value any, desc types.PropertyDescriptor) {
			if name == "shadow" {
				if v, ok := value.(bool); ok && v {
					dom.AddClass(el, "card-shadow")
				} else {
					dom.RemoveClass(el, "card-shadow")
				}
			}
		},
	}
}

// Columns is a row container auto-filled with column children; only columns
// may be dropped into it.
func Columns() *types.ComponentDefinition {
	two := 2.0
	min, max := 1.0, 6.0
	return &types.ComponentDefinition{
		ID:       "columns",
		Name:     "Columns",
		Category: "layout",
		Content: func(props types.PropertyValues) string {
			return `<div class="row" data-component-children="default"></div>`
		},
		Properties: []types.PropertySpec{
			{Name: "cols", PropertyDescriptor: types.PropertyDescriptor{
				Type: types.PropertyNumber, Label: "Columns", Default: two,
				Min: &min, Max: &max,
			}},
		},
		Children: map[string]types.SlotSpec{
			"default": types.FillN("column", 2),
		},
		Allowed: map[string]types.AllowRule{
			"default": types.Allow("column"),
		},
		EditorStyle: `.row{display:flex;gap:8px;}`,
	}
}

// Column is an open container cell inside a Columns row.
func Column() *types.ComponentDefinition {
	return &types.ComponentDefinition{
		ID:       "column",
		Name:     "Column",
		Category: "layout",
		Content: func(props types.PropertyValues) string {
			return `<div class="col" data-component-children="default"></div>`
		},
	}
}

// Dropdown is a toggle plus menu; the menu slot accepts only dropdown items.
func Dropdown() *types.ComponentDefinition {
	return &types.ComponentDefinition{
		ID:       "dropdown",
		Name:     "Dropdown",
		Category: "navigation",
		Content: func(props types.PropertyValues) string {
			return fmt.Sprintf(`<div class="dropdown">`+
				`<button type="button" class="btn dropdown-toggle">%s</button>`+
				`<ul class="dropdown-menu" data-component-children="items"></ul>`+
				`</div>`, html.EscapeString(str(props["label"])))
		},
		Properties: []types.PropertySpec{
			{Name: "label", PropertyDescriptor: types.PropertyDescriptor{
				Type: types.PropertyText, Label: "Label", Default: "Menu",
			}},
		},
		Children: map[string]types.SlotSpec{
			"items": types.FillN("dropdown-item", 2),
		},
		Allowed: map[string]types.AllowRule{
			"items": types.Allow("dropdown-item"),
		},
		OnUpdate: func(host dom.HostEditor, el *xhtml.Node, name string, value any, desc types.PropertyDescriptor) {
			if name != "label" {
				return
			}
			toggles := dom.Descendants(el, func(n *xhtml.Node) bool {
				return dom.HasClass(n, "dropdown-toggle")
			})
			if len(toggles) > 0 {
				dom.SetText(toggles[0], str(value))
			}
		},
	}
}

// DropdownItem is a menu entry that may only live under a dropdown-menu
// ancestor; the restriction predicate enforces this wherever no slot rule
// takes precedence.
func DropdownItem() *types.ComponentDefinition {
	return &types.ComponentDefinition{
		ID:       "dropdown-item",
		Name:     "Dropdown Item",
		Category: "navigation",
		Content: func(props types.PropertyValues) string {
			return fmt.Sprintf(`<li class="dropdown-item">%s</li>`, html.EscapeString(str(props["text"])))
		},
		Properties: []types.PropertySpec{
			{Name: "text", PropertyDescriptor: types.PropertyDescriptor{
				Type: types.PropertyText, Label: "Text", Default: "Item",
			}},
		},
		Restriction: func(target *xhtml.Node) bool {
			return dom.ClosestWithClass(target, "dropdown-menu") != nil
		},
		OnUpdate: func(host dom.HostEditor, el *xhtml.Node, name string, value any, desc types.PropertyDescriptor) {
			if name == "text" {
				dom.SetText(el, str(value))
			}
		},
	}
}

// LayerPanel is a stateful tabbed container: layers stack on top of each
// other and the activeLayer property selects which one is visible. Its
// onFocus hook activates the declared layer lazily; the session guarantees
// the hook runs once per element.
func LayerPanel() *types.ComponentDefinition {
	one := 1.0
	min, max := 1.0, 3.0
	activate := func(el *xhtml.Node, layer int) {
		panes := dom.Descendants(el, func(n *xhtml.Node) bool {
			return dom.HasClass(n, "layer-pane")
		})
		for i, pane := range panes {
			if i+1 == layer {
				dom.AddClass(pane, "active")
			} else {
				dom.RemoveClass(pane, "active")
			}
		}
	}
	return &types.ComponentDefinition{
		ID:       "layer-panel",
		Name:     "Layer Panel",
		Category: "layout",
		Content: func(props types.PropertyValues) string {
			return `<div class="layer-panel">` +
				`<div class="layer-pane" data-component-children="layer-1"></div>` +
				`<div class="layer-pane" data-component-children="layer-2"></div>` +
				`<div class="layer-pane" data-component-children="layer-3"></div>` +
				`</div>`
		},
		Properties: []types.PropertySpec{
			{Name: "activeLayer", PropertyDescriptor: types.PropertyDescriptor{
				Type: types.PropertyNumber, Label: "Active layer", Default: one,
				Min: &min, Max: &max,
			}},
		},
		Children: map[string]types.SlotSpec{
			"layer-1": types.Fill("text"),
		},
		EditorStyle: `.layer-pane{display:none;}.layer-pane.active{display:block;}`,
		OnFocus: func(host dom.HostEditor, el *xhtml.Node, def *types.ComponentDefinition) {
			raw, _ := dom.GetAttr(el, dom.PropAttrPrefix+"activeLayer")
			layer, err := strconv.ParseFloat(raw, 64)
			if err != nil || layer < 1 {
				layer = 1
			}
			activate(el, int(layer))
		},
		OnUpdate: func(host dom.HostEditor, el *xhtml.Node, name string, value any, desc types.PropertyDescriptor) {
			if name != "activeLayer" {
				return
			}
			if f, ok := value.(float64); ok {
				activate(el, int(f))
			}
		},
	}
}
