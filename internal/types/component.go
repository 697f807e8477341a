// Package types provides the shared value types of the component engine.
// This package contains the definition and property schema types consumed by
// the registry, placement, instantiation, binding, and panel packages, kept
// separate to avoid circular dependencies between them.
package types

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
)

// PropertyValues holds the current property values of a live instance,
// keyed by property name.
type PropertyValues map[string]any

// ContentFunc renders a definition's structural skeleton from property
// values. It must return markup with exactly one root element, optionally
// containing data-component-children slot markers.
type ContentFunc func(props PropertyValues) string

// RestrictionFunc is the fallback containment predicate, consulted when the
// drop target is not governed by an ancestor's slot allow-rule.
type RestrictionFunc func(target *html.Node) bool

// InsertFunc runs after an instance subtree has been created and placed.
type InsertFunc func(host dom.HostEditor, el *html.Node, def *ComponentDefinition)

// UpdateFunc runs after a single property value has been persisted. It
// receives only the changed field; hooks needing the full snapshot re-read
// it from the element.
type UpdateFunc func(host dom.HostEditor, el *html.Node, name string, value any, desc PropertyDescriptor)

// RemoveFunc runs before an instance is detached from the document.
type RemoveFunc func(host dom.HostEditor, el *html.Node)

// FocusFunc runs when an instance becomes the current selection. The engine
// invokes it at most once per element per session; hooks may still guard
// their own wiring.
type FocusFunc func(host dom.HostEditor, el *html.Node, def *ComponentDefinition)

// BeforeInitFunc is a just-in-time descriptor override, evaluated each time
// the properties panel renders a field. It receives the live element and the
// declared descriptor and returns the descriptor to use, e.g. to compute a
// dynamic option list from current DOM state.
type BeforeInitFunc func(el *html.Node, desc PropertyDescriptor) PropertyDescriptor

// ComponentDefinition describes one kind of insertable element. Definitions
// are immutable after registration; all instance state lives in the DOM.
type ComponentDefinition struct {
	// ID is the globally unique definition identity, the registry key.
	ID string
	// Name is the display name shown in the catalog panel.
	Name string
	// Icon is the catalog display icon (markup or icon class).
	Icon string
	// Category groups the definition in the catalog; empty means "general".
	Category string
	// Content renders the instance skeleton from property values.
	Content ContentFunc
	// Properties is the editable property schema in display order.
	Properties []PropertySpec
	// Children maps slot names to what is auto-inserted on first
	// instantiation.
	Children map[string]SlotSpec
	// Allowed maps slot names to drop allow-rules. A slot with no entry is
	// unrestricted.
	Allowed map[string]AllowRule
	// Restriction is the fallback containment predicate; nil means
	// always-allowed.
	Restriction RestrictionFunc
	// EditorStyle is CSS scoped to the editing surface, injected once when
	// the definition is registered.
	EditorStyle string

	OnInsert InsertFunc
	OnUpdate UpdateFunc
	OnRemove RemoveFunc
	OnFocus  FocusFunc
}

// PropertySpec pairs a property name with its descriptor. Schema order is
// display order.
type PropertySpec struct {
	Name string
	PropertyDescriptor
}

// CategoryOrDefault returns the definition's category, defaulting to
// "general".
func (d *ComponentDefinition) CategoryOrDefault() string {
	if d.Category == "" {
		return "general"
	}
	return d.Category
}

// Property returns the descriptor for name and whether the schema declares
// it.
func (d *ComponentDefinition) Property(name string) (PropertyDescriptor, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p.PropertyDescriptor, true
		}
	}
	return PropertyDescriptor{}, false
}

// Validate checks the construction invariants: id, name, and content are
// required; property names and select option values must be unique; every
// descriptor type must be a known widget kind.
func (d *ComponentDefinition) Validate() error {
	if d == nil {
		return fmt.Errorf("definition is nil")
	}
	if d.ID == "" {
		return fmt.Errorf("definition id is required")
	}
	if d.Name == "" {
		return fmt.Errorf("definition %q: name is required", d.ID)
	}
	if d.Content == nil {
		return fmt.Errorf("definition %q: content function is required", d.ID)
	}
	seen := make(map[string]struct{}, len(d.Properties))
	for _, p := range d.Properties {
		if p.Name == "" {
			return fmt.Errorf("definition %q: property with empty name", d.ID)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("definition %q: duplicate property %q", d.ID, p.Name)
		}
		seen[p.Name] = struct{}{}
		if err := p.PropertyDescriptor.Validate(); err != nil {
			return fmt.Errorf("definition %q: property %q: %w", d.ID, p.Name, err)
		}
	}
	for slot, spec := range d.Children {
		if slot == "" {
			return fmt.Errorf("definition %q: slot spec with empty slot name", d.ID)
		}
		for _, fill := range spec {
			if fill.ID == "" {
				return fmt.Errorf("definition %q: slot %q: fill with empty component id", d.ID, slot)
			}
			if fill.Count < 0 {
				return fmt.Errorf("definition %q: slot %q: negative fill count", d.ID, slot)
			}
		}
	}
	return nil
}
