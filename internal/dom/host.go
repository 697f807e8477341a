package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HostEditor is the capability contract the engine consumes from the rich
// text editor it is embedded in. The engine never reaches past this surface:
// selection, change tracking, and inline-style access all go through it.
type HostEditor interface {
	// CurrentSelection returns the host's current selection node, or nil.
	CurrentSelection() *html.Node
	// DocumentRoot returns the editable document root for query and
	// event binding.
	DocumentRoot() *html.Node
	// SetInlineStyle writes one inline style declaration on an element.
	// An empty value removes the declaration.
	SetInlineStyle(el *html.Node, prop, value string)
	// InlineStyle reads one inline style declaration off an element.
	InlineStyle(el *html.Node, prop string) string
	// NotifyContentChanged informs the host that document values changed.
	NotifyContentChanged()
	// NotifyStructureChanged informs the host that the DOM shape changed.
	NotifyStructureChanged()
}

// Host is the reference in-memory HostEditor: the document is a parsed HTML
// tree rooted at a body element. Embedders wrap a real editor instead; tests
// and the preview server use this one.
type Host struct {
	root      *html.Node
	selection *html.Node

	contentListeners   []func()
	structureListeners []func()
}

// NewHost parses markup as document body content and returns a host around
// the resulting tree.
func NewHost(markup string) (*Host, error) {
	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type: html.ElementNode, Data: "body", DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &Host{root: root}, nil
}

// CurrentSelection returns the node most recently passed to SetSelection.
func (h *Host) CurrentSelection() *html.Node { return h.selection }

// SetSelection records the host-side selection node.
func (h *Host) SetSelection(n *html.Node) { h.selection = n }

// DocumentRoot returns the body element owning the document content.
func (h *Host) DocumentRoot() *html.Node { return h.root }

// SetInlineStyle writes a single declaration into the element's style
// attribute, removing it when value is empty.
func (h *Host) SetInlineStyle(el *html.Node, prop, value string) {
	if el == nil || prop == "" {
		return
	}
	decls := InlineStyles(el)
	prop = strings.ToLower(strings.TrimSpace(prop))
	if strings.TrimSpace(value) == "" {
		delete(decls, prop)
	} else {
		decls[prop] = strings.TrimSpace(value)
	}
	SetInlineStyles(el, decls)
}

// InlineStyle reads a single declaration from the element's style attribute.
func (h *Host) InlineStyle(el *html.Node, prop string) string {
	return InlineStyles(el)[strings.ToLower(strings.TrimSpace(prop))]
}

// NotifyContentChanged fans out to registered content listeners.
func (h *Host) NotifyContentChanged() {
	for _, fn := range h.contentListeners {
		fn()
	}
}

// NotifyStructureChanged fans out to registered structure listeners.
func (h *Host) NotifyStructureChanged() {
	for _, fn := range h.structureListeners {
		fn()
	}
}

// OnContentChanged registers a listener for content change notifications.
func (h *Host) OnContentChanged(fn func()) {
	h.contentListeners = append(h.contentListeners, fn)
}

// OnStructureChanged registers a listener for structure change notifications.
func (h *Host) OnStructureChanged(fn func()) {
	h.structureListeners = append(h.structureListeners, fn)
}

// OuterHTML serializes the current document content, body wrapper excluded.
func (h *Host) OuterHTML() string {
	return SerializeChildren(h.root)
}
