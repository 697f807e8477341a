// Package dom provides the document layer the component engine operates on.
// The live document is a golang.org/x/net/html node tree; this package holds
// the attribute vocabulary stamped onto live instances, node and class
// helpers, single-root fragment parsing, and serialization.
package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attribute names stamped onto live component instances. These are the only
// persisted representation of instantiated component state.
const (
	// AttrComponent links an element to its registered definition id.
	AttrComponent = "data-component"
	// AttrInstanceID carries the per-instance identity token, assigned once
	// at creation and stable for the instance's lifetime.
	AttrInstanceID = "data-instance-id"
	// AttrSlot marks a child-slot container with its slot name.
	AttrSlot = "data-component-children"
	// PropAttrPrefix prefixes one attribute per persisted property value.
	PropAttrPrefix = "data-prop-"
	// AttrDraggable marks an instance root as a native drag source.
	AttrDraggable = "draggable"
	// DraggingClass is set on an instance while it is being dragged.
	DraggingClass = "tmce-dragging"
	// IndicatorClass marks the insertion-point indicator element.
	IndicatorClass = "tmce-drop-indicator"
)

// IsElement reports whether n is a DOM element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// ElementTarget normalizes a drop or selection target to an element:
// text nodes resolve to their parent element, elements pass through,
// anything else yields nil.
func ElementTarget(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.TextNode {
		n = n.Parent
	}
	if IsElement(n) {
		return n
	}
	return nil
}

// GetAttr returns the value of the named attribute and whether it is set.
func GetAttr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the named attribute.
func SetAttr(n *html.Node, name, value string) {
	if n == nil {
		return
	}
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes the named attribute if present.
func RemoveAttr(n *html.Node, name string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// HasClass reports whether the element's class attribute contains class.
func HasClass(n *html.Node, class string) bool {
	raw, ok := GetAttr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(raw) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends class to the element's class list if not already present.
func AddClass(n *html.Node, class string) {
	if n == nil || class == "" || HasClass(n, class) {
		return
	}
	raw, _ := GetAttr(n, "class")
	if raw == "" {
		SetAttr(n, "class", class)
		return
	}
	SetAttr(n, "class", raw+" "+class)
}

// RemoveClass removes class from the element's class list. An emptied class
// attribute is dropped entirely.
func RemoveClass(n *html.Node, class string) {
	raw, ok := GetAttr(n, "class")
	if !ok {
		return
	}
	kept := make([]string, 0, 4)
	for _, c := range strings.Fields(raw) {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// Closest walks from n up through its ancestors (self included) and returns
// the first element satisfying pred, or nil.
func Closest(n *html.Node, pred func(*html.Node) bool) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if IsElement(cur) && pred(cur) {
			return cur
		}
	}
	return nil
}

// ClosestWithAttr returns the nearest self-or-ancestor element carrying the
// named attribute.
func ClosestWithAttr(n *html.Node, name string) *html.Node {
	return Closest(n, func(el *html.Node) bool {
		_, ok := GetAttr(el, name)
		return ok
	})
}

// ClosestWithClass returns the nearest self-or-ancestor element carrying the
// named class.
func ClosestWithClass(n *html.Node, class string) *html.Node {
	return Closest(n, func(el *html.Node) bool {
		return HasClass(el, class)
	})
}

// Descendants returns a snapshot of every element under root (root included)
// satisfying pred, in document order. The returned slice is independent of
// the tree, so callers may mutate the tree while iterating it.
func Descendants(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if IsElement(n) && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// DescendantsWithAttr returns a snapshot of elements under root carrying the
// named attribute, root included.
func DescendantsWithAttr(root *html.Node, name string) []*html.Node {
	return Descendants(root, func(el *html.Node) bool {
		_, ok := GetAttr(el, name)
		return ok
	})
}

// Detach removes n from its parent. A parentless node is left untouched.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// ReplaceNode swaps newN into old's position. If old has no parent the
// replacement is skipped and false is returned.
func ReplaceNode(old, newN *html.Node) bool {
	if old == nil || newN == nil || old.Parent == nil {
		return false
	}
	Detach(newN)
	parent := old.Parent
	parent.InsertBefore(newN, old)
	parent.RemoveChild(old)
	return true
}

// InsertBefore places n immediately before ref under ref's parent.
func InsertBefore(n, ref *html.Node) bool {
	if n == nil || ref == nil || ref.Parent == nil {
		return false
	}
	Detach(n)
	ref.Parent.InsertBefore(n, ref)
	return true
}

// AppendChild appends n as the last child of parent.
func AppendChild(parent, n *html.Node) {
	if parent == nil || n == nil {
		return
	}
	Detach(n)
	parent.AppendChild(n)
}

// SetText replaces the element's children with a single text node.
func SetText(n *html.Node, text string) {
	if n == nil {
		return
	}
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text content of n's subtree.
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return b.String()
}

// ParseFragment parses markup as body content and requires it to contain
// exactly one root element; surrounding whitespace-only text is tolerated.
func ParseFragment(markup string) (*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	var root *html.Node
	for _, n := range nodes {
		switch {
		case n.Type == html.ElementNode:
			if root != nil {
				return nil, fmt.Errorf("fragment has more than one root element")
			}
			root = n
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) == "":
			// ignore inter-element whitespace
		default:
			return nil, fmt.Errorf("fragment contains non-element content")
		}
	}
	if root == nil {
		return nil, fmt.Errorf("fragment yields no root element")
	}
	return root, nil
}

// Serialize renders the node (and its subtree) back to markup.
func Serialize(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

// SerializeChildren renders the children of n, in order, to markup.
func SerializeChildren(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return ""
		}
	}
	return b.String()
}

// Clone deep-copies a node subtree. Parent and sibling links of the copy's
// root are nil.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	cp := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		cp.Attr = make([]html.Attribute, len(n.Attr))
		copy(cp.Attr, n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cp.AppendChild(Clone(c))
	}
	return cp
}
