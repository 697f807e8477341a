package dom

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ParseInlineStyle splits a style attribute value into a declaration map.
// Property names are lowercased and both sides trimmed; declarations with an
// empty property or value are dropped.
func ParseInlineStyle(raw string) map[string]string {
	decls := make(map[string]string)
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		decls[prop] = value
	}
	return decls
}

// SerializeInlineStyle renders a declaration map as "prop: value;" pairs.
// Properties are emitted in sorted order so output is deterministic.
func SerializeInlineStyle(decls map[string]string) string {
	props := make([]string, 0, len(decls))
	for p := range decls {
		props = append(props, p)
	}
	sort.Strings(props)
	var b strings.Builder
	for _, p := range props {
		b.WriteString(p)
		b.WriteString(": ")
		b.WriteString(decls[p])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

// StylesEqual reports whether two declaration maps hold the same properties
// with the same normalized values.
func StylesEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for p, v := range a {
		if bv, ok := b[p]; !ok || strings.TrimSpace(v) != strings.TrimSpace(bv) {
			return false
		}
	}
	return true
}

// InlineStyles returns the element's current inline declarations.
func InlineStyles(n *html.Node) map[string]string {
	raw, _ := GetAttr(n, "style")
	return ParseInlineStyle(raw)
}

// SetInlineStyles replaces the element's entire inline style with the given
// declarations. An empty map removes the style attribute.
func SetInlineStyles(n *html.Node, decls map[string]string) {
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", SerializeInlineStyle(decls))
}
