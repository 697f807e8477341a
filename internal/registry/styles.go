package registry

import (
	"sync"

	"golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
)

// StyleRegistry holds named CSS declaration sets that can be applied to and
// removed from arbitrary elements, independent of component definitions.
// Mutable at any time, unlike the definition registry.
type StyleRegistry struct {
	mu       sync.RWMutex
	styles   map[string]map[string]string
	order    []string
	onChange func()
}

// NewStyleRegistry creates an empty style registry.
func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{styles: make(map[string]map[string]string)}
}

// SetOnChange registers the callback fired after a style is applied to or
// removed from an element, so dependent UI can refresh.
func (s *StyleRegistry) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// AddStyle upserts a named declaration set. Invalid input (empty name, empty
// declaration set, empty property names or values) is rejected without
// mutating state.
func (s *StyleRegistry) AddStyle(name string, decls map[string]string) bool {
	if name == "" || len(decls) == 0 {
		return false
	}
	for p, v := range decls {
		if p == "" || v == "" {
			return false
		}
	}
	cp := make(map[string]string, len(decls))
	for p, v := range decls {
		cp[p] = v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.styles[name]; !exists {
		s.order = append(s.order, name)
	}
	s.styles[name] = cp
	return true
}

// Styles returns a copy of every registered style, keyed by name.
func (s *StyleRegistry) Styles() map[string]map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]map[string]string, len(s.styles))
	for name, decls := range s.styles {
		cp := make(map[string]string, len(decls))
		for p, v := range decls {
			cp[p] = v
		}
		out[name] = cp
	}
	return out
}

// Names returns the registered style names in registration order.
func (s *StyleRegistry) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ApplyStyle replaces the element's entire inline style with the named
// declaration set. Returns false when the name is unknown or the element is
// absent.
func (s *StyleRegistry) ApplyStyle(name string, el *html.Node) bool {
	if el == nil {
		return false
	}
	s.mu.RLock()
	decls, ok := s.styles[name]
	onChange := s.onChange
	s.mu.RUnlock()
	if !ok {
		return false
	}
	dom.SetInlineStyles(el, decls)
	if onChange != nil {
		onChange()
	}
	return true
}

// RemoveStyles clears the element's inline style entirely.
func (s *StyleRegistry) RemoveStyles(el *html.Node) bool {
	if el == nil {
		return false
	}
	dom.RemoveAttr(el, "style")
	s.mu.RLock()
	onChange := s.onChange
	s.mu.RUnlock()
	if onChange != nil {
		onChange()
	}
	return true
}

// CurrentStyle returns the name of the first registered style whose
// declarations exactly match the element's current inline style, in
// registration order, or "" when none matches. A best-effort classification:
// manual edits to the element break the association.
func (s *StyleRegistry) CurrentStyle(el *html.Node) string {
	if el == nil {
		return ""
	}
	current := dom.InlineStyles(el)
	if len(current) == 0 {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, name := range s.order {
		if dom.StylesEqual(s.styles[name], current) {
			return name
		}
	}
	return ""
}
