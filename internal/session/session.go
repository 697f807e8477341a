// Package session wires the engine together for one editing session. The
// Session is an explicit context object owning the definition registry, the
// style registry, and the selection state; nothing is process-global, so
// multiple independent sessions can coexist and tests stay isolated.
package session

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/dragdrop"
	"github.com/ankitkaran99/tinymce-components/internal/errors"
	"github.com/ankitkaran99/tinymce-components/internal/instance"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/panel"
	"github.com/ankitkaran99/tinymce-components/internal/placement"
	"github.com/ankitkaran99/tinymce-components/internal/registry"
	"github.com/ankitkaran99/tinymce-components/internal/types"
)

// Session is one editing session over a host editor.
type Session struct {
	host      dom.HostEditor
	registry  *registry.Registry
	styles    *registry.StyleRegistry
	binding   *instance.Binding
	inserter  *instance.Inserter
	panel     *panel.Renderer
	drag      *dragdrop.Controller
	logger    logging.Logger
	collector *errors.Collector

	selection    *html.Node
	focused      map[*html.Node]struct{}
	panelHTML    string
	scrollOffset int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a session over the host editor.
func New(host dom.HostEditor, opts ...Option) *Session {
	s := &Session{
		host:    host,
		focused: make(map[*html.Node]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewLogger(nil)
	}
	s.collector = errors.NewCollector()
	s.registry = registry.New(s.logger)
	s.styles = registry.NewStyleRegistry()
	s.binding = instance.NewBinding(host, s.logger, s.collector)
	s.inserter = instance.NewInserter(s.registry, host, s.logger, s.collector)
	s.panel = panel.NewRenderer(s.registry, s.styles, s.binding, host, s.logger, s.collector)
	s.drag = dragdrop.NewController(s.registry, s.inserter, host, s.logger)
	s.styles.SetOnChange(s.refreshPanel)
	return s
}

// Register adds a component definition, reporting success. Failures are
// logged, never thrown: a duplicate or malformed definition leaves the
// registry untouched and the session running.
func (s *Session) Register(def *types.ComponentDefinition) bool {
	return s.registry.Register(def) == nil
}

// GetComponent returns the definition for id, nil when unknown.
func (s *Session) GetComponent(id string) *types.ComponentDefinition {
	return s.registry.Get(id)
}

// Registry exposes the definition registry.
func (s *Session) Registry() *registry.Registry { return s.registry }

// Drag exposes the drag/drop controller.
func (s *Session) Drag() *dragdrop.Controller { return s.drag }

// Diagnostics exposes collected non-fatal errors.
func (s *Session) Diagnostics() *errors.Collector { return s.collector }

// Host exposes the host editor the session operates on.
func (s *Session) Host() dom.HostEditor { return s.host }

// AddStyle registers a named style set.
func (s *Session) AddStyle(name string, decls map[string]string) bool {
	return s.styles.AddStyle(name, decls)
}

// LoadStyleFile registers every named style set in a YAML file, returning
// the number registered.
func (s *Session) LoadStyleFile(path string) (int, error) {
	return s.styles.LoadFile(path)
}

// GetStyles returns the registered style sets.
func (s *Session) GetStyles() map[string]map[string]string {
	return s.styles.Styles()
}

// ApplyStyle applies the named style to el, or to the current selection when
// el is nil.
func (s *Session) ApplyStyle(name string, el *html.Node) bool {
	if el == nil {
		el = s.selection
	}
	return s.styles.ApplyStyle(name, el)
}

// RemoveStyles clears the inline style of el, or of the current selection
// when el is nil.
func (s *Session) RemoveStyles(el *html.Node) bool {
	if el == nil {
		el = s.selection
	}
	return s.styles.RemoveStyles(el)
}

// GetCurrentStyle classifies the element's inline style against the
// registered sets, "" when none matches.
func (s *Session) GetCurrentStyle(el *html.Node) string {
	if el == nil {
		el = s.selection
	}
	return s.styles.CurrentStyle(el)
}

// CanDrop reports whether the component may be dropped at target.
func (s *Session) CanDrop(componentID string, target *html.Node) bool {
	return placement.CanDrop(s.registry, s.registry.Get(componentID), target)
}

// InsertComponent instantiates the identified component at target. Unknown
// ids are a no-op returning nil.
func (s *Session) InsertComponent(id string, target *html.Node) (*html.Node, error) {
	return s.inserter.InsertByID(id, target, false)
}

// RemoveInstance detaches a live instance after its removal hook runs.
func (s *Session) RemoveInstance(el *html.Node) {
	if s.selection == el {
		s.selection = nil
	}
	s.inserter.Remove(el)
	s.refreshPanel()
}

// SelectElement updates the selection state. Re-selecting the current
// element is a no-op. A non-element argument falls back to the host's
// current selection node; if that is not an element either, the selection
// is left untouched with a logged warning.
func (s *Session) SelectElement(el *html.Node) {
	if el != nil && el == s.selection {
		return
	}
	target := dom.ElementTarget(el)
	if target == nil {
		target = dom.ElementTarget(s.host.CurrentSelection())
	}
	if target == nil {
		s.logger.Warn(context.Background(), nil, "selection target is not an element, keeping previous selection")
		return
	}
	if target == s.selection {
		return
	}
	s.selection = target

	if id, ok := dom.GetAttr(target, dom.AttrComponent); ok {
		if def := s.registry.Get(id); def != nil && def.OnFocus != nil {
			if _, done := s.focused[target]; !done {
				s.focused[target] = struct{}{}
				s.dispatchFocus(def, target)
			}
		}
	}
	s.refreshPanel()
}

func (s *Session) dispatchFocus(def *types.ComponentDefinition, el *html.Node) {
	defer func() {
		if rec := recover(); rec != nil {
			err := errors.NewHookError("focus_panic", fmt.Sprintf("onFocus panicked: %v", rec)).
				WithComponent(def.ID)
			s.collector.Add(err)
			s.logger.Error(context.Background(), err, "focus hook failed")
		}
	}()
	def.OnFocus(s.host, el, def)
}

// Selection returns the currently selected element, nil when nothing is
// selected.
func (s *Session) Selection() *html.Node { return s.selection }

// ClearSelection resets the selection state.
func (s *Session) ClearSelection() {
	s.selection = nil
	s.refreshPanel()
}

// refreshPanel re-renders the properties panel for the current selection.
// The scroll offset survives the re-render; the embedder restores it after
// swapping the panel markup in.
func (s *Session) refreshPanel() {
	s.panelHTML = s.panel.Render(s.selection)
}

// PanelHTML returns the current properties panel markup.
func (s *Session) PanelHTML() string {
	if s.panelHTML == "" {
		s.refreshPanel()
	}
	return s.panelHTML
}

// ApplyPanelChange runs the change pipeline for one panel control against
// the current selection and returns the refreshed panel markup.
func (s *Session) ApplyPanelChange(name, raw string) (string, bool) {
	markup, applied := s.panel.ApplyChange(s.selection, name, raw)
	s.panelHTML = markup
	return markup, applied
}

// ApplyPanelStyleChange writes one inline-style declaration on the current
// schema-less selection and returns the refreshed panel markup.
func (s *Session) ApplyPanelStyleChange(prop, value string) string {
	s.panelHTML = s.panel.ApplyStyleChange(s.selection, prop, value)
	return s.panelHTML
}

// SetPanelScrollOffset records the embedder-reported panel scroll position.
func (s *Session) SetPanelScrollOffset(offset int) { s.scrollOffset = offset }

// PanelScrollOffset returns the preserved panel scroll position.
func (s *Session) PanelScrollOffset() int { return s.scrollOffset }

// RenderCatalog renders the draggable catalog panel.
func (s *Session) RenderCatalog() string { return s.registry.RenderCatalog() }

// EditorStyles returns the aggregate editor-scoped CSS of all registered
// definitions.
func (s *Session) EditorStyles() string { return s.registry.EditorStyles() }

// GetFilteredOutput serializes the current document with all engine
// bookkeeping stripped: data-component, data-instance-id, data-prop-*,
// slot markers, drag attributes and marker classes, and any insertion
// indicator, yielding clean publishable markup.
func (s *Session) GetFilteredOutput() string {
	return s.ExportHTML(false)
}

// ExportHTML is GetFilteredOutput with an option to retain instance id
// attributes, for embedders that track instances outside the editor.
func (s *Session) ExportHTML(keepInstanceIDs bool) string {
	clone := dom.Clone(s.host.DocumentRoot())
	for _, el := range dom.Descendants(clone, func(n *html.Node) bool { return true }) {
		if dom.HasClass(el, dom.IndicatorClass) {
			dom.Detach(el)
			continue
		}
		var drop []string
		for _, a := range el.Attr {
			switch {
			case a.Key == dom.AttrInstanceID:
				if !keepInstanceIDs {
					drop = append(drop, a.Key)
				}
			case a.Key == dom.AttrComponent,
				a.Key == dom.AttrSlot,
				a.Key == dom.AttrDraggable:
				drop = append(drop, a.Key)
			case strings.HasPrefix(a.Key, dom.PropAttrPrefix):
				drop = append(drop, a.Key)
			}
		}
		for _, key := range drop {
			dom.RemoveAttr(el, key)
		}
		dom.RemoveClass(el, dom.DraggingClass)
	}
	return dom.SerializeChildren(clone)
}
