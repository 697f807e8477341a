// Package registry owns the set of registered component definitions and the
// named style sets that can be applied independently of components. It also
// renders the browsable catalog panel from the registered set.
package registry

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ankitkaran99/tinymce-components/internal/errors"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/types"
)

// EventType represents the type of registry event.
type EventType int

const (
	EventTypeRegistered EventType = iota
)

// Event notifies watchers of a registry change.
type Event struct {
	Type      EventType
	Component *types.ComponentDefinition
	Timestamp time.Time
}

// Registry maps component ids to their definitions. Populated incrementally
// for the lifetime of the editing session, never cleared. Duplicate ids are
// rejected: the first registration wins.
type Registry struct {
	mu         sync.RWMutex
	defs       map[string]*types.ComponentDefinition
	order      []string
	categories []string
	styleSeen  map[string]struct{}
	styles     []string
	watchers   []chan Event
	logger     logging.Logger
}

// New creates an empty registry.
func New(logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Registry{
		defs:      make(map[string]*types.ComponentDefinition),
		styleSeen: make(map[string]struct{}),
		logger:    logger.WithComponent("registry"),
	}
}

// Register inserts a definition. It fails without mutating state when the
// definition is malformed or its id is already taken.
func (r *Registry) Register(def *types.ComponentDefinition) error {
	if err := def.Validate(); err != nil {
		r.logger.Warn(context.Background(), err, "rejecting component registration")
		return errors.NewRegistrationError("invalid_definition", "definition failed validation").WithCause(err)
	}

	r.mu.Lock()
	if _, exists := r.defs[def.ID]; exists {
		r.mu.Unlock()
		r.logger.Warn(context.Background(), nil, "duplicate component id", "id", def.ID)
		return errors.NewRegistrationError("duplicate_id", "component id already registered").WithComponent(def.ID)
	}
	r.defs[def.ID] = def
	r.order = append(r.order, def.ID)
	r.recordCategoryLocked(def.CategoryOrDefault())
	if css := strings.TrimSpace(def.EditorStyle); css != "" {
		if _, seen := r.styleSeen[css]; !seen {
			r.styleSeen[css] = struct{}{}
			r.styles = append(r.styles, css)
		}
	}
	// Notify under the lock so a concurrent UnWatch cannot close a channel
	// mid-send.
	event := Event{Type: EventTypeRegistered, Component: def, Timestamp: time.Now()}
	for _, w := range r.watchers {
		select {
		case w <- event:
		default:
			// skip watchers with full channels
		}
	}
	r.mu.Unlock()

	r.logger.Debug(context.Background(), "component registered", "id", def.ID, "category", def.CategoryOrDefault())
	return nil
}

func (r *Registry) recordCategoryLocked(category string) {
	for _, c := range r.categories {
		if c == category {
			return
		}
	}
	r.categories = append(r.categories, category)
}

// Get retrieves a definition by id, nil when unknown.
func (r *Registry) Get(id string) *types.ComponentDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defs[id]
}

// All returns the registered definitions in registration order.
func (r *Registry) All() []*types.ComponentDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*types.ComponentDefinition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

// ByCategory returns definitions in the given category, in registration
// order.
func (r *Registry) ByCategory(category string) []*types.ComponentDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*types.ComponentDefinition
	for _, id := range r.order {
		if r.defs[id].CategoryOrDefault() == category {
			out = append(out, r.defs[id])
		}
	}
	return out
}

// Categories returns every category in first-registration order.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.categories))
	copy(out, r.categories)
	return out
}

// EditorStyles returns the aggregate editor-scoped CSS of all registered
// definitions. Each distinct fragment appears once regardless of how many
// times it was contributed.
func (r *Registry) EditorStyles() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return strings.Join(r.styles, "\n")
}

// Count returns the number of registered definitions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Watch returns a channel receiving registration events.
func (r *Registry) Watch() <-chan Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan Event, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it.
func (r *Registry) UnWatch(ch <-chan Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, w := range r.watchers {
		if w == ch {
			close(w)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}
