// Package dragdrop orchestrates pointer-driven drag gestures: drag start
// from the catalog or from an existing instance, live drop-target validation
// against the placement engine, the caret-based insertion-point indicator,
// and the drop that instantiates or relocates.
package dragdrop

import (
	"context"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/instance"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/placement"
	"github.com/ankitkaran99/tinymce-components/internal/registry"
)

// Phase is the controller's gesture state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
)

// Pointer offsets within leftEdgeThreshold of the target's left edge select
// "before sibling" placement instead of the precise caret offset.
const leftEdgeThreshold = 12

// indicatorGraceDelay lets a racing drop event finish before the drag-end
// path removes the indicator.
const indicatorGraceDelay = 100 * time.Millisecond

// Payload is the transfer payload of a drag gesture. The plain-text slot of
// the native transfer is always left empty so the host editor never falls
// back to text insertion.
type Payload struct {
	// ComponentID identifies the definition to instantiate on drop.
	ComponentID string
	// InstanceID, when set, marks a relocation of an existing instance
	// rather than a re-instantiation.
	InstanceID string
}

// Caret is a host-provided caret-from-point result.
type Caret struct {
	Node   *html.Node
	Offset int
}

// Event carries the target and pointer geometry of a dragover or drop.
type Event struct {
	// Target is the node under the pointer.
	Target *html.Node
	// OffsetX is the pointer's horizontal distance from the target's left
	// edge, in pixels.
	OffsetX int
	// Caret is the host's caret-from-point result, nil when unavailable.
	Caret *Caret
	// Native is the foreign dragged node for drags originating outside the
	// engine, nil otherwise.
	Native *html.Node
}

// Controller runs the per-gesture state machine.
type Controller struct {
	registry *registry.Registry
	inserter *instance.Inserter
	host     dom.HostEditor
	logger   logging.Logger

	mu        sync.Mutex
	phase     Phase
	payload   Payload
	source    *html.Node
	indicator *html.Node
	cleanup   *time.Timer
}

// NewController creates a drag controller.
func NewController(reg *registry.Registry, inserter *instance.Inserter, host dom.HostEditor, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Controller{
		registry: reg,
		inserter: inserter,
		host:     host,
		logger:   logger.WithComponent("dragdrop"),
	}
}

// Phase returns the current gesture state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// DragStartCatalog begins a gesture from a catalog entry carrying the
// component id as payload.
func (c *Controller) DragStartCatalog(componentID string) Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelCleanupLocked()
	c.phase = PhaseDragging
	c.payload = Payload{ComponentID: componentID}
	c.source = nil
	return c.payload
}

// DragStartInstance begins a gesture from an existing live instance,
// enabling relocation rather than re-instantiation. The source element is
// marked with the dragging class for the duration of the gesture.
func (c *Controller) DragStartInstance(el *html.Node) Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelCleanupLocked()
	componentID, _ := dom.GetAttr(el, dom.AttrComponent)
	instanceID, _ := dom.GetAttr(el, dom.AttrInstanceID)
	c.phase = PhaseDragging
	c.payload = Payload{ComponentID: componentID, InstanceID: instanceID}
	c.source = el
	dom.AddClass(el, dom.DraggingClass)
	return c.payload
}

// DragOver validates the pointer position and re-renders the insertion
// indicator. Returns false (and suppresses the indicator) when the dragged
// component may not be dropped at the target.
func (c *Controller) DragOver(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseDragging {
		return false
	}
	target := dom.ElementTarget(ev.Target)
	if target == nil {
		c.removeIndicatorLocked()
		return false
	}
	if c.payload.ComponentID != "" {
		def := c.registry.Get(c.payload.ComponentID)
		if def == nil || !placement.CanDrop(c.registry, def, target) {
			c.removeIndicatorLocked()
			return false
		}
	}
	c.positionIndicatorLocked(target, ev)
	return true
}

// positionIndicatorLocked places the blinking insertion indicator: close to
// the target's left edge it goes before the target as a sibling; otherwise
// it lands at the caret offset, splitting the text node when needed.
func (c *Controller) positionIndicatorLocked(target *html.Node, ev Event) {
	ind := c.ensureIndicatorLocked()
	switch {
	case ev.OffsetX <= leftEdgeThreshold && target.Parent != nil:
		dom.InsertBefore(ind, target)
	case ev.Caret != nil && ev.Caret.Node != nil:
		c.placeAtCaretLocked(ind, ev.Caret)
	default:
		dom.AppendChild(target, ind)
	}
}

// placeAtCaretLocked inserts the indicator at a caret position inside a text
// node, splitting the text at the offset.
func (c *Controller) placeAtCaretLocked(ind *html.Node, caret *Caret) {
	n := caret.Node
	if n.Type != html.TextNode {
		if el := dom.ElementTarget(n); el != nil {
			dom.AppendChild(el, ind)
		}
		return
	}
	parent := n.Parent
	if parent == nil {
		return
	}
	offset := caret.Offset
	if offset <= 0 {
		dom.InsertBefore(ind, n)
		return
	}
	if offset >= len(n.Data) {
		dom.Detach(ind)
		if n.NextSibling != nil {
			parent.InsertBefore(ind, n.NextSibling)
		} else {
			parent.AppendChild(ind)
		}
		return
	}
	rest := &html.Node{Type: html.TextNode, Data: n.Data[offset:]}
	n.Data = n.Data[:offset]
	dom.Detach(ind)
	if n.NextSibling != nil {
		parent.InsertBefore(rest, n.NextSibling)
	} else {
		parent.AppendChild(rest)
	}
	parent.InsertBefore(ind, rest)
}

// Drop resolves the gesture to exactly one of three outcomes: relocation of
// an existing instance, instantiation of a catalog component, or a
// best-effort replacement with a foreign native node. Returns the element
// now occupying the drop position, nil when nothing landed.
func (c *Controller) Drop(ev Event) *html.Node {
	c.mu.Lock()
	// An indicator retained past DragEnd still carries its payload, so a
	// drop inside the grace window lands normally.
	if c.phase != PhaseDragging && c.indicator == nil {
		c.mu.Unlock()
		return nil
	}
	if c.indicator == nil || c.indicator.Parent == nil {
		// no valid position was ever indicated
		c.endLocked()
		c.mu.Unlock()
		return nil
	}
	indicator := c.indicator
	payload := c.payload
	source := c.source
	c.indicator = nil
	c.endLocked()
	c.mu.Unlock()

	switch {
	case payload.InstanceID != "" && source != nil:
		dom.RemoveClass(source, dom.DraggingClass)
		dom.ReplaceNode(indicator, source)
		c.host.NotifyStructureChanged()
		return source
	case payload.ComponentID != "":
		root, err := c.inserter.InsertByID(payload.ComponentID, indicator, false)
		if err != nil {
			c.logger.Warn(context.Background(), err, "drop instantiation failed",
				"id", payload.ComponentID)
			dom.Detach(indicator)
			return nil
		}
		if root == nil {
			dom.Detach(indicator)
		}
		return root
	default:
		if ev.Native != nil {
			dom.ReplaceNode(indicator, ev.Native)
			c.host.NotifyStructureChanged()
			return ev.Native
		}
		dom.Detach(indicator)
		return nil
	}
}

// DragEnd finishes the gesture. The indicator and its payload are kept for a
// short grace delay so a racing drop can still land; the dragging marker
// clears immediately.
func (c *Controller) DragEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.source != nil {
		dom.RemoveClass(c.source, dom.DraggingClass)
	}
	c.phase = PhaseIdle
	if c.indicator == nil {
		c.payload = Payload{}
		c.source = nil
		return
	}
	ind := c.indicator
	c.cancelCleanupLocked()
	c.cleanup = time.AfterFunc(indicatorGraceDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.indicator == ind {
			c.removeIndicatorLocked()
			c.payload = Payload{}
			c.source = nil
		}
	})
}

// endLocked resets the gesture state without touching the indicator.
func (c *Controller) endLocked() {
	if c.source != nil {
		dom.RemoveClass(c.source, dom.DraggingClass)
	}
	c.phase = PhaseIdle
	c.payload = Payload{}
	c.source = nil
	c.cancelCleanupLocked()
}

func (c *Controller) ensureIndicatorLocked() *html.Node {
	if c.indicator == nil {
		c.indicator = &html.Node{
			Type: html.ElementNode,
			Data: "span",
			Attr: []html.Attribute{{Key: "class", Val: dom.IndicatorClass}},
		}
	}
	return c.indicator
}

func (c *Controller) removeIndicatorLocked() {
	if c.indicator != nil {
		dom.Detach(c.indicator)
		c.indicator = nil
	}
}

func (c *Controller) cancelCleanupLocked() {
	if c.cleanup != nil {
		c.cleanup.Stop()
		c.cleanup = nil
	}
}

// Indicator returns the live indicator element, nil when not shown. Used by
// tests and the preview server's document serialization filter.
func (c *Controller) Indicator() *html.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indicator
}
