package instance

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/errors"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/registry"
	"github.com/ankitkaran99/tinymce-components/internal/types"
)

// Inserter materializes component definitions into live DOM subtrees:
// renders content with schema defaults, stamps identity metadata, places the
// root, recursively fills declared child slots, and invokes the insertion
// hook.
type Inserter struct {
	registry  *registry.Registry
	host      dom.HostEditor
	logger    logging.Logger
	collector *errors.Collector
}

// NewInserter creates an inserter over the registry and host.
func NewInserter(reg *registry.Registry, host dom.HostEditor, logger logging.Logger, collector *errors.Collector) *Inserter {
	if logger == nil {
		logger = logging.NewNop()
	}
	if collector == nil {
		collector = errors.NewCollector()
	}
	return &Inserter{
		registry:  reg,
		host:      host,
		logger:    logger.WithComponent("inserter"),
		collector: collector,
	}
}

// Insert creates a new live instance of def at target and returns its root
// element. asChild appends under target; otherwise target itself is replaced
// (a slot container in place, arbitrary host content outright). A failed
// content render aborts before any DOM mutation and returns a nil root.
func (ins *Inserter) Insert(def *types.ComponentDefinition, target *html.Node, asChild bool) (*html.Node, error) {
	if def == nil {
		return nil, errors.NewRenderError("nil_definition", "no definition to instantiate")
	}
	if target == nil {
		return nil, errors.NewRenderError("nil_target", "no target to instantiate at").WithComponent(def.ID)
	}

	instanceID := uuid.NewString()

	defaults := Defaults(def)
	root, err := dom.ParseFragment(def.Content(defaults))
	if err != nil {
		renderErr := errors.NewRenderError("no_root_element", "content function yielded no usable root").
			WithComponent(def.ID).WithCause(err)
		ins.logger.Error(context.Background(), renderErr, "instantiation aborted")
		return nil, renderErr
	}

	dom.SetAttr(root, dom.AttrComponent, def.ID)
	dom.SetAttr(root, dom.AttrInstanceID, instanceID)
	for _, p := range def.Properties {
		if p.Default == nil {
			continue
		}
		dom.SetAttr(root, dom.PropAttrPrefix+p.Name, fmt.Sprint(p.Default))
	}

	switch {
	case asChild:
		clearPlaceholders(target)
		dom.AppendChild(target, root)
	default:
		// Replacing a slot container or arbitrary host content; a target
		// without a parent (the document root) takes the instance as a
		// child instead.
		if !dom.ReplaceNode(target, root) {
			dom.AppendChild(target, root)
		}
	}

	ins.fillSlots(def, root)

	if def.OnInsert != nil {
		ins.dispatchInsert(def, root)
	}

	dom.SetAttr(root, dom.AttrDraggable, "true")

	if !asChild {
		ins.host.NotifyStructureChanged()
	}
	return root, nil
}

// InsertByID resolves id in the registry and inserts it. Unknown ids are a
// no-op with a nil root.
func (ins *Inserter) InsertByID(id string, target *html.Node, asChild bool) (*html.Node, error) {
	def := ins.registry.Get(id)
	if def == nil {
		ins.logger.Debug(context.Background(), "unknown component id, nothing to insert", "id", id)
		return nil, nil
	}
	return ins.Insert(def, target, asChild)
}

// fillSlots resolves the definition's children specs against the freshly
// created subtree. Slot containers are snapshotted up front so recursive
// insertion cannot invalidate the traversal.
func (ins *Inserter) fillSlots(def *types.ComponentDefinition, root *html.Node) {
	if len(def.Children) == 0 {
		return
	}
	containers := dom.DescendantsWithAttr(root, dom.AttrSlot)
	for _, container := range containers {
		slotName, _ := dom.GetAttr(container, dom.AttrSlot)
		spec, ok := def.Children[slotName]
		if !ok {
			// undeclared slot marker, nothing to auto-fill
			continue
		}
		for _, fill := range spec {
			childDef := ins.registry.Get(fill.ID)
			if childDef == nil {
				ins.logger.Debug(context.Background(), "slot fill references unknown component",
					"component", def.ID, "slot", slotName, "child", fill.ID)
				continue
			}
			for i := 0; i < fill.Count; i++ {
				if _, err := ins.Insert(childDef, container, true); err != nil {
					ins.logger.Warn(context.Background(), err, "slot fill failed",
						"component", def.ID, "slot", slotName, "child", fill.ID)
				}
			}
		}
	}
}

func (ins *Inserter) dispatchInsert(def *types.ComponentDefinition, root *html.Node) {
	defer func() {
		if rec := recover(); rec != nil {
			err := errors.NewHookError("insert_panic", fmt.Sprintf("onInsert panicked: %v", rec)).
				WithComponent(def.ID)
			ins.collector.Add(err)
			ins.logger.Error(context.Background(), err, "insert hook failed")
		}
	}()
	def.OnInsert(ins.host, root, def)
}

// Remove detaches a live instance after invoking its removal hook.
func (ins *Inserter) Remove(el *html.Node) {
	if el == nil {
		return
	}
	if id, ok := dom.GetAttr(el, dom.AttrComponent); ok {
		if def := ins.registry.Get(id); def != nil && def.OnRemove != nil {
			func() {
				defer func() {
					if rec := recover(); rec != nil {
						err := errors.NewHookError("remove_panic", fmt.Sprintf("onRemove panicked: %v", rec)).
							WithComponent(id)
						ins.collector.Add(err)
						ins.logger.Error(context.Background(), err, "remove hook failed")
					}
				}()
				def.OnRemove(ins.host, el)
			}()
		}
	}
	dom.Detach(el)
	ins.host.NotifyStructureChanged()
}

// clearPlaceholders strips host-editor "empty line" artifacts from a slot
// container before the first real child lands: a body of only bogus <br>
// elements and whitespace text is cleared.
func clearPlaceholders(target *html.Node) {
	var placeholders []*html.Node
	for c := target.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
			placeholders = append(placeholders, c)
		case c.Type == html.ElementNode && c.Data == "br":
			placeholders = append(placeholders, c)
		default:
			return
		}
	}
	for _, p := range placeholders {
		target.RemoveChild(p)
	}
}
