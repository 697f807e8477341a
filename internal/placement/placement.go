// Package placement decides whether a component may be dropped at a target.
// The decision procedure is a pure function over the definition registry and
// the document tree; it has no side effects.
package placement

import (
	"golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/registry"
	"github.com/ankitkaran99/tinymce-components/internal/types"
)

// CanDrop reports whether candidate may be inserted at target.
//
// Evaluation order:
//  1. If the target sits inside a declared slot of a known parent component
//     and that slot carries an allow-rule, the rule is authoritative.
//  2. Otherwise the candidate's own restriction predicate, if any, decides.
//  3. Otherwise placement is open.
//
// Text-node targets are normalized to their parent element before rule
// lookup.
func CanDrop(reg *registry.Registry, candidate *types.ComponentDefinition, target *html.Node) bool {
	if candidate == nil {
		return false
	}
	el := dom.ElementTarget(target)
	if el == nil {
		return false
	}

	if slot := dom.ClosestWithAttr(el, dom.AttrSlot); slot != nil {
		slotName, _ := dom.GetAttr(slot, dom.AttrSlot)
		if owner := dom.ClosestWithAttr(slot, dom.AttrComponent); owner != nil {
			ownerID, _ := dom.GetAttr(owner, dom.AttrComponent)
			if ownerDef := reg.Get(ownerID); ownerDef != nil {
				if rule, ok := ownerDef.Allowed[slotName]; ok {
					return rule.Permits(candidate.ID)
				}
			}
		}
	}

	if candidate.Restriction != nil {
		return candidate.Restriction(el)
	}
	return true
}
