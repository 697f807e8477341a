package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/ankitkaran99/tinymce-components/internal/dom"
	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/registry"
	"github.com/ankitkaran99/tinymce-components/internal/types"
)

func def(id string) *types.ComponentDefinition {
	return &types.ComponentDefinition{
		ID:   id,
		Name: id,
		Content: func(props types.PropertyValues) string {
			return "<div></div>"
		},
	}
}

func find(t *testing.T, root *html.Node, pred func(*html.Node) bool) *html.Node {
	t.Helper()
	matches := dom.Descendants(root, pred)
	require.NotEmpty(t, matches)
	return matches[0]
}

func TestCanDrop_SlotAllowRuleAuthoritative(t *testing.T) {
	reg := registry.New(logging.NewNop())

	parent := def("row")
	parent.Allowed = map[string]types.AllowRule{"default": types.Allow("column")}
	require.NoError(t, reg.Register(parent))

	column := def("column")
	require.NoError(t, reg.Register(column))

	// The intruder's own restriction would accept anything, but the slot
	// rule excludes it.
	intruder := def("intruder")
	intruder.Restriction = func(target *html.Node) bool { return true }
	require.NoError(t, reg.Register(intruder))

	tree, err := dom.ParseFragment(`<div data-component="row"><div data-component-children="default"><p>x</p></div></div>`)
	require.NoError(t, err)
	slot := find(t, tree, func(n *html.Node) bool {
		_, ok := dom.GetAttr(n, dom.AttrSlot)
		return ok
	})

	assert.True(t, CanDrop(reg, column, slot))
	assert.False(t, CanDrop(reg, intruder, slot), "slot rule short-circuits the restriction predicate")

	// Targets inside the slot resolve to the same rule.
	p := find(t, tree, func(n *html.Node) bool { return n.Data == "p" })
	assert.False(t, CanDrop(reg, intruder, p))
}

func TestCanDrop_SlotWithoutRuleFallsThrough(t *testing.T) {
	reg := registry.New(logging.NewNop())
	require.NoError(t, reg.Register(def("card")))

	restricted := def("restricted")
	restricted.Restriction = func(target *html.Node) bool {
		return dom.HasClass(target, "zone")
	}
	require.NoError(t, reg.Register(restricted))

	tree, err := dom.ParseFragment(`<div data-component="card"><div class="zone" data-component-children="body"></div></div>`)
	require.NoError(t, err)
	slot := find(t, tree, func(n *html.Node) bool {
		_, ok := dom.GetAttr(n, dom.AttrSlot)
		return ok
	})

	// card declares no allow-rule for "body", so the candidate's own
	// restriction decides.
	assert.True(t, CanDrop(reg, restricted, slot))

	open := def("open")
	assert.True(t, CanDrop(reg, open, slot), "no rule and no restriction means open placement")
}

func TestCanDrop_UnknownAncestorComponentFallsThrough(t *testing.T) {
	reg := registry.New(logging.NewNop())

	candidate := def("candidate")
	candidate.Restriction = func(target *html.Node) bool { return false }

	tree, err := dom.ParseFragment(`<div data-component="ghost"><div data-component-children="body"></div></div>`)
	require.NoError(t, err)
	slot := find(t, tree, func(n *html.Node) bool {
		_, ok := dom.GetAttr(n, dom.AttrSlot)
		return ok
	})

	assert.False(t, CanDrop(reg, candidate, slot), "unknown owner falls through to the restriction")
}

func TestCanDrop_RestrictionPredicate(t *testing.T) {
	reg := registry.New(logging.NewNop())

	item := def("dropdown-item")
	item.Restriction = func(target *html.Node) bool {
		return dom.ClosestWithClass(target, "dropdown-menu") != nil
	}

	tree, err := dom.ParseFragment(`<div><ul class="dropdown-menu"><li>x</li></ul><p>outside</p></div>`)
	require.NoError(t, err)

	menu := find(t, tree, func(n *html.Node) bool { return dom.HasClass(n, "dropdown-menu") })
	li := find(t, tree, func(n *html.Node) bool { return n.Data == "li" })
	outside := find(t, tree, func(n *html.Node) bool { return n.Data == "p" })

	assert.True(t, CanDrop(reg, item, menu))
	assert.True(t, CanDrop(reg, item, li))
	assert.False(t, CanDrop(reg, item, outside))
	assert.False(t, CanDrop(reg, item, tree), "document root is outside the menu")
}

func TestCanDrop_TextNodeNormalizesToParent(t *testing.T) {
	reg := registry.New(logging.NewNop())

	item := def("item")
	item.Restriction = func(target *html.Node) bool {
		return dom.HasClass(target, "zone")
	}

	tree, err := dom.ParseFragment(`<div class="zone">text</div>`)
	require.NoError(t, err)
	text := tree.FirstChild
	require.Equal(t, html.TextNode, text.Type)

	assert.True(t, CanDrop(reg, item, text))
}

func TestCanDrop_NilInputs(t *testing.T) {
	reg := registry.New(logging.NewNop())
	tree, err := dom.ParseFragment(`<div></div>`)
	require.NoError(t, err)

	assert.False(t, CanDrop(reg, nil, tree))
	assert.False(t, CanDrop(reg, def("x"), nil))
}
