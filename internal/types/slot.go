package types

// SlotFill requests Count instances of the component identified by ID to be
// auto-inserted into a slot on first instantiation.
type SlotFill struct {
	ID    string
	Count int
}

// SlotSpec is the ordered list of fills for one named slot.
type SlotSpec []SlotFill

// Fill is the shorthand for a single auto-inserted instance of id.
func Fill(id string) SlotSpec {
	return SlotSpec{{ID: id, Count: 1}}
}

// FillN requests count auto-inserted instances of id.
func FillN(id string, count int) SlotSpec {
	return SlotSpec{{ID: id, Count: count}}
}

// AllowRule restricts which component ids may be dropped into a slot from
// outside the auto-fill path. The zero rule permits nothing; absence of a
// rule in a definition's Allowed map means the slot is unrestricted.
type AllowRule struct {
	ids map[string]struct{}
}

// Allow builds a rule permitting exactly the given component ids.
func Allow(ids ...string) AllowRule {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return AllowRule{ids: set}
}

// Permits reports whether the rule accepts the component id.
func (r AllowRule) Permits(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// IDs returns the permitted component ids; order is unspecified.
func (r AllowRule) IDs() []string {
	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	return out
}
