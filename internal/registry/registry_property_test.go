//go:build property

package registry

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ankitkaran99/tinymce-components/internal/logging"
	"github.com/ankitkaran99/tinymce-components/internal/types"
)

func genDefinition(id string) *types.ComponentDefinition {
	return &types.ComponentDefinition{
		ID:   id,
		Name: "Component " + id,
		Content: func(props types.PropertyValues) string {
			return "<div></div>"
		},
	}
}

// TestRegistryProperties validates registration uniqueness and ordering
// properties across arbitrary id sequences.
func TestRegistryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(2468)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("first registration wins for every id", prop.ForAll(
		func(ids []string) bool {
			reg := New(logging.NewNop())
			first := make(map[string]*types.ComponentDefinition)
			for i, id := range ids {
				if id == "" {
					continue
				}
				def := genDefinition(id)
				def.Name = fmt.Sprintf("attempt_%d", i)
				err := reg.Register(def)
				if _, seen := first[id]; seen {
					if err == nil {
						return false
					}
				} else {
					if err != nil {
						return false
					}
					first[id] = def
				}
			}
			for id, def := range first {
				if reg.Get(id) != def {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.RegexMatch("[a-z]{1,3}")),
	))

	properties.Property("count equals number of distinct ids", prop.ForAll(
		func(ids []string) bool {
			reg := New(logging.NewNop())
			distinct := make(map[string]struct{})
			for _, id := range ids {
				if id == "" {
					continue
				}
				_ = reg.Register(genDefinition(id))
				distinct[id] = struct{}{}
			}
			return reg.Count() == len(distinct)
		},
		gen.SliceOf(gen.RegexMatch("[a-z]{1,3}")),
	))

	properties.Property("All preserves registration order", prop.ForAll(
		func(ids []string) bool {
			reg := New(logging.NewNop())
			var order []string
			seen := make(map[string]struct{})
			for _, id := range ids {
				if id == "" {
					continue
				}
				if reg.Register(genDefinition(id)) == nil {
					if _, dup := seen[id]; !dup {
						order = append(order, id)
						seen[id] = struct{}{}
					}
				}
			}
			all := reg.All()
			if len(all) != len(order) {
				return false
			}
			for i, def := range all {
				if def.ID != order[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.RegexMatch("[a-z]{1,3}")),
	))

	properties.TestingRun(t)
}
