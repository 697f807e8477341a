package registry

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadFile reads named style sets from a YAML file and registers each one.
// The file is a mapping of style name to CSS declarations:
//
//	warning:
//	  color: "#b91c1c"
//	  font-weight: bold
//	muted:
//	  color: "#6b7280"
//
// Sets are registered in name order so the file yields a stable selector
// order. Returns the number of sets registered. An entry the registry
// rejects (empty declarations, empty values) stops the load with an error;
// sets registered before it stay registered.
func (s *StyleRegistry) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading style sets: %w", err)
	}
	var sets map[string]map[string]string
	if err := yaml.Unmarshal(data, &sets); err != nil {
		return 0, fmt.Errorf("parsing style sets %s: %w", path, err)
	}

	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)

	loaded := 0
	for _, name := range names {
		if !s.AddStyle(name, sets[name]) {
			return loaded, fmt.Errorf("style set %q in %s is invalid", name, path)
		}
		loaded++
	}
	return loaded, nil
}
