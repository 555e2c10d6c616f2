package resolver

import "github.com/mpvl/unique"

// stringSlice adapts a []string to mpvl/unique's sort-then-compact
// Interface.
type stringSlice struct {
	items *[]string
}

func (s stringSlice) Len() int           { return len(*s.items) }
func (s stringSlice) Less(i, j int) bool { return (*s.items)[i] < (*s.items)[j] }
func (s stringSlice) Swap(i, j int)      { (*s.items)[i], (*s.items)[j] = (*s.items)[j], (*s.items)[i] }
func (s stringSlice) Truncate(n int)     { *s.items = (*s.items)[:len(*s.items)-n] }

// sortedKeys returns m's keys sorted and deduplicated, used to make the
// warnings and errors emitted while walking a map during IMPORT merging
// deterministic across runs (prefix aliases, shape labels).
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	unique.Sort(stringSlice{items: &keys})
	return keys
}
