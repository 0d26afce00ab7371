package shogun

import (
	"fmt"
	"sort"
	"strings"

	"github.com/menpo/shogun/record"
)

// reconstruct rebuilds a record instance from flat parse output.
//
// Keys and fields both iterate in sorted order. A key equal to a field's
// name is claimed directly; otherwise the first unclaimed key starting with
// the field's name plus the separator begins a contiguous scan that claims
// every sorted key sharing that prefix, strips it, and recurses into the
// field's record type. Keys no field claims are ignored; fields no key
// matches fall back to their defaults during instantiation.
//
// A sibling flag name extending another's across the separator ("room" next
// to "room-extra") is ambiguous: the shorter name's scan swallows the longer
// sibling's keys. Sorted iteration keeps even that outcome deterministic.
func reconstruct(s *record.Schema, flat map[string]any) (any, error) {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := s.Fields()
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	claimed := make(map[string]bool, len(keys))
	values := make(map[string]any, len(fields))

	for _, f := range fields {
		prefix := f.Name + "-"
		for i, key := range keys {
			if claimed[key] {
				continue
			}
			if key == f.Name {
				values[f.Name] = flat[key]
				claimed[key] = true
				break
			}
			if strings.HasPrefix(key, prefix) {
				sub := make(map[string]any)
				for j := i; j < len(keys) && strings.HasPrefix(keys[j], prefix); j++ {
					k := keys[j]
					if claimed[k] {
						continue
					}
					sub[k[len(prefix):]] = flat[k]
					claimed[k] = true
				}

				subSchema, err := record.Wrap(f.Type)
				if err != nil {
					return nil, fmt.Errorf("field %q gathered nested keys: %w", f.Name, err)
				}
				inst, err := reconstruct(subSchema, sub)
				if err != nil {
					return nil, err
				}
				values[f.Name] = inst
				break
			}
		}
	}
	return s.Instantiate(values)
}
