package issue

import "sort"

// Merge combines model-sourced and dictionary-sourced issues into a single
// deduplicated, deterministically ordered list.
//
// The model list is taken verbatim as the priority source. A dictionary issue
// is appended only when no model issue shares its (lowercase(original), kind)
// key. The combined list is then ordered: issues carrying a position sort
// ascending by position; issues without a position sort after those, with
// kind as a stable tie-break.
//
// Merge is a pure function: identical inputs always yield identical output,
// and neither input slice is modified.
func Merge(model, dictionary []Issue) []Issue {
	merged := make([]Issue, 0, len(model)+len(dictionary))
	merged = append(merged, model...)

	seen := make(map[string]struct{}, len(model))
	for _, iss := range model {
		seen[iss.Key()] = struct{}{}
	}

	for _, iss := range dictionary {
		if _, dup := seen[iss.Key()]; dup {
			continue
		}
		merged = append(merged, iss)
	}

	sort.SliceStable(merged, func(a, b int) bool {
		ia, ib := merged[a], merged[b]
		switch {
		case ia.HasPosition() && ib.HasPosition():
			return ia.Position < ib.Position
		case ia.HasPosition():
			return true
		case ib.HasPosition():
			return false
		default:
			return ia.Kind < ib.Kind
		}
	})

	return merged
}
