// Package patterns detects architecture-pattern candidates from four
// independent signal sources and merges them into a single
// confidence-scored result set.
package patterns

import "sort"

// Pattern is one detected architecture-pattern candidate. Different signal
// sources may produce candidates with the same name during a run; the
// merge step reduces them to one per name.
type Pattern struct {
	Name       string            `json:"name"`
	Confidence float64           `json:"confidence"`
	Indicators []string          `json:"indicators"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// clip bounds a confidence to [0,1].
func clip(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// Merge groups candidates by name, keeps the highest-confidence candidate
// in each group, and unions all indicators in the group. Indicators are
// informational only and never affect confidence. The result is sorted by
// descending confidence, then by name, and names are unique.
func Merge(candidates []Pattern) []Pattern {
	byName := make(map[string]*Pattern)
	order := make([]string, 0)

	for _, cand := range candidates {
		cand.Confidence = clip(cand.Confidence)
		existing, ok := byName[cand.Name]
		if !ok {
			copied := cand
			copied.Indicators = append([]string(nil), cand.Indicators...)
			byName[cand.Name] = &copied
			order = append(order, cand.Name)
			continue
		}
		if cand.Confidence > existing.Confidence {
			existing.Confidence = cand.Confidence
			if cand.Metadata != nil {
				existing.Metadata = cand.Metadata
			}
		}
		existing.Indicators = append(existing.Indicators, cand.Indicators...)
	}

	merged := make([]Pattern, 0, len(order))
	for _, name := range order {
		p := byName[name]
		p.Indicators = dedupeSorted(p.Indicators)
		merged = append(merged, *p)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Confidence != merged[j].Confidence {
			return merged[i].Confidence > merged[j].Confidence
		}
		return merged[i].Name < merged[j].Name
	})
	return merged
}

func dedupeSorted(in []string) []string {
	if len(in) == 0 {
		return in
	}
	sort.Strings(in)
	out := in[:1]
	for _, s := range in[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
