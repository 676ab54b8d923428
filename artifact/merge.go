package artifact

import (
	"fmt"
	"strings"
)

const (
	riseSuffix = "_rise"
	fallSuffix = "_fall"
)

// MergeEdges combines each "_rise" record with its "_fall" counterpart into a
// single record without the suffix, holding the sum of both values. Records
// without an edge suffix pass through unchanged. The order of first
// appearance is kept.
func MergeEdges(t Table) (Table, error) {
	values := t.Map()
	handled := make(map[string]bool)

	var merged Table
	for _, r := range t {
		if handled[r.Key] {
			continue
		}

		base, other, ok := counterpart(r.Key)
		if !ok {
			merged = append(merged, r)
			continue
		}

		v, found := values[other]
		if !found {
			return nil, fmt.Errorf("%s has no matching %s", r.Key, other)
		}

		handled[r.Key] = true
		handled[other] = true
		merged = append(merged, Record{Key: base, Value: values[r.Key] + v})
	}

	return merged, nil
}

func counterpart(key string) (base, other string, ok bool) {
	switch {
	case strings.HasSuffix(key, riseSuffix):
		base = strings.TrimSuffix(key, riseSuffix)
		return base, base + fallSuffix, true
	case strings.HasSuffix(key, fallSuffix):
		base = strings.TrimSuffix(key, fallSuffix)
		return base, base + riseSuffix, true
	default:
		return key, "", false
	}
}
