package parsers

import (
	"sort"
	"strings"
)

// deviceAlias maps one raw phrasing onto the canonical device name used
// across the device database and the conversation history.
type deviceAlias struct {
	Alias     string
	Canonical string
}

// Known device vocabulary. Longer aliases are matched first so that
// "iphone 15 pro max" is never shadowed by "iphone 15".
var deviceAliases = []deviceAlias{
	{"samsung galaxy s24 ultra", "Samsung S24 Ultra"},
	{"samsung s24 ultra", "Samsung S24 Ultra"},
	{"galaxy s24 ultra", "Samsung S24 Ultra"},
	{"s24 ultra", "Samsung S24 Ultra"},
	{"iphone 15 pro max", "iPhone 15 Pro Max"},
	{"iphone 15 pro", "iPhone 15 Pro"},
	{"iphone 15", "iPhone 15"},
	{"oneplus 12", "OnePlus 12"},
	{"google pixel 8 pro", "Google Pixel 8 Pro"},
	{"pixel 8 pro", "Google Pixel 8 Pro"},
	{"pixel 8", "Google Pixel 8 Pro"},
	{"xiaomi 14", "Xiaomi 14"},
}

var aliasesByLength = func() []deviceAlias {
	out := append([]deviceAlias(nil), deviceAliases...)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Alias) > len(out[j].Alias)
	})
	return out
}()

type span struct{ start, end int }

// ExtractDevices returns the canonical device names mentioned in normalized
// query text, ordered by first occurrence, without duplicates. Matched spans
// are consumed so a long alias hides the shorter aliases nested inside it.
func ExtractDevices(text string) []string {
	var consumed []span
	type hit struct {
		pos       int
		canonical string
	}
	var hits []hit

	for _, a := range aliasesByLength {
		for start := 0; ; {
			idx := strings.Index(text[start:], a.Alias)
			if idx < 0 {
				break
			}
			idx += start
			end := idx + len(a.Alias)
			start = idx + 1

			leftOK := idx == 0 || !isWordByte(text[idx-1])
			rightOK := end == len(text) || !isWordByte(text[end])
			if !leftOK || !rightOK {
				continue
			}
			if overlaps(consumed, idx, end) {
				continue
			}
			consumed = append(consumed, span{idx, end})
			hits = append(hits, hit{pos: idx, canonical: a.Canonical})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	var out []string
	seen := map[string]bool{}
	for _, h := range hits {
		if !seen[h.canonical] {
			seen[h.canonical] = true
			out = append(out, h.canonical)
		}
	}
	return out
}

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}
