package parsers

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gadget-scout/server/internal/agent/model"
)

// Budget extraction rules. A numeral counts as a budget mention when it is
// currency-marked or carries an explicit qualifier. When a query mentions
// several budgets, the last one in the text governs.
const (
	curPat = `(?:₹|rs\.?|inr|\$|usd)`
	numPat = `(\d+(?:,\d+)*(?:\.\d+)?)`
)

var (
	betweenRe = regexp.MustCompile(`between\s+` + curPat + `?\s*` + numPat + `\s+and\s+` + curPat + `?\s*` + numPat)
	qualRe    = regexp.MustCompile(`(under|below|around)\s+` + curPat + `?\s*` + numPat)
	markedRe  = regexp.MustCompile(curPat + `\s*` + numPat + `|` + numPat + `\s*(?:inr|usd|rupees|dollars)`)
)

// Feature keyword table mapping raw phrasings onto canonical tags.
var featureRules = []struct {
	Tag      string
	Keywords []string
}{
	{"camera", []string{"camera", "photo", "photography", "video"}},
	{"battery", []string{"battery", "backup", "charging", "power"}},
	{"performance", []string{"gaming", "performance", "speed", "processor"}},
	{"display", []string{"screen", "display", "amoled"}},
	{"storage", []string{"storage", "memory"}},
}

// Brand vocabulary mapping raw mentions onto canonical tags.
var brandRules = []struct {
	Tag      string
	Keywords []string
}{
	{"Samsung", []string{"samsung"}},
	{"Apple", []string{"apple", "iphone"}},
	{"OnePlus", []string{"oneplus"}},
	{"Google", []string{"google", "pixel"}},
	{"Xiaomi", []string{"xiaomi"}},
}

// ExtractPreferences scans normalized query text and produces a partial
// preference delta. It never fails: text with no recognizable preference
// yields an empty delta.
func ExtractPreferences(text string) model.PreferenceDelta {
	if text == "" {
		return model.PreferenceDelta{}
	}
	return model.PreferenceDelta{
		Budget:   extractBudget(text),
		Features: extractTags(text, featureRules),
		Brands:   extractTags(text, brandRules),
	}
}

type budgetCandidate struct {
	pos int
	rng model.BudgetRange
}

func extractBudget(text string) *model.BudgetRange {
	var consumed []span
	var candidates []budgetCandidate

	for _, m := range betweenRe.FindAllStringSubmatchIndex(text, -1) {
		a, aok := parseAmount(text[m[2]:m[3]])
		b, bok := parseAmount(text[m[4]:m[5]])
		if !aok || !bok {
			continue
		}
		lo, hi := a, b
		if lo > hi {
			lo, hi = hi, lo
		}
		consumed = append(consumed, span{m[0], m[1]})
		candidates = append(candidates, budgetCandidate{m[0], model.BudgetRange{Min: lo, Max: hi}})
	}

	for _, m := range qualRe.FindAllStringSubmatchIndex(text, -1) {
		if overlaps(consumed, m[0], m[1]) {
			continue
		}
		n, ok := parseAmount(text[m[4]:m[5]])
		if !ok {
			continue
		}
		var r model.BudgetRange
		switch text[m[2]:m[3]] {
		case "around":
			r = model.BudgetRange{Min: 0.85 * n, Max: 1.15 * n}
		default: // under, below
			r = model.BudgetRange{Min: 0, Max: n}
		}
		consumed = append(consumed, span{m[0], m[1]})
		candidates = append(candidates, budgetCandidate{m[0], r})
	}

	for _, m := range markedRe.FindAllStringSubmatchIndex(text, -1) {
		if overlaps(consumed, m[0], m[1]) {
			continue
		}
		raw := ""
		if m[2] >= 0 {
			raw = text[m[2]:m[3]]
		} else if m[4] >= 0 {
			raw = text[m[4]:m[5]]
		}
		n, ok := parseAmount(raw)
		if !ok {
			continue
		}
		// An unqualified currency-marked amount reads as an upper bound.
		consumed = append(consumed, span{m[0], m[1]})
		candidates = append(candidates, budgetCandidate{m[0], model.BudgetRange{Min: 0, Max: n}})
	}

	if len(candidates) == 0 {
		return nil
	}
	// Last-mentioned-in-text wins.
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.pos > best.pos {
			best = c
		}
	}
	r := best.rng
	return &r
}

func parseAmount(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// extractTags returns canonical tags whose keywords appear in the text,
// ordered by first appearance.
func extractTags(text string, rules []struct {
	Tag      string
	Keywords []string
}) []string {
	type hit struct {
		pos int
		tag string
	}
	var hits []hit
	for _, rule := range rules {
		pos := containsAnyWord(text, rule.Keywords)
		if pos >= 0 {
			hits = append(hits, hit{pos, rule.Tag})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.tag)
	}
	return out
}
