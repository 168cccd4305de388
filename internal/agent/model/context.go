package model

import (
	"encoding/json"
	"time"
)

// QueryType classifies a user query into the fixed intent taxonomy.
// Classification is total: every query maps to exactly one type, with
// QueryGeneral as the fallback.
type QueryType string

const (
	QueryComparison     QueryType = "comparison"
	QueryFollowUp       QueryType = "follow_up"
	QueryPriceCheck     QueryType = "price_check"
	QueryReviewLookup   QueryType = "review_lookup"
	QueryRecommendation QueryType = "recommendation"
	QuerySpecificInfo   QueryType = "specific_info"
	QueryGeneral        QueryType = "general"
)

// Slot names an intent can structurally require.
const (
	SlotDeviceNames    = "device_names"
	SlotSubjectDevices = "subject_devices"
)

// BudgetRange is a half-open price interval (Min, Max]. Min may be zero
// for "under N" style budgets.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Preferences holds the durable per-session user preferences inferred from
// query text. Budget follows a recency-wins policy; feature and brand tags
// are append-if-absent ordered sets in first-seen order.
type Preferences struct {
	Budget   *BudgetRange `json:"budget_range,omitempty"`
	Features []string     `json:"feature_priorities,omitempty"`
	Brands   []string     `json:"brand_interests,omitempty"`
}

// PreferenceDelta is the partial preference extraction from a single query.
type PreferenceDelta struct {
	Budget   *BudgetRange
	Features []string
	Brands   []string
}

// Empty reports whether the delta carries no information.
func (d PreferenceDelta) Empty() bool {
	return d.Budget == nil && len(d.Features) == 0 && len(d.Brands) == 0
}

// Apply merges a delta into the preferences. The last stated budget wins;
// feature and brand tags accumulate without duplicates. Applying the same
// delta twice yields the same result as applying it once.
func (p *Preferences) Apply(d PreferenceDelta) {
	if d.Budget != nil {
		b := *d.Budget
		p.Budget = &b
	}
	p.Features = appendAbsent(p.Features, d.Features)
	p.Brands = appendAbsent(p.Brands, d.Brands)
}

// Clone returns a deep copy safe to hand out as a snapshot.
func (p Preferences) Clone() Preferences {
	out := Preferences{}
	if p.Budget != nil {
		b := *p.Budget
		out.Budget = &b
	}
	if len(p.Features) > 0 {
		out.Features = append([]string(nil), p.Features...)
	}
	if len(p.Brands) > 0 {
		out.Brands = append([]string(nil), p.Brands...)
	}
	return out
}

func appendAbsent(dst []string, add []string) []string {
	for _, v := range add {
		seen := false
		for _, have := range dst {
			if have == v {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, v)
		}
	}
	return dst
}

// QueryRecord is one tracked query in a session's history. Records are
// immutable once appended, except that ToolsUsed is set exactly once when
// the dialogue step reports back which tools it invoked.
type QueryRecord struct {
	SessionID string    `json:"session_id"`
	Sequence  int64     `json:"sequence_number"`
	Timestamp time.Time `json:"timestamp"`
	RawText   string    `json:"raw_text"`
	Type      QueryType `json:"classified_type"`
	ToolsUsed []string  `json:"tool_names_used,omitempty"`
	Entities  []string  `json:"extracted_entities,omitempty"`
}

// ContextPayload is the structured hint bundle handed to the downstream
// dialogue step for one query. It is built fresh per query and never
// persisted by this subsystem.
type ContextPayload struct {
	QueryType           QueryType           `json:"query_type"`
	MissingSlots        []string            `json:"missing_slots"`
	ResolvedFromHistory map[string][]string `json:"resolved_from_history"`
	Theme               QueryType           `json:"theme"`
	PreferenceSnapshot  Preferences         `json:"preference_snapshot"`
	Suggestions         []string            `json:"suggestions"`
	RecommendedTools    []string            `json:"recommended_tool_sequence"`
}

// JSON serializes the payload for the dialogue step.
func (p *ContextPayload) JSON() (string, error) {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
