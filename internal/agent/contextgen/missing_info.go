package contextgen

import (
	"github.com/gadget-scout/server/internal/agent/model"
)

// slotRequirement names one slot an intent structurally needs and how many
// values satisfy it.
type slotRequirement struct {
	Slot string
	Min  int
	// All widens borrowing to every history entity instead of stopping at
	// Min. Follow-ups carry the whole referenced device set forward.
	All bool
}

// requiredSlots is the static intent-to-slot table. Intents absent from the
// table need nothing.
var requiredSlots = map[model.QueryType][]slotRequirement{
	model.QueryComparison:   {{Slot: model.SlotDeviceNames, Min: 2}},
	model.QueryFollowUp:     {{Slot: model.SlotSubjectDevices, Min: 1, All: true}},
	model.QueryPriceCheck:   {{Slot: model.SlotDeviceNames, Min: 1}},
	model.QuerySpecificInfo: {{Slot: model.SlotDeviceNames, Min: 1}},
	model.QueryReviewLookup: {{Slot: model.SlotDeviceNames, Min: 1}},
}

// Resolution is the outcome of filling an intent's required slots. A slot
// appears in Missing or in FromHistory, never both.
type Resolution struct {
	Missing     []string
	FromHistory map[string][]string
	Subjects    map[string][]string
}

// ResolveSlots fills each required slot from the query's own entities first,
// then from recent history entities. historyEntities must already be in
// first-seen order.
func ResolveSlots(qtype model.QueryType, queryEntities, historyEntities []string) Resolution {
	res := Resolution{
		FromHistory: map[string][]string{},
		Subjects:    map[string][]string{},
	}

	for _, req := range requiredSlots[qtype] {
		values := append([]string(nil), queryEntities...)
		var borrowed []string
		if len(values) < req.Min {
			for _, e := range historyEntities {
				if !req.All && len(values) >= req.Min {
					break
				}
				if contains(values, e) {
					continue
				}
				values = append(values, e)
				borrowed = append(borrowed, e)
			}
		}

		if len(values) < req.Min {
			res.Missing = append(res.Missing, req.Slot)
			continue
		}
		res.Subjects[req.Slot] = values
		if len(borrowed) > 0 {
			res.FromHistory[req.Slot] = borrowed
		}
	}
	return res
}

func contains(values []string, v string) bool {
	for _, have := range values {
		if have == v {
			return true
		}
	}
	return false
}
