package contextgen

import (
	"fmt"
	"strings"

	"github.com/gadget-scout/server/internal/agent/model"
)

// buildSuggestions renders the guidance lines handed to the dialogue step.
// Line order is fixed: preferences first, then intent guidance, then
// clarification prompts, then the theme bias.
func buildSuggestions(qtype model.QueryType, res Resolution, prefs model.Preferences, theme model.QueryType) []string {
	var out []string

	if prefs.Budget != nil {
		out = append(out, fmt.Sprintf("Filter results to the user's budget of %s.", formatBudget(*prefs.Budget)))
	}
	if len(prefs.Features) > 0 {
		out = append(out, fmt.Sprintf("Weight results toward these feature priorities: %s.", strings.Join(prefs.Features, ", ")))
	}
	if len(prefs.Brands) > 0 {
		out = append(out, fmt.Sprintf("The user has shown interest in: %s.", strings.Join(prefs.Brands, ", ")))
	}

	out = append(out, intentGuidance(qtype, res)...)

	for _, slot := range res.Missing {
		out = append(out, clarification(slot))
	}

	if theme != model.QueryGeneral && theme != qtype {
		out = append(out, fmt.Sprintf("The conversation has mostly been about %s queries; keep answers consistent with that thread.", theme))
	}
	return out
}

func intentGuidance(qtype model.QueryType, res Resolution) []string {
	switch qtype {
	case model.QueryComparison:
		if devices := res.Subjects[model.SlotDeviceNames]; len(devices) >= 2 {
			return []string{fmt.Sprintf("Compare %s side by side before answering.", joinDevices(devices))}
		}
	case model.QueryFollowUp:
		if subjects := res.FromHistory[model.SlotSubjectDevices]; len(subjects) > 0 {
			return []string{fmt.Sprintf("This follows up on %s from earlier in the conversation.", joinDevices(subjects))}
		}
		if subjects := res.Subjects[model.SlotSubjectDevices]; len(subjects) > 0 {
			return []string{fmt.Sprintf("This follows up on %s.", joinDevices(subjects))}
		}
	case model.QueryPriceCheck:
		if devices := res.Subjects[model.SlotDeviceNames]; len(devices) > 0 {
			return []string{fmt.Sprintf("Quote retailer prices for %s and highlight the best deal.", joinDevices(devices))}
		}
	case model.QueryReviewLookup:
		if devices := res.Subjects[model.SlotDeviceNames]; len(devices) > 0 {
			return []string{fmt.Sprintf("Summarize user reviews for %s, pros and cons included.", joinDevices(devices))}
		}
	case model.QueryRecommendation:
		return []string{"Recommend devices matching the stated constraints and explain the ranking."}
	case model.QuerySpecificInfo:
		if devices := res.Subjects[model.SlotDeviceNames]; len(devices) > 0 {
			return []string{fmt.Sprintf("Answer with the relevant specifications of %s.", joinDevices(devices))}
		}
	}
	return nil
}

func clarification(slot string) string {
	switch slot {
	case model.SlotDeviceNames:
		return "Ask the user which device they mean before calling lookup tools."
	case model.SlotSubjectDevices:
		return "Ask the user what their question refers to; the conversation has no device to carry over."
	default:
		return fmt.Sprintf("Ask the user to clarify %s.", slot)
	}
}

func formatBudget(b model.BudgetRange) string {
	if b.Min <= 0 {
		return fmt.Sprintf("under %.0f", b.Max)
	}
	return fmt.Sprintf("%.0f to %.0f", b.Min, b.Max)
}

func joinDevices(devices []string) string {
	switch len(devices) {
	case 0:
		return ""
	case 1:
		return devices[0]
	case 2:
		return devices[0] + " and " + devices[1]
	default:
		return strings.Join(devices[:len(devices)-1], ", ") + " and " + devices[len(devices)-1]
	}
}
