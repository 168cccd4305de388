package contextgen

import (
	"context"
	"fmt"
	"strings"
)

// RenderConversationSummary produces a human-readable digest of one session:
// query volume, the most recent queries with the tools they used, the merged
// preferences, and the dominant theme.
func (a *Assembler) RenderConversationSummary(ctx context.Context, sessionID string) (string, error) {
	count, err := a.store.QueryCount(ctx, sessionID)
	if err != nil {
		return "", err
	}
	recent, err := a.store.Recent(ctx, sessionID, a.cfg.SummaryWindow)
	if err != nil {
		return "", err
	}
	prefs, err := a.store.Preferences(ctx, sessionID)
	if err != nil {
		return "", err
	}
	theme, err := a.store.Theme(ctx, sessionID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Session %s\n", sessionID)
	fmt.Fprintf(&b, "Total queries: %d\n", count)
	fmt.Fprintf(&b, "Dominant theme: %s\n", theme)

	if len(recent) > 0 {
		b.WriteString("\nRecent queries:\n")
		for _, rec := range recent {
			fmt.Fprintf(&b, "  %d. [%s] %s\n", rec.Sequence, rec.Type, rec.RawText)
			if len(rec.ToolsUsed) > 0 {
				fmt.Fprintf(&b, "     tools: %s\n", strings.Join(rec.ToolsUsed, ", "))
			}
		}
	}

	if prefs.Budget != nil || len(prefs.Features) > 0 || len(prefs.Brands) > 0 {
		b.WriteString("\nPreferences:\n")
		if prefs.Budget != nil {
			fmt.Fprintf(&b, "  budget: %s\n", formatBudget(*prefs.Budget))
		}
		if len(prefs.Features) > 0 {
			fmt.Fprintf(&b, "  features: %s\n", strings.Join(prefs.Features, ", "))
		}
		if len(prefs.Brands) > 0 {
			fmt.Fprintf(&b, "  brands: %s\n", strings.Join(prefs.Brands, ", "))
		}
	}
	return b.String(), nil
}
