package contextgen

import (
	"context"
	"time"

	"github.com/gadget-scout/server/internal/agent/model"
	"github.com/gadget-scout/server/internal/agent/parsers"
	"github.com/gadget-scout/server/internal/agent/registry"
	logx "github.com/gadget-scout/server/pkg/logger"
)

// Assembler runs the per-query context pipeline: classify, extract
// preferences, resolve slots, commit the record, recompute the theme, and
// bundle the result for the dialogue step.
type Assembler struct {
	store    model.ConversationStore
	registry *registry.Registry
	cfg      model.ConversationConfig
}

func NewAssembler(store model.ConversationStore, reg *registry.Registry, cfg model.ConversationConfig) *Assembler {
	return &Assembler{store: store, registry: reg, cfg: cfg}
}

// BuildContext produces the context payload for one query and commits the
// query to the session history. Classification and slot resolution observe the
// history as it stood before this query; the theme is recomputed after the
// append so it reflects the query itself.
func (a *Assembler) BuildContext(ctx context.Context, sessionID, queryText string) (*model.ContextPayload, error) {
	text := parsers.Normalize(queryText)
	entities := parsers.ExtractDevices(text)

	history, err := a.store.Recent(ctx, sessionID, a.cfg.HistorySize)
	if err != nil {
		return nil, err
	}
	qtype := parsers.Classify(text, entities, len(history))

	delta := parsers.ExtractPreferences(text)
	prefs, err := a.store.Preferences(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !delta.Empty() {
		if prefs, err = a.store.MergePreferences(ctx, sessionID, delta); err != nil {
			return nil, err
		}
	}

	historyEntities, err := a.store.EntitiesInWindow(ctx, sessionID, a.cfg.EntityWindow)
	if err != nil {
		return nil, err
	}
	res := ResolveSlots(qtype, entities, historyEntities)

	// tools of the previous query, read before this one is committed
	var lastTools []string
	if len(history) > 0 {
		lastTools = history[len(history)-1].ToolsUsed
	}

	rec := model.QueryRecord{
		Timestamp: time.Now().UTC(),
		RawText:   queryText,
		Type:      qtype,
		Entities:  entities,
	}
	if _, err := a.store.Append(ctx, sessionID, rec); err != nil {
		return nil, err
	}

	theme, err := a.recomputeTheme(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	planType := qtype
	if qtype == model.QueryFollowUp && len(res.Subjects[model.SlotSubjectDevices]) >= 2 {
		planType = model.QueryComparison
	}
	tools := a.registry.RecommendSequence(planType, lastTools)

	payload := &model.ContextPayload{
		QueryType:           qtype,
		MissingSlots:        res.Missing,
		ResolvedFromHistory: res.FromHistory,
		Theme:               theme,
		PreferenceSnapshot:  prefs.Clone(),
		Suggestions:         buildSuggestions(qtype, res, prefs, theme),
		RecommendedTools:    tools,
	}
	if payload.MissingSlots == nil {
		payload.MissingSlots = []string{}
	}

	logx.Debug().
		Str("sessionID", sessionID).
		Str("queryType", string(qtype)).
		Str("theme", string(theme)).
		Strs("entities", entities).
		Msg("context assembled")
	return payload, nil
}

// recomputeTheme counts classified types over the theme window and stores the
// dominant one. Ties go to the most recent among the tied types.
func (a *Assembler) recomputeTheme(ctx context.Context, sessionID string) (model.QueryType, error) {
	recent, err := a.store.Recent(ctx, sessionID, a.cfg.ThemeWindow)
	if err != nil {
		return model.QueryGeneral, err
	}
	if len(recent) == 0 {
		return model.QueryGeneral, nil
	}

	counts := map[model.QueryType]int{}
	lastSeen := map[model.QueryType]int{}
	for i, rec := range recent {
		counts[rec.Type]++
		lastSeen[rec.Type] = i
	}

	theme := recent[len(recent)-1].Type
	for t, c := range counts {
		best := counts[theme]
		if c > best || (c == best && lastSeen[t] > lastSeen[theme]) {
			theme = t
		}
	}

	if err := a.store.SetTheme(ctx, sessionID, theme); err != nil {
		return model.QueryGeneral, err
	}
	return theme, nil
}

// RecordToolUsage reports back which tools the dialogue step invoked for the
// session's latest query. It stamps the record once and feeds the registry's
// global counters and successor frequencies.
func (a *Assembler) RecordToolUsage(ctx context.Context, sessionID string, toolNames []string, succeeded bool) error {
	if err := a.store.AttachToolUsage(ctx, sessionID, toolNames); err != nil {
		return err
	}
	for _, name := range toolNames {
		a.registry.RecordInvocation(name, succeeded)
	}
	a.registry.RecordSequence(toolNames)
	return nil
}

// Registry exposes the shared registry for the export and analytics surfaces.
func (a *Assembler) Registry() *registry.Registry {
	return a.registry
}
