package registry

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/gadget-scout/server/internal/agent/model"
	logx "github.com/gadget-scout/server/pkg/logger"
)

// Tool names shared between the registry and the device tool handlers.
const (
	ToolSearchDevices = "search_devices"
	ToolGetSpecs      = "get_specs"
	ToolGetPrice      = "get_price"
	ToolGetReviews    = "get_reviews"
	ToolCompareSpecs  = "compare_specs"
)

type toolEntry struct {
	meta        model.ToolMetadata
	invocations atomic.Int64
	successes   atomic.Int64
	failures    atomic.Int64
}

// Registry holds the static metadata for every known tool plus global usage
// counters. Counters aggregate across all sessions, unlike conversation state.
type Registry struct {
	order   []string
	entries map[string]*toolEntry

	mu         sync.Mutex
	successors map[string]map[string]int64
}

// New returns a registry seeded with the five device lookup tools.
func New() *Registry {
	r := &Registry{
		entries:    make(map[string]*toolEntry),
		successors: make(map[string]map[string]int64),
	}
	for _, meta := range seedTools() {
		r.order = append(r.order, meta.Name)
		r.entries[meta.Name] = &toolEntry{meta: meta}
	}
	return r
}

func seedTools() []model.ToolMetadata {
	return []model.ToolMetadata{
		{
			Name:        ToolSearchDevices,
			Description: "Search smartphone database by name, brand, or features",
			Category:    "discovery",
			WhenToUse: []string{
				"User asks for recommendations",
				"User mentions budget or specific features",
				"User wants to explore options",
				"User asks 'what phones...' or 'show me...'",
			},
			ExampleQueries: []string{
				"Best phone under ₹70,000",
				"Phones with good camera",
				"Show me Samsung phones",
				"What phones have 5000mAh battery?",
			},
			TypicalNextTools: []string{ToolGetSpecs, ToolGetPrice, ToolGetReviews},
		},
		{
			Name:        ToolGetSpecs,
			Description: "Get detailed technical specifications for a specific device",
			Category:    "information",
			WhenToUse: []string{
				"User asks about specific phone features",
				"User wants technical details",
				"After search_devices to get details",
				"For comparison preparation",
			},
			ExampleQueries: []string{
				"What are the specs of Samsung S24 Ultra?",
				"Tell me about iPhone 15 Pro Max camera",
				"How much RAM does OnePlus 12 have?",
			},
			TypicalNextTools: []string{ToolGetPrice, ToolGetReviews, ToolCompareSpecs},
		},
		{
			Name:        ToolGetPrice,
			Description: "Get pricing information from multiple retailers (Amazon, Flipkart, Croma)",
			Category:    "pricing",
			WhenToUse: []string{
				"User asks about price",
				"User mentions budget",
				"User wants to know cheapest option",
				"For value comparison",
			},
			ExampleQueries: []string{
				"How much does iPhone 15 Pro Max cost?",
				"What's the cheapest place to buy Samsung S24?",
				"Price of OnePlus 12?",
				"Where can I get the best deal?",
			},
			TypicalNextTools: []string{ToolGetReviews, ToolCompareSpecs},
		},
		{
			Name:        ToolGetReviews,
			Description: "Get aggregated user reviews, ratings, pros and cons",
			Category:    "social_proof",
			WhenToUse: []string{
				"User asks about user opinions",
				"User wants to know pros/cons",
				"User asks 'is it good?'",
				"For final decision validation",
			},
			ExampleQueries: []string{
				"What do users say about Samsung S24 Ultra?",
				"Is iPhone 15 Pro Max worth it?",
				"Pros and cons of OnePlus 12?",
				"User reviews for Pixel 8 Pro?",
			},
			TypicalNextTools: []string{ToolGetPrice, ToolCompareSpecs},
		},
		{
			Name:        ToolCompareSpecs,
			Description: "Side-by-side comparison of two devices",
			Category:    "comparison",
			WhenToUse: []string{
				"User explicitly asks to compare",
				"User mentions 'vs' or 'versus'",
				"User asks 'which is better'",
				"User is deciding between two phones",
			},
			ExampleQueries: []string{
				"Compare Samsung S24 Ultra and iPhone 15 Pro Max",
				"Samsung vs iPhone for photography",
				"Which is better: OnePlus 12 or Xiaomi 14?",
				"Pixel 8 Pro vs iPhone 15 Pro Max",
			},
			TypicalNextTools: []string{ToolGetPrice, ToolGetReviews},
		},
	}
}

// Describe returns a snapshot of one tool's metadata with current counters.
func (r *Registry) Describe(name string) (model.ToolMetadata, bool) {
	e, ok := r.entries[name]
	if !ok {
		return model.ToolMetadata{}, false
	}
	return r.snapshot(e), true
}

func (r *Registry) snapshot(e *toolEntry) model.ToolMetadata {
	meta := e.meta
	meta.InvocationCount = e.invocations.Load()
	meta.SuccessCount = e.successes.Load()
	meta.FailureCount = e.failures.Load()

	r.mu.Lock()
	if succ := r.successors[meta.Name]; len(succ) > 0 {
		meta.CommonSuccessors = make(map[string]int64, len(succ))
		for k, v := range succ {
			meta.CommonSuccessors[k] = v
		}
	}
	r.mu.Unlock()
	return meta
}

// RecordInvocation bumps the counters for one tool call. Unknown tool names
// are logged and ignored so a misbehaving caller cannot corrupt analytics.
func (r *Registry) RecordInvocation(name string, succeeded bool) {
	e, ok := r.entries[name]
	if !ok {
		logx.Warn().Str("tool", name).Msg("invocation recorded for unknown tool")
		return
	}
	e.invocations.Add(1)
	if succeeded {
		e.successes.Add(1)
	} else {
		e.failures.Add(1)
	}
}

// RecordSequence bumps the successor frequency for each consecutive pair in
// one query's tool call sequence.
func (r *Registry) RecordSequence(toolNames []string) {
	if len(toolNames) < 2 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i+1 < len(toolNames); i++ {
		from, to := toolNames[i], toolNames[i+1]
		if _, ok := r.entries[from]; !ok {
			continue
		}
		if _, ok := r.entries[to]; !ok {
			continue
		}
		succ := r.successors[from]
		if succ == nil {
			succ = make(map[string]int64)
			r.successors[from] = succ
		}
		succ[to]++
	}
}

// CommonSuccessors returns the tools observed after name, most frequent
// first. Ties keep the seeded typical-next order.
func (r *Registry) CommonSuccessors(name string) []string {
	e, ok := r.entries[name]
	if !ok {
		return nil
	}

	r.mu.Lock()
	counts := make(map[string]int64, len(r.successors[name]))
	for k, v := range r.successors[name] {
		counts[k] = v
	}
	r.mu.Unlock()

	ranked := append([]string(nil), e.meta.TypicalNextTools...)
	for succ := range counts {
		found := false
		for _, t := range ranked {
			if t == succ {
				found = true
				break
			}
		}
		if !found {
			ranked = append(ranked, succ)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked
}

// observedSuccessors returns only successors actually seen at runtime, most
// frequent first, ties in seeded typical-next order.
func (r *Registry) observedSuccessors(name string) []string {
	e, ok := r.entries[name]
	if !ok {
		return nil
	}

	r.mu.Lock()
	counts := make(map[string]int64, len(r.successors[name]))
	for k, v := range r.successors[name] {
		counts[k] = v
	}
	r.mu.Unlock()
	if len(counts) == 0 {
		return nil
	}

	var ranked []string
	for _, t := range e.meta.TypicalNextTools {
		if counts[t] > 0 {
			ranked = append(ranked, t)
		}
	}
	for succ := range counts {
		found := false
		for _, t := range ranked {
			if t == succ {
				found = true
				break
			}
		}
		if !found {
			ranked = append(ranked, succ)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked
}

// SuccessRate returns successes over invocations, zero before the first call.
func (r *Registry) SuccessRate(name string) float64 {
	e, ok := r.entries[name]
	if !ok {
		return 0
	}
	calls := e.invocations.Load()
	if calls == 0 {
		return 0
	}
	return float64(e.successes.Load()) / float64(calls)
}

// ToolUsage is one row of the most-used ranking.
type ToolUsage struct {
	Tool        string  `json:"tool"`
	Calls       int64   `json:"calls"`
	SuccessRate float64 `json:"success_rate"`
}

// MostUsed ranks tools by invocation count, seeded order on ties.
func (r *Registry) MostUsed(limit int) []ToolUsage {
	rows := make([]ToolUsage, 0, len(r.order))
	for _, name := range r.order {
		rows = append(rows, ToolUsage{
			Tool:        name,
			Calls:       r.entries[name].invocations.Load(),
			SuccessRate: r.SuccessRate(name),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Calls > rows[j].Calls })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// CommonSequences lists tool call chains that usually serve a query well.
func (r *Registry) CommonSequences() [][]string {
	return [][]string{
		{ToolSearchDevices, ToolGetSpecs, ToolGetPrice},
		{ToolSearchDevices, ToolGetPrice, ToolGetReviews},
		{ToolCompareSpecs, ToolGetPrice, ToolGetReviews},
		{ToolGetSpecs, ToolGetReviews},
		{ToolSearchDevices, ToolCompareSpecs},
	}
}

// baseSequences maps each intent onto its default tool call plan.
var baseSequences = map[model.QueryType][]string{
	model.QueryComparison:     {ToolCompareSpecs, ToolGetPrice, ToolGetReviews},
	model.QueryFollowUp:       {ToolGetSpecs, ToolGetReviews},
	model.QueryPriceCheck:     {ToolGetPrice, ToolGetReviews},
	model.QueryReviewLookup:   {ToolGetReviews, ToolGetPrice},
	model.QueryRecommendation: {ToolSearchDevices, ToolGetSpecs, ToolGetPrice},
	model.QuerySpecificInfo:   {ToolGetSpecs, ToolGetPrice},
	model.QueryGeneral:        {ToolSearchDevices},
}

// RecommendSequence returns the tool plan for a query type. When the previous
// query in the session used tools, observed successors of its last tool are
// promoted to the front of the plan, keeping the plan's relative order
// otherwise.
func (r *Registry) RecommendSequence(qtype model.QueryType, lastTools []string) []string {
	base, ok := baseSequences[qtype]
	if !ok {
		base = baseSequences[model.QueryGeneral]
	}
	plan := append([]string(nil), base...)

	if len(lastTools) == 0 {
		return plan
	}
	succ := r.observedSuccessors(lastTools[len(lastTools)-1])
	if len(succ) == 0 {
		return plan
	}

	rank := make(map[string]int, len(succ))
	for i, name := range succ {
		rank[name] = i + 1
	}
	sort.SliceStable(plan, func(i, j int) bool {
		ri, iOK := rank[plan[i]]
		rj, jOK := rank[plan[j]]
		if iOK && jOK {
			return ri < rj
		}
		return iOK && !jOK
	})
	return plan
}

// Snapshot exports the full registry state for the export surface.
type Snapshot struct {
	Tools           []model.ToolMetadata `json:"tools"`
	MostUsed        []ToolUsage          `json:"most_used"`
	CommonSequences [][]string           `json:"common_sequences"`
}

func (r *Registry) Snapshot() Snapshot {
	tools := make([]model.ToolMetadata, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.snapshot(r.entries[name]))
	}
	return Snapshot{
		Tools:           tools,
		MostUsed:        r.MostUsed(0),
		CommonSequences: r.CommonSequences(),
	}
}
