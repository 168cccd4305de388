package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadget-scout/server/internal/agent/model"
)

func TestDescribeSeededTools(t *testing.T) {
	t.Parallel()
	reg := New()

	for _, name := range []string{ToolSearchDevices, ToolGetSpecs, ToolGetPrice, ToolGetReviews, ToolCompareSpecs} {
		meta, ok := reg.Describe(name)
		require.True(t, ok, name)
		assert.Equal(t, name, meta.Name)
		assert.NotEmpty(t, meta.Description)
		assert.NotEmpty(t, meta.WhenToUse)
		assert.NotEmpty(t, meta.ExampleQueries)
	}

	_, ok := reg.Describe("no_such_tool")
	assert.False(t, ok)
}

func TestRecordInvocationCounters(t *testing.T) {
	t.Parallel()
	reg := New()

	reg.RecordInvocation(ToolGetPrice, true)
	reg.RecordInvocation(ToolGetPrice, true)
	reg.RecordInvocation(ToolGetPrice, false)

	meta, ok := reg.Describe(ToolGetPrice)
	require.True(t, ok)
	assert.Equal(t, int64(3), meta.InvocationCount)
	assert.Equal(t, int64(2), meta.SuccessCount)
	assert.Equal(t, int64(1), meta.FailureCount)
	assert.InDelta(t, 2.0/3.0, reg.SuccessRate(ToolGetPrice), 1e-9)
}

func TestRecordInvocationUnknownToolIgnored(t *testing.T) {
	t.Parallel()
	reg := New()

	reg.RecordInvocation("no_such_tool", true)
	assert.Zero(t, reg.SuccessRate("no_such_tool"))
}

func TestSuccessRateBeforeFirstCall(t *testing.T) {
	t.Parallel()
	reg := New()
	assert.Zero(t, reg.SuccessRate(ToolGetSpecs))
}

func TestRecordSequenceSuccessors(t *testing.T) {
	t.Parallel()
	reg := New()

	reg.RecordSequence([]string{ToolGetSpecs, ToolGetPrice})
	reg.RecordSequence([]string{ToolGetSpecs, ToolGetPrice})
	reg.RecordSequence([]string{ToolGetSpecs, ToolGetReviews})

	succ := reg.CommonSuccessors(ToolGetSpecs)
	require.NotEmpty(t, succ)
	assert.Equal(t, ToolGetPrice, succ[0])
	assert.Equal(t, ToolGetReviews, succ[1])

	meta, ok := reg.Describe(ToolGetSpecs)
	require.True(t, ok)
	assert.Equal(t, int64(2), meta.CommonSuccessors[ToolGetPrice])
	assert.Equal(t, int64(1), meta.CommonSuccessors[ToolGetReviews])
}

func TestRecordSequenceIgnoresUnknownPairs(t *testing.T) {
	t.Parallel()
	reg := New()

	reg.RecordSequence([]string{"bogus", ToolGetPrice})
	reg.RecordSequence([]string{ToolGetPrice})

	meta, ok := reg.Describe(ToolGetPrice)
	require.True(t, ok)
	assert.Empty(t, meta.CommonSuccessors)
}

func TestRecommendSequenceBasePlans(t *testing.T) {
	t.Parallel()
	reg := New()

	tests := []struct {
		qtype model.QueryType
		want  []string
	}{
		{model.QueryComparison, []string{ToolCompareSpecs, ToolGetPrice, ToolGetReviews}},
		{model.QueryRecommendation, []string{ToolSearchDevices, ToolGetSpecs, ToolGetPrice}},
		{model.QueryPriceCheck, []string{ToolGetPrice, ToolGetReviews}},
		{model.QueryReviewLookup, []string{ToolGetReviews, ToolGetPrice}},
		{model.QuerySpecificInfo, []string{ToolGetSpecs, ToolGetPrice}},
		{model.QueryFollowUp, []string{ToolGetSpecs, ToolGetReviews}},
		{model.QueryGeneral, []string{ToolSearchDevices}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reg.RecommendSequence(tt.qtype, nil), string(tt.qtype))
	}
}

func TestRecommendSequencePromotesObservedSuccessors(t *testing.T) {
	t.Parallel()
	reg := New()

	// after get_specs users overwhelmingly check reviews
	for i := 0; i < 5; i++ {
		reg.RecordSequence([]string{ToolGetSpecs, ToolGetReviews})
	}

	plan := reg.RecommendSequence(model.QueryFollowUp, []string{ToolGetSpecs})
	require.Len(t, plan, 2)
	assert.Equal(t, ToolGetReviews, plan[0])

	// without prior tools the base plan is untouched
	assert.Equal(t, []string{ToolGetSpecs, ToolGetReviews}, reg.RecommendSequence(model.QueryFollowUp, nil))
}

func TestMostUsedRanking(t *testing.T) {
	t.Parallel()
	reg := New()

	reg.RecordInvocation(ToolGetReviews, true)
	reg.RecordInvocation(ToolGetReviews, true)
	reg.RecordInvocation(ToolSearchDevices, true)

	rows := reg.MostUsed(2)
	require.Len(t, rows, 2)
	assert.Equal(t, ToolGetReviews, rows[0].Tool)
	assert.Equal(t, int64(2), rows[0].Calls)
	assert.Equal(t, ToolSearchDevices, rows[1].Tool)
}

func TestSnapshotExport(t *testing.T) {
	t.Parallel()
	reg := New()

	snap := reg.Snapshot()
	assert.Len(t, snap.Tools, 5)
	assert.Len(t, snap.MostUsed, 5)
	assert.NotEmpty(t, snap.CommonSequences)
}
