package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadget-scout/server/internal/agent/model"
)

func TestClassifyPriorityOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		historyLen int
		want       model.QueryType
	}{
		{
			name:  "comparison with two devices and contrast marker",
			query: "Compare Samsung S24 Ultra and iPhone 15 Pro Max",
			want:  model.QueryComparison,
		},
		{
			name:  "vs marker",
			query: "OnePlus 12 vs Xiaomi 14",
			want:  model.QueryComparison,
		},
		{
			name:  "bare brands still compare",
			query: "Samsung vs iPhone for photography",
			want:  model.QueryComparison,
		},
		{
			name:  "canonical device versus bare brand",
			query: "Samsung S24 Ultra or a pixel, which is the better camera?",
			want:  model.QueryComparison,
		},
		{
			name:  "single brand with contrast marker is not a comparison",
			query: "Is a samsung phone better?",
			want:  model.QueryGeneral,
		},
		{
			name:       "follow-up with attribute and no entities",
			query:      "Which one has better battery?",
			historyLen: 2,
			want:       model.QueryFollowUp,
		},
		{
			name:       "follow-up on camera",
			query:      "Which has the best camera?",
			historyLen: 1,
			want:       model.QueryFollowUp,
		},
		{
			name:  "price check on one device",
			query: "How much does the OnePlus 12 cost?",
			want:  model.QueryPriceCheck,
		},
		{
			name:  "review lookup",
			query: "Is the OnePlus 12 worth it?",
			want:  model.QueryReviewLookup,
		},
		{
			name:  "recommendation with budget phrasing",
			query: "Best phone under ₹70,000 for gaming",
			want:  model.QueryRecommendation,
		},
		{
			name:  "specific info on one device",
			query: "What are the specs of Xiaomi 14?",
			want:  model.QuerySpecificInfo,
		},
		{
			name:  "no rule fires",
			query: "hello there",
			want:  model.QueryGeneral,
		},
		{
			name:  "empty query degrades to general",
			query: "",
			want:  model.QueryGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			text := Normalize(tt.query)
			entities := ExtractDevices(text)
			got := Classify(text, entities, tt.historyLen)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyAttributeNeedsHistory(t *testing.T) {
	t.Parallel()

	// Without history the follow-up rule cannot fire even though the query
	// names an attribute.
	text := Normalize("Which one has better battery?")
	got := Classify(text, nil, 0)
	assert.NotEqual(t, model.QueryFollowUp, got)
}

func TestClassifyComparisonBeatsFollowUp(t *testing.T) {
	t.Parallel()

	text := Normalize("Samsung S24 Ultra or iPhone 15 Pro Max, which has the better camera?")
	entities := ExtractDevices(text)
	require.Len(t, entities, 2)
	assert.Equal(t, model.QueryComparison, Classify(text, entities, 3))
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	text := Normalize("Best camera phone under ₹80,000")
	first := Classify(text, nil, 0)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text, nil, 0))
	}
}

func TestExtractDevices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "two devices in order",
			query: "compare samsung s24 ultra and iphone 15 pro max",
			want:  []string{"Samsung S24 Ultra", "iPhone 15 Pro Max"},
		},
		{
			name:  "long alias hides the nested short one",
			query: "tell me about the iphone 15 pro max",
			want:  []string{"iPhone 15 Pro Max"},
		},
		{
			name:  "alias and canonical collapse to one entity",
			query: "s24 ultra or galaxy s24 ultra",
			want:  []string{"Samsung S24 Ultra"},
		},
		{
			name:  "no word boundary no match",
			query: "xiaomi 145 is not a phone",
			want:  nil,
		},
		{
			name:  "nothing recognizable",
			query: "what should i buy",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractDevices(Normalize(tt.query)))
		})
	}
}
