package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadget-scout/server/internal/agent/model"
)

func record(text string, entities ...string) model.QueryRecord {
	return model.QueryRecord{
		Timestamp: time.Now().UTC(),
		RawText:   text,
		Type:      model.QueryGeneral,
		Entities:  entities,
	}
}

func TestMemoryStoreAppendAssignsSequence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryConversationStore(10)

	first, err := store.Append(ctx, "s1", record("first"))
	require.NoError(t, err)
	second, err := store.Append(ctx, "s1", record("second"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Sequence)
	assert.Equal(t, int64(2), second.Sequence)
	assert.Equal(t, "s1", first.SessionID)
}

func TestMemoryStoreEvictsOldest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryConversationStore(10)

	_, err := store.Append(ctx, "s1", record("query 1", "Xiaomi 14"))
	require.NoError(t, err)
	for i := 2; i <= 12; i++ {
		_, err := store.Append(ctx, "s1", record(fmt.Sprintf("query %d", i)))
		require.NoError(t, err)
	}

	recent, err := store.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, int64(3), recent[0].Sequence)
	assert.Equal(t, int64(12), recent[9].Sequence)

	// the evicted first query's entities are gone from the window
	entities, err := store.EntitiesInWindow(ctx, "s1", 10)
	require.NoError(t, err)
	assert.NotContains(t, entities, "Xiaomi 14")

	// count keeps including evicted queries
	count, err := store.QueryCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}

func TestMemoryStoreRecentWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryConversationStore(10)

	for i := 1; i <= 5; i++ {
		_, err := store.Append(ctx, "s1", record(fmt.Sprintf("query %d", i)))
		require.NoError(t, err)
	}

	recent, err := store.Recent(ctx, "s1", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "query 3", recent[0].RawText)
	assert.Equal(t, "query 5", recent[2].RawText)
}

func TestMemoryStoreUnknownSessionReadsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryConversationStore(10)

	recent, err := store.Recent(ctx, "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	prefs, err := store.Preferences(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, model.Preferences{}, prefs)

	theme, err := store.Theme(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, model.QueryGeneral, theme)

	count, err := store.QueryCount(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryStoreSessionIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryConversationStore(10)

	_, err := store.Append(ctx, "a", record("from a", "OnePlus 12"))
	require.NoError(t, err)
	_, err = store.MergePreferences(ctx, "a", model.PreferenceDelta{Brands: []string{"OnePlus"}})
	require.NoError(t, err)

	recent, err := store.Recent(ctx, "b", 10)
	require.NoError(t, err)
	assert.Empty(t, recent)

	prefs, err := store.Preferences(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, prefs.Brands)
}

func TestMemoryStoreEntitiesInWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryConversationStore(10)

	_, err := store.Append(ctx, "s1", record("q1", "Samsung S24 Ultra", "iPhone 15 Pro Max"))
	require.NoError(t, err)
	_, err = store.Append(ctx, "s1", record("q2"))
	require.NoError(t, err)
	_, err = store.Append(ctx, "s1", record("q3", "iPhone 15 Pro Max", "OnePlus 12"))
	require.NoError(t, err)

	entities, err := store.EntitiesInWindow(ctx, "s1", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Samsung S24 Ultra", "iPhone 15 Pro Max", "OnePlus 12"}, entities)

	// window of one only sees the latest record
	entities, err = store.EntitiesInWindow(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"iPhone 15 Pro Max", "OnePlus 12"}, entities)
}

func TestMemoryStoreAttachToolUsageOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryConversationStore(10)

	_, err := store.Append(ctx, "s1", record("q1"))
	require.NoError(t, err)

	require.NoError(t, store.AttachToolUsage(ctx, "s1", []string{"get_price"}))
	// second report is ignored
	require.NoError(t, store.AttachToolUsage(ctx, "s1", []string{"get_reviews"}))

	recent, err := store.Recent(ctx, "s1", 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, []string{"get_price"}, recent[0].ToolsUsed)
}

func TestMemoryStoreThemeRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryConversationStore(10)

	require.NoError(t, store.SetTheme(ctx, "s1", model.QueryComparison))
	theme, err := store.Theme(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.QueryComparison, theme)
}

func TestMemoryStoreMergePreferences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryConversationStore(10)

	prefs, err := store.MergePreferences(ctx, "s1", model.PreferenceDelta{
		Budget:   &model.BudgetRange{Min: 0, Max: 70000},
		Features: []string{"camera"},
	})
	require.NoError(t, err)
	require.NotNil(t, prefs.Budget)

	prefs, err = store.MergePreferences(ctx, "s1", model.PreferenceDelta{
		Budget:   &model.BudgetRange{Min: 0, Max: 50000},
		Features: []string{"battery", "camera"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(50000), prefs.Budget.Max)
	assert.Equal(t, []string{"camera", "battery"}, prefs.Features)

	// snapshots do not alias store state
	prefs.Features[0] = "mutated"
	fresh, err := store.Preferences(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"camera", "battery"}, fresh.Features)
}
