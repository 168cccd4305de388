package contextgen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gadget-scout/server/internal/agent/model"
)

func TestResolveSlotsComparisonNeedsTwoDevices(t *testing.T) {
	t.Parallel()

	// both devices named in the query
	res := ResolveSlots(model.QueryComparison, []string{"OnePlus 12", "Xiaomi 14"}, nil)
	assert.Empty(t, res.Missing)
	assert.Empty(t, res.FromHistory)
	assert.Equal(t, []string{"OnePlus 12", "Xiaomi 14"}, res.Subjects[model.SlotDeviceNames])

	// one named, one borrowed
	res = ResolveSlots(model.QueryComparison, []string{"OnePlus 12"}, []string{"Xiaomi 14"})
	assert.Empty(t, res.Missing)
	assert.Equal(t, []string{"Xiaomi 14"}, res.FromHistory[model.SlotDeviceNames])
	assert.Equal(t, []string{"OnePlus 12", "Xiaomi 14"}, res.Subjects[model.SlotDeviceNames])

	// not enough anywhere
	res = ResolveSlots(model.QueryComparison, []string{"OnePlus 12"}, nil)
	assert.Equal(t, []string{model.SlotDeviceNames}, res.Missing)
	assert.Empty(t, res.FromHistory)
}

func TestResolveSlotsBorrowSkipsDuplicates(t *testing.T) {
	t.Parallel()

	res := ResolveSlots(model.QueryComparison,
		[]string{"OnePlus 12"},
		[]string{"OnePlus 12", "Xiaomi 14"})
	assert.Empty(t, res.Missing)
	assert.Equal(t, []string{"Xiaomi 14"}, res.FromHistory[model.SlotDeviceNames])
}

func TestResolveSlotsFollowUpTakesAllHistoryEntities(t *testing.T) {
	t.Parallel()

	res := ResolveSlots(model.QueryFollowUp, nil,
		[]string{"Samsung S24 Ultra", "iPhone 15 Pro Max"})
	assert.Empty(t, res.Missing)
	assert.Equal(t,
		[]string{"Samsung S24 Ultra", "iPhone 15 Pro Max"},
		res.Subjects[model.SlotSubjectDevices])
	assert.Equal(t,
		[]string{"Samsung S24 Ultra", "iPhone 15 Pro Max"},
		res.FromHistory[model.SlotSubjectDevices])
}

func TestResolveSlotsNoRequirements(t *testing.T) {
	t.Parallel()

	for _, qtype := range []model.QueryType{model.QueryRecommendation, model.QueryGeneral} {
		res := ResolveSlots(qtype, nil, nil)
		assert.Empty(t, res.Missing, string(qtype))
		assert.Empty(t, res.FromHistory, string(qtype))
	}
}

func TestResolveSlotsMissingAndResolvedDisjoint(t *testing.T) {
	t.Parallel()

	// borrowing that still falls short leaves the slot missing only
	res := ResolveSlots(model.QueryComparison, nil, []string{"Xiaomi 14"})
	assert.Equal(t, []string{model.SlotDeviceNames}, res.Missing)
	for slot := range res.FromHistory {
		assert.NotContains(t, res.Missing, slot)
	}
	assert.Empty(t, res.FromHistory)
}
