package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDeviceCaseInsensitive(t *testing.T) {
	t.Parallel()

	d, ok := FindDevice("samsung s24 ultra")
	require.True(t, ok)
	assert.Equal(t, "Samsung S24 Ultra", d.Name)

	_, ok = FindDevice("Nokia 3310")
	assert.False(t, ok)
}

func TestSearchDevicesByBrandAndSpec(t *testing.T) {
	t.Parallel()

	byBrand := SearchDevices("apple")
	require.NotEmpty(t, byBrand)
	for _, d := range byBrand {
		assert.Equal(t, "Apple", d.Brand)
	}

	bySpec := SearchDevices("5000mAh")
	require.NotEmpty(t, bySpec)
	assert.Equal(t, "Samsung S24 Ultra", bySpec[0].Name)

	assert.Empty(t, SearchDevices(""))
	assert.Empty(t, SearchDevices("smart toaster"))
}

func TestPriceDeviceFlagsBestDeal(t *testing.T) {
	t.Parallel()

	pricing, err := PriceDevice("OnePlus 12")
	require.NoError(t, err)
	assert.Equal(t, "OnePlus 12", pricing.DeviceName)
	require.Len(t, pricing.Quotes, 3)

	for _, q := range pricing.Quotes {
		assert.GreaterOrEqual(t, q.Price, pricing.LowestPrice)
	}
	assert.Equal(t, "Flipkart", pricing.BestDeal)

	_, err = PriceDevice("Nokia 3310")
	assert.Error(t, err)
}

func TestReviewsFor(t *testing.T) {
	t.Parallel()

	rv, err := ReviewsFor("google pixel 8 pro")
	require.NoError(t, err)
	assert.Equal(t, "Google Pixel 8 Pro", rv.DeviceName)
	assert.Greater(t, rv.Rating, 0.0)
	assert.NotEmpty(t, rv.Pros)
	assert.NotEmpty(t, rv.Cons)

	_, err = ReviewsFor("Nokia 3310")
	assert.Error(t, err)
}

func TestCompareDevices(t *testing.T) {
	t.Parallel()

	table, d1, d2, err := CompareDevices("Samsung S24 Ultra", "iPhone 15 Pro Max")
	require.NoError(t, err)
	assert.Equal(t, "Samsung S24 Ultra", d1.Name)
	assert.Equal(t, "iPhone 15 Pro Max", d2.Name)
	require.NotEmpty(t, table)

	row, ok := table["processor"]
	require.True(t, ok)
	assert.Equal(t, "Snapdragon 8 Gen 3", row[0])
	assert.Equal(t, "A17 Pro", row[1])

	_, _, _, err = CompareDevices("Samsung S24 Ultra", "Nokia 3310")
	assert.Error(t, err)
}
