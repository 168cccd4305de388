package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gadget-scout/server/internal/agent/model"
)

// Mock device database backing the lookup tools. Prices are in INR.
var MockDevices = []model.Device{
	{
		Name:  "Samsung S24 Ultra",
		Brand: "Samsung",
		Price: 129999,
		Specs: map[string]string{
			"display":   "6.8-inch Dynamic AMOLED 2X, 120Hz",
			"processor": "Snapdragon 8 Gen 3",
			"ram":       "12GB",
			"storage":   "256GB, 512GB, 1TB",
			"camera":    "200MP Wide, 50MP Periscope Telephoto, 12MP Ultra Wide",
			"battery":   "5000mAh with 45W fast charging",
		},
		InStock: true,
	},
	{
		Name:  "iPhone 15 Pro Max",
		Brand: "Apple",
		Price: 159900,
		Specs: map[string]string{
			"display":   "6.7-inch Super Retina XDR, 120Hz",
			"processor": "A17 Pro",
			"ram":       "8GB",
			"storage":   "256GB, 512GB, 1TB",
			"camera":    "48MP Main, 12MP Ultra Wide, 12MP 5x Telephoto",
			"battery":   "Up to 29 hours video playback",
		},
		InStock: true,
	},
	{
		Name:  "iPhone 15 Pro",
		Brand: "Apple",
		Price: 134900,
		Specs: map[string]string{
			"display":   "6.1-inch Super Retina XDR, 120Hz",
			"processor": "A17 Pro",
			"ram":       "8GB",
			"storage":   "128GB, 256GB, 512GB, 1TB",
			"camera":    "48MP Main, 12MP Ultra Wide, 12MP Telephoto",
			"battery":   "Up to 23 hours video playback",
		},
		InStock: true,
	},
	{
		Name:  "iPhone 15",
		Brand: "Apple",
		Price: 79900,
		Specs: map[string]string{
			"display":   "6.1-inch Super Retina XDR",
			"processor": "A16 Bionic",
			"ram":       "6GB",
			"storage":   "128GB, 256GB, 512GB",
			"camera":    "48MP Main, 12MP Ultra Wide",
			"battery":   "Up to 20 hours video playback",
		},
		InStock: true,
	},
	{
		Name:  "OnePlus 12",
		Brand: "OnePlus",
		Price: 64999,
		Specs: map[string]string{
			"display":   "6.82-inch LTPO AMOLED, 120Hz",
			"processor": "Snapdragon 8 Gen 3",
			"ram":       "12GB, 16GB",
			"storage":   "256GB, 512GB",
			"camera":    "50MP Main, 64MP Periscope Telephoto, 48MP Ultra Wide",
			"battery":   "5400mAh with 100W fast charging",
		},
		InStock: true,
	},
	{
		Name:  "Google Pixel 8 Pro",
		Brand: "Google",
		Price: 106999,
		Specs: map[string]string{
			"display":   "6.7-inch LTPO OLED, 120Hz",
			"processor": "Google Tensor G3",
			"ram":       "12GB",
			"storage":   "128GB, 256GB, 512GB",
			"camera":    "50MP Main, 48MP Telephoto, 48MP Ultra Wide",
			"battery":   "5050mAh with 30W fast charging",
		},
		InStock: true,
	},
	{
		Name:  "Xiaomi 14",
		Brand: "Xiaomi",
		Price: 69999,
		Specs: map[string]string{
			"display":   "6.36-inch LTPO AMOLED, 120Hz",
			"processor": "Snapdragon 8 Gen 3",
			"ram":       "12GB",
			"storage":   "256GB, 512GB",
			"camera":    "50MP Leica Main, 50MP Telephoto, 50MP Ultra Wide",
			"battery":   "4610mAh with 90W fast charging",
		},
		InStock: false,
	},
}

// Retailer price offsets relative to the device list price. Each retailer
// applies its own markdown so quotes differ predictably.
var retailerOffsets = []struct {
	Retailer string
	Factor   float64
}{
	{"Amazon", 0.97},
	{"Flipkart", 0.95},
	{"Croma", 1.00},
}

var mockReviews = map[string]model.DeviceReviews{
	"Samsung S24 Ultra": {
		DeviceName:  "Samsung S24 Ultra",
		Rating:      4.6,
		ReviewCount: 12840,
		Pros:        []string{"Outstanding 200MP camera", "S Pen productivity", "Bright display"},
		Cons:        []string{"Expensive", "Heavy at 232g"},
	},
	"iPhone 15 Pro Max": {
		DeviceName:  "iPhone 15 Pro Max",
		Rating:      4.7,
		ReviewCount: 18320,
		Pros:        []string{"Class-leading video", "A17 Pro performance", "Titanium build"},
		Cons:        []string{"Slow charging", "Highest price in segment"},
	},
	"iPhone 15 Pro": {
		DeviceName:  "iPhone 15 Pro",
		Rating:      4.6,
		ReviewCount: 9870,
		Pros:        []string{"Compact flagship", "Great camera consistency"},
		Cons:        []string{"Battery just average", "120Hz only on Pro models"},
	},
	"iPhone 15": {
		DeviceName:  "iPhone 15",
		Rating:      4.5,
		ReviewCount: 15210,
		Pros:        []string{"Good value for an iPhone", "Excellent main camera"},
		Cons:        []string{"60Hz display", "No telephoto lens"},
	},
	"OnePlus 12": {
		DeviceName:  "OnePlus 12",
		Rating:      4.5,
		ReviewCount: 7640,
		Pros:        []string{"100W charging", "Flagship specs for the price", "Smooth display"},
		Cons:        []string{"Camera inconsistent in low light", "No wireless charging on base model"},
	},
	"Google Pixel 8 Pro": {
		DeviceName:  "Google Pixel 8 Pro",
		Rating:      4.4,
		ReviewCount: 6420,
		Pros:        []string{"Best-in-class computational photography", "Seven years of updates"},
		Cons:        []string{"Tensor runs warm", "Slow charging"},
	},
	"Xiaomi 14": {
		DeviceName:  "Xiaomi 14",
		Rating:      4.3,
		ReviewCount: 5130,
		Pros:        []string{"Leica camera tuning", "Compact size", "Aggressive pricing"},
		Cons:        []string{"HyperOS bloatware", "Availability issues"},
	},
}

// FindDevice looks a device up by exact name, case-insensitive.
func FindDevice(name string) (model.Device, bool) {
	for _, d := range MockDevices {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return model.Device{}, false
}

// SearchDevices matches the query against device names, brands, and spec
// values. Results keep the database order.
func SearchDevices(query string) []model.Device {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []model.Device
	for _, d := range MockDevices {
		if deviceMatches(d, q) {
			out = append(out, d)
		}
	}
	return out
}

func deviceMatches(d model.Device, q string) bool {
	if strings.Contains(strings.ToLower(d.Name), q) ||
		strings.Contains(strings.ToLower(d.Brand), q) {
		return true
	}
	for _, v := range d.Specs {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// PriceDevice produces retailer quotes for a device with the lowest flagged.
func PriceDevice(name string) (model.DevicePricing, error) {
	d, ok := FindDevice(name)
	if !ok {
		return model.DevicePricing{}, fmt.Errorf("device not found: %s", name)
	}

	pricing := model.DevicePricing{DeviceName: d.Name}
	for _, r := range retailerOffsets {
		q := model.PriceQuote{Retailer: r.Retailer, Price: float64(int(d.Price * r.Factor))}
		pricing.Quotes = append(pricing.Quotes, q)
		if pricing.BestDeal == "" || q.Price < pricing.LowestPrice {
			pricing.LowestPrice = q.Price
			pricing.BestDeal = q.Retailer
		}
	}
	return pricing, nil
}

// ReviewsFor returns aggregated review data for a device.
func ReviewsFor(name string) (model.DeviceReviews, error) {
	d, ok := FindDevice(name)
	if !ok {
		return model.DeviceReviews{}, fmt.Errorf("device not found: %s", name)
	}
	rv, ok := mockReviews[d.Name]
	if !ok {
		return model.DeviceReviews{DeviceName: d.Name}, nil
	}
	return rv, nil
}

// CompareDevices builds a per-spec side-by-side table for two devices. Spec
// keys are the sorted union of both devices' keys, with "-" for gaps.
func CompareDevices(name1, name2 string) (map[string][2]string, model.Device, model.Device, error) {
	d1, ok := FindDevice(name1)
	if !ok {
		return nil, model.Device{}, model.Device{}, fmt.Errorf("device not found: %s", name1)
	}
	d2, ok := FindDevice(name2)
	if !ok {
		return nil, model.Device{}, model.Device{}, fmt.Errorf("device not found: %s", name2)
	}

	keys := map[string]bool{}
	for k := range d1.Specs {
		keys[k] = true
	}
	for k := range d2.Specs {
		keys[k] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	table := make(map[string][2]string, len(sorted))
	for _, k := range sorted {
		v1, ok1 := d1.Specs[k]
		if !ok1 {
			v1 = "-"
		}
		v2, ok2 := d2.Specs[k]
		if !ok2 {
			v2 = "-"
		}
		table[k] = [2]string{v1, v2}
	}
	return table, d1, d2, nil
}
