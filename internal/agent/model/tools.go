package model

// ToolMetadata describes one lookup tool known to the registry, combining
// static metadata seeded at startup with usage counters observed at runtime.
type ToolMetadata struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Category         string           `json:"category"`
	WhenToUse        []string         `json:"when_to_use,omitempty"`
	ExampleQueries   []string         `json:"example_queries,omitempty"`
	TypicalNextTools []string         `json:"typical_next_tools,omitempty"`
	InvocationCount  int64            `json:"invocation_count"`
	SuccessCount     int64            `json:"success_count"`
	FailureCount     int64            `json:"failure_count"`
	CommonSuccessors map[string]int64 `json:"common_successors,omitempty"`
}

// Device is one entry in the device database.
type Device struct {
	Name    string            `json:"name"`
	Brand   string            `json:"brand"`
	Price   float64           `json:"price"`
	Specs   map[string]string `json:"specs"`
	InStock bool              `json:"in_stock"`
}

// PriceQuote is a single retailer's offer for a device.
type PriceQuote struct {
	Retailer string  `json:"retailer"`
	Price    float64 `json:"price"`
}

// DevicePricing aggregates retailer quotes with the lowest highlighted.
type DevicePricing struct {
	DeviceName  string       `json:"device_name"`
	Quotes      []PriceQuote `json:"quotes"`
	LowestPrice float64      `json:"lowest_price"`
	BestDeal    string       `json:"best_deal"`
}

// DeviceReviews aggregates user sentiment for a device.
type DeviceReviews struct {
	DeviceName  string   `json:"device_name"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Pros        []string `json:"pros"`
	Cons        []string `json:"cons"`
}
