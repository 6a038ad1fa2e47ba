package report

// StockSummary describes what is currently on the racks.
type StockSummary struct {
	InStock        int            `json:"in_stock"`
	InventoryValue float64        `json:"inventory_value"` // at current staged prices
	ByStage        map[int]int    `json:"by_stage"`
	ByCategory     map[string]int `json:"by_category"`
}

// SalesSummary aggregates a period's sales.
type SalesSummary struct {
	Count         int     `json:"count"`
	Gross         float64 `json:"gross"`
	TotalDiscount float64 `json:"total_discount"`
	Net           float64 `json:"net"`
}

// SellThrough is the fraction of items listed in a period that sold.
type SellThrough struct {
	Listed int     `json:"listed"`
	Sold   int     `json:"sold"`
	Rate   float64 `json:"rate"`
}

// SlowMover is an item that has sat unsold past a threshold.
type SlowMover struct {
	SKU           string  `json:"sku"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand,omitempty"`
	Size          string  `json:"size,omitempty"`
	ListPrice     float64 `json:"list_price"`
	MarkdownStage int     `json:"markdown_stage"`
	DaysListed    int     `json:"days_listed"`
}
