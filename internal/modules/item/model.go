package item

// DateLayout is how calendar dates are stored and exchanged. The schedule
// only cares about whole days, never time of day.
const DateLayout = "2006-01-02"

// AcquisitionType says how an item entered the shop. Payout eligibility
// keys off the consignor reference, which is absent exactly for donations.
type AcquisitionType string

const (
	AcquisitionConsignment AcquisitionType = "consignment"
	AcquisitionDonation    AcquisitionType = "donation"
	AcquisitionPurchase    AcquisitionType = "purchase"
)

// Valid reports whether t is one of the known acquisition types.
func (t AcquisitionType) Valid() bool {
	switch t {
	case AcquisitionConsignment, AcquisitionDonation, AcquisitionPurchase:
		return true
	}
	return false
}

// Item is one physical piece in inventory. It is in stock while Active and
// SoldAt is unset; recording a sale is the only normal path out of stock.
type Item struct {
	SKU             string          `json:"sku"`
	ConsignorID     *string         `json:"consignor_id,omitempty"` // nil = donated, no one to pay
	AcquisitionType AcquisitionType `json:"acquisition_type"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory,omitempty"`
	Brand           string          `json:"brand,omitempty"`
	Gender          string          `json:"gender,omitempty"`
	Size            string          `json:"size,omitempty"`
	Fit             string          `json:"fit,omitempty"`
	Color           string          `json:"color,omitempty"`
	Fabric          string          `json:"fabric,omitempty"`
	Condition       string          `json:"condition,omitempty"`
	Flaws           string          `json:"flaws,omitempty"`
	Bust            float64         `json:"bust,omitempty"`
	Waist           float64         `json:"waist,omitempty"`
	Length          float64         `json:"length,omitempty"`
	Cost            float64         `json:"cost"`
	ListPrice       float64         `json:"list_price"`
	MarkdownStage   int             `json:"markdown_stage"`
	CurrentPrice    float64         `json:"current_price"` // derived, never stored
	AcquiredAt      string          `json:"acquired_at,omitempty"`
	ListedAt        string          `json:"listed_at,omitempty"`
	ChannelListed   string          `json:"channel_listed,omitempty"`
	SoldAt          *string         `json:"sold_at,omitempty"`
	SalePrice       *float64        `json:"sale_price,omitempty"`
	ChannelSold     string          `json:"channel_sold,omitempty"`
	PhotosURL       string          `json:"photos_url,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Active          bool            `json:"active"`
}

// InStock reports whether the item is still available for sale.
func (i *Item) InStock() bool { return i.Active && i.SoldAt == nil }

// UpsertRequest is the payload for creating or replacing an item.
// A blank SKU means a new BH-YYMM-#### is allocated on insert.
type UpsertRequest struct {
	SKU             string   `json:"sku,omitempty"`
	ConsignorID     *string  `json:"consignor_id,omitempty"`
	AcquisitionType string   `json:"acquisition_type,omitempty"`
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory,omitempty"`
	Brand           string   `json:"brand,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	Size            string   `json:"size,omitempty"`
	Fit             string   `json:"fit,omitempty"`
	Color           string   `json:"color,omitempty"`
	Fabric          string   `json:"fabric,omitempty"`
	Condition       string   `json:"condition,omitempty"`
	Flaws           string   `json:"flaws,omitempty"`
	Bust            float64  `json:"bust,omitempty"`
	Waist           float64  `json:"waist,omitempty"`
	Length          float64  `json:"length,omitempty"`
	Cost            float64  `json:"cost,omitempty"`
	ListPrice       float64  `json:"list_price"`
	MarkdownStage   int      `json:"markdown_stage,omitempty"`
	AcquiredAt      string   `json:"acquired_at,omitempty"`
	ListedAt        string   `json:"listed_at,omitempty"`
	ChannelListed   string   `json:"channel_listed,omitempty"`
	PhotosURL       string   `json:"photos_url,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// Filter narrows item listings.
type Filter struct {
	ActiveOnly  bool
	InStockOnly bool
	ConsignorID string
	Category    string
}
