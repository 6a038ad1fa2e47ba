package sale

import "github.com/shopspring/decimal"

// Sale records one item leaving the shop. The consignor reference is copied
// from the item when the sale is recorded and never follows later edits to
// the item, so historical payouts stay correct.
type Sale struct {
	ID               string   `json:"id"`
	Date             string   `json:"date"`
	SKU              string   `json:"sku"`
	SalePrice        float64  `json:"sale_price"`
	DiscountValue    float64  `json:"discount_value"`
	NetValue         float64  `json:"net_value"` // derived, never stored
	Channel          string   `json:"channel,omitempty"`
	CustomerName     string   `json:"customer_name,omitempty"`
	CustomerWhatsApp string   `json:"customer_whatsapp,omitempty"`
	PaymentMethod    string   `json:"payment_method,omitempty"`
	Notes            string   `json:"notes,omitempty"`
	ConsignorID      *string  `json:"consignor_id,omitempty"`
}

// Net is the amount actually collected: sale price minus discount, in cents.
func Net(salePrice, discountValue float64) float64 {
	n := decimal.NewFromFloat(salePrice).
		Sub(decimal.NewFromFloat(discountValue)).
		Round(2)
	f, _ := n.Float64()
	return f
}

// RecordRequest is the payload for recording a sale. A blank ID means a new
// V{YYMM}### identifier is allocated; a blank date means today.
type RecordRequest struct {
	ID               string  `json:"id,omitempty"`
	Date             string  `json:"date,omitempty"`
	SKU              string  `json:"sku"`
	SalePrice        float64 `json:"sale_price"`
	DiscountValue    float64 `json:"discount_value,omitempty"`
	Channel          string  `json:"channel,omitempty"`
	CustomerName     string  `json:"customer_name,omitempty"`
	CustomerWhatsApp string  `json:"customer_whatsapp,omitempty"`
	PaymentMethod    string  `json:"payment_method,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

// Filter narrows sale history queries.
type Filter struct {
	From        string
	To          string
	ConsignorID string
	SKU         string
}
