package payout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutRow is one consignor's settlement line for a period: their net sales
// and the commission split. Donation-sourced sales never appear here; with
// no consignor there is no one to pay.
type PayoutRow struct {
	ConsignorID    string  `json:"consignor_id"`
	Name           string  `json:"name"`
	PixKey         string  `json:"pix_key,omitempty"`
	Percent        float64 `json:"percent"`
	TotalNet       float64 `json:"total_net"`
	Qty            int     `json:"qty"`
	ConsignorValue float64 `json:"consignor_value"`
	ShopValue      float64 `json:"shop_value"`
}

// Split divides a period's net proceeds between consignor and shop. The
// shop's share is a subtraction from the rounded total, not an independent
// rounding, so the two always sum to round(totalNet, 2) exactly.
func Split(totalNet, percent float64) (consignorValue, shopValue float64) {
	total := decimal.NewFromFloat(totalNet).Round(2)
	consignor := total.Mul(decimal.NewFromFloat(percent)).Round(2)
	shop := total.Sub(consignor)
	cv, _ := consignor.Float64()
	sv, _ := shop.Float64()
	return cv, sv
}

// Settlement is the durable record of a payout owed (and eventually paid)
// to a consignor for a period. Compute stays a pure report; closing a
// period is what materialises these.
type Settlement struct {
	ID             uuid.UUID  `json:"id"`
	ConsignorID    string     `json:"consignor_id"`
	PeriodStart    string     `json:"period_start"`
	PeriodEnd      string     `json:"period_end"`
	Qty            int        `json:"qty"`
	TotalNet       float64    `json:"total_net"`
	Percent        float64    `json:"percent"`
	ConsignorValue float64    `json:"consignor_value"`
	ShopValue      float64    `json:"shop_value"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Aggregate is the raw per-consignor sum the store returns before the
// commission split is applied.
type Aggregate struct {
	ConsignorID string
	Name        string
	PixKey      string
	Percent     *float64 // nil = no agreed percentage, defaults at computation
	TotalNet    float64
	Qty         int
}

// PeriodRequest is the payload for closing a payout period.
type PeriodRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
