package item

import "github.com/shopspring/decimal"

// MaxStage is the deepest markdown stage.
const MaxStage = 3

// markdownDiscounts maps a markdown stage to the fraction taken off the
// list price. The zero value covers unknown stages: full price.
var markdownDiscounts = map[int]float64{
	0: 0.00,
	1: 0.10,
	2: 0.25,
	3: 0.40,
}

// CurrentPrice derives what an item sells for today from its list price and
// markdown stage, rounded to cents. This is the single pricing function;
// listings, labels and reports all go through it.
func CurrentPrice(listPrice float64, stage int) float64 {
	discount := markdownDiscounts[stage]
	price := decimal.NewFromFloat(listPrice).
		Mul(decimal.NewFromFloat(1 - discount)).
		Round(2)
	f, _ := price.Float64()
	return f
}

// Discount returns the discount fraction applied at a stage.
func Discount(stage int) float64 { return markdownDiscounts[stage] }
