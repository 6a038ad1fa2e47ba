package item

import "testing"

func TestCurrentPrice_Schedule(t *testing.T) {
	cases := []struct {
		name      string
		listPrice float64
		stage     int
		expected  float64
	}{
		{"full price", 100.00, 0, 100.00},
		{"first markdown", 100.00, 1, 90.00},
		{"second markdown", 100.00, 2, 75.00},
		{"third markdown", 100.00, 3, 60.00},
		{"unknown stage falls back to full price", 100.00, 7, 100.00},
		{"negative stage falls back to full price", 100.00, -1, 100.00},
		{"rounds to cents", 19.99, 1, 17.99},
		{"second markdown rounds to cents", 33.33, 2, 25.00},
		{"third markdown rounds to cents", 49.90, 3, 29.94},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CurrentPrice(tc.listPrice, tc.stage)
			if got != tc.expected {
				t.Fatalf("CurrentPrice(%v, %d) = %v, want %v",
					tc.listPrice, tc.stage, got, tc.expected)
			}
		})
	}
}

func TestDiscount(t *testing.T) {
	if Discount(2) != 0.25 {
		t.Fatalf("Discount(2) = %v, want 0.25", Discount(2))
	}
	if Discount(9) != 0 {
		t.Fatalf("Discount(9) = %v, want 0", Discount(9))
	}
}
