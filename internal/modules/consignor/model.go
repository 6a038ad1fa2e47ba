package consignor

// DefaultPercent is the consignor's share of net proceeds when no percentage
// was agreed. Applied at computation time, never written back to the record.
const DefaultPercent = 0.5

// Consignor is a third party who supplies items the shop sells on commission.
type Consignor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	WhatsApp string   `json:"whatsapp,omitempty"`
	Email    string   `json:"email,omitempty"`
	PixKey   string   `json:"pix_key,omitempty"`
	Percent  *float64 `json:"percent,omitempty"` // nil = not agreed, defaults to DefaultPercent in payouts
	Notes    string   `json:"notes,omitempty"`
	Active   bool     `json:"active"`
}

// UpsertRequest is the payload for creating or replacing a consignor.
// A blank ID means a new C#### identifier is allocated on insert.
type UpsertRequest struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	WhatsApp string   `json:"whatsapp,omitempty"`
	Email    string   `json:"email,omitempty"`
	PixKey   string   `json:"pix_key,omitempty"`
	Percent  *float64 `json:"percent,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Active   *bool    `json:"active,omitempty"` // defaults to true
}
