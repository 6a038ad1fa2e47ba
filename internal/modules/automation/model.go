package automation

// Candidate is the slice of an item the markdown schedule looks at.
// Only active, unsold items are ever candidates.
type Candidate struct {
	SKU           string `json:"sku"`
	MarkdownStage int    `json:"markdown_stage"`
	ListedAt      string `json:"listed_at"`
}

// StageChange is one planned promotion of an item to a deeper stage.
type StageChange struct {
	SKU         string `json:"sku"`
	FromStage   int    `json:"from_stage"`
	ToStage     int    `json:"to_stage"`
	ElapsedDays int    `json:"elapsed_days"`
}

// Counts reports how many items a run moved, keyed by the stage each item
// ended at. An item promoted across several stages counts once.
type Counts struct {
	Stage1 int `json:"stage1"`
	Stage2 int `json:"stage2"`
	Stage3 int `json:"stage3"`
}

// Total is the number of items a run touched.
func (c Counts) Total() int { return c.Stage1 + c.Stage2 + c.Stage3 }
