package benefits

// Item is one extracted member-benefit offer.
type Item struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Link        string  `json:"link"`
	Image       *string `json:"image"`
}

// Payload is the response body served to the slideshow.
type Payload struct {
	Items     []Item        `json:"items"`
	UpdatedAt string        `json:"updatedAt"` // ISO-8601, millisecond precision, UTC
	SourceURL string        `json:"sourceUrl"`
	Config    RuntimeConfig `json:"config"`
	Stale     bool          `json:"stale"`
}

type RuntimeConfig struct {
	SlideIntervalSeconds   int `json:"slideIntervalSeconds"`
	RefreshIntervalMinutes int `json:"refreshIntervalMinutes"`
}

// Skipped records a heading that was considered but not turned into an item.
type Skipped struct {
	Title  string
	Reason string
}

type Result struct {
	Items   []Item
	Skipped []Skipped
}
