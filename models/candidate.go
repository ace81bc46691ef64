package models

// GeneratedPost is an in-memory post candidate produced by one generation
// run. Candidates live outside the database until the user saves, publishes
// or shares them; dismissing the run discards them.
type GeneratedPost struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
	Content  string   `json:"content"`
	Image    string   `json:"image,omitempty"`
}
