package models

// Job represents a single job record as served by the remote source.
// Fields are passed through to the renderers untouched.
type Job struct {
	ID      string   `json:"id"`
	Order   int      `json:"order"`
	Title   string   `json:"title"`
	Dates   string   `json:"dates"`
	Duties  []string `json:"duties"`
	Company string   `json:"company"`
}
