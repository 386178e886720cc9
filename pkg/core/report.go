// pkg/core/report.go
package core

// Report is one entry of the host's report log.
// Long announcements span several reports; all but the first are continuations.
type Report struct {
	ID           int    `json:"id"`
	Year         int    `json:"year"`
	Tick         int    `json:"tick"`
	Text         string `json:"text"`
	Color        int    `json:"color"`
	Bright       bool   `json:"bright"`
	Continuation bool   `json:"continuation"`
	Announcement bool   `json:"announcement"`
}
