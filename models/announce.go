package models

import "time"

// AnnouncePage is the raw material pulled from one announce page before
// field extraction: the structured data blocks plus the rendered text
// the heuristics scan.
type AnnouncePage struct {
	URL       string    `json:"url"`
	JSONLD    []string  `json:"json_ld"`
	Text      string    `json:"text"`
	FetchedAt time.Time `json:"fetched_at"`
}
