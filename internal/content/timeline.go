package content

import (
	"bytes"
	"encoding/json"
)

// TimelineItem is an education or experience entry. The compiler copies the
// timeline through untouched; the typed form is used by readers.
type TimelineItem struct {
	ID           any    `json:"id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Start        string `json:"start"`
	End          string `json:"end,omitempty"`
}

// Timeline item types.
const (
	TimelineEducation  = "education"
	TimelineExperience = "experience"
)

// EmptyCollection is the document published when a collection source is
// missing or unreadable.
var EmptyCollection = json.RawMessage("[]")

// ParseDocument checks that data holds a single JSON value and returns it
// without trailing whitespace.
func ParseDocument(data []byte) (json.RawMessage, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
