package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Job is a job description known to the backend.
// Jobs carry no persisted status; active/closed is derived from PostedTime.
type Job struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category,omitempty"`
	Location         string    `json:"location,omitempty"`
	Summary          string    `json:"summary,omitempty"`
	DescriptionText  string    `json:"descriptionText,omitempty"`
	Requirements     TextList  `json:"requirements"`
	Responsibilities TextList  `json:"responsibilities"`
	Skills           SkillSet  `json:"skills"`
	PostedAt         Timestamp `json:"postedAt"`
	UploadDate       Timestamp `json:"uploadDate"`
}

// PostedTime returns when the job was posted: PostedAt, then UploadDate.
// ok is false when the backend sent neither.
func (j *Job) PostedTime() (posted time.Time, ok bool) {
	if !j.PostedAt.IsZero() {
		return j.PostedAt.Time, true
	}
	if !j.UploadDate.IsZero() {
		return j.UploadDate.Time, true
	}
	return time.Time{}, false
}

// TextList is a requirements-style field that the backend sends either as one
// comma separated string or as an array of strings.
type TextList struct {
	Text  string
	Items []string
}

// UnmarshalJSON accepts a string, an array of strings, or null.
func (l *TextList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*l = TextList{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &l.Text)
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("text list: %w", err)
		}
		l.Items = items
		return nil
	default:
		return fmt.Errorf("text list: unsupported JSON value %s", string(data))
	}
}

// MarshalJSON writes the array form when items are present, else the string.
func (l TextList) MarshalJSON() ([]byte, error) {
	if l.Items != nil {
		return json.Marshal(l.Items)
	}
	if l.Text == "" {
		return []byte("null"), nil
	}
	return json.Marshal(l.Text)
}

// Values returns the raw entries: the array items as is, or the string split on
// commas. No cleaning is applied.
func (l TextList) Values() []string {
	if l.Items != nil {
		out := make([]string, len(l.Items))
		copy(out, l.Items)
		return out
	}
	if strings.TrimSpace(l.Text) == "" {
		return nil
	}
	return strings.Split(l.Text, ",")
}
