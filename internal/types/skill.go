package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Skill is a single named skill.
type Skill struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// SkillSet holds skills regardless of how the backend encoded them. Candidate
// payloads send objects with a name, job payloads send plain strings; both
// decode into the same container.
type SkillSet []Skill

// UnmarshalJSON accepts an array whose entries are strings or {"name": ...}
// objects. Blank names are dropped.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("skills: %w", err)
	}

	out := make(SkillSet, 0, len(raw))
	for i, entry := range raw {
		entry = bytes.TrimSpace(entry)
		var skill Skill
		switch {
		case len(entry) > 0 && entry[0] == '"':
			if err := json.Unmarshal(entry, &skill.Name); err != nil {
				return fmt.Errorf("skills[%d]: %w", i, err)
			}
		case len(entry) > 0 && entry[0] == '{':
			if err := json.Unmarshal(entry, &skill); err != nil {
				return fmt.Errorf("skills[%d]: %w", i, err)
			}
		default:
			return fmt.Errorf("skills[%d]: unsupported JSON value %s", i, string(entry))
		}
		skill.Name = strings.TrimSpace(skill.Name)
		if skill.Name == "" {
			continue
		}
		out = append(out, skill)
	}
	*s = out
	return nil
}

// Names returns the skill names in order.
func (s SkillSet) Names() []string {
	names := make([]string, len(s))
	for i, skill := range s {
		names[i] = skill.Name
	}
	return names
}

// Head returns at most n skills and how many were left out.
func (s SkillSet) Head(n int) (SkillSet, int) {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s, 0
	}
	return s[:n], len(s) - n
}
