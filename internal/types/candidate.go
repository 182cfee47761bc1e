// Package types provides the records exchanged with the resume-screening backend
// and the request shapes submitted by the client.
package types

import "strings"

// CandidateStatus is the review stage a candidate is in.
type CandidateStatus string

// Candidate status values, in workflow order.
const (
	StatusNew       CandidateStatus = "New"
	StatusReviewed  CandidateStatus = "Reviewed"
	StatusContacted CandidateStatus = "Contacted"
	StatusHired     CandidateStatus = "Hired"
	StatusRejected  CandidateStatus = "Rejected"
)

// CandidateStatuses lists every known status in workflow order.
var CandidateStatuses = []CandidateStatus{
	StatusNew,
	StatusReviewed,
	StatusContacted,
	StatusHired,
	StatusRejected,
}

// ParseCandidateStatus maps a raw status string onto one of the known statuses.
// Matching ignores case and surrounding whitespace. Empty and unrecognized
// values are New.
func ParseCandidateStatus(raw string) CandidateStatus {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StatusNew
	}
	for _, s := range CandidateStatuses {
		if strings.EqualFold(raw, string(s)) {
			return s
		}
	}
	return StatusNew
}

// Known reports whether s is exactly one of the enumerated statuses.
func (s CandidateStatus) Known() bool {
	for _, known := range CandidateStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Experience is one experience entry parsed from a resume.
type Experience struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// Candidate is an uploaded resume together with what the backend extracted and
// scored from it. The client only ever holds a re-fetchable copy.
type Candidate struct {
	ID              int64           `json:"id"`
	Name            string          `json:"candidateName"`
	FileName        string          `json:"fileName,omitempty"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Summary         string          `json:"summary,omitempty"`
	Education       string          `json:"education,omitempty"`
	Status          CandidateStatus `json:"status,omitempty"`
	MatchScore      *float64        `json:"matchScore,omitempty"`
	SkillsScore     *float64        `json:"skillsScore,omitempty"`
	ExperienceScore *float64        `json:"experienceScore,omitempty"`
	EducationScore  *float64        `json:"educationScore,omitempty"`
	Skills          SkillSet        `json:"skills,omitempty"`
	Experiences     []Experience    `json:"experiences,omitempty"`
	UploadDate      Timestamp       `json:"uploadDate"`
	JobID           *int64          `json:"jobId,omitempty"`
}

// DerivedStatus returns the candidate's status, New when missing or unknown.
func (c *Candidate) DerivedStatus() CandidateStatus {
	return ParseCandidateStatus(string(c.Status))
}

// Scored reports whether the backend has produced a match score.
func (c *Candidate) Scored() bool {
	return c.MatchScore != nil
}
