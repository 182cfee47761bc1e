package types

// Analysis is the match analysis of one resume, optionally against a job.
type Analysis struct {
	ResumeID        int64    `json:"id"`
	CandidateName   string   `json:"candidateName"`
	FileName        string   `json:"fileName,omitempty"`
	JobID           *int64   `json:"jobId,omitempty"`
	MatchScore      *float64 `json:"matchScore"`
	SkillsScore     *float64 `json:"skillsScore"`
	ExperienceScore *float64 `json:"experienceScore"`
	EducationScore  *float64 `json:"educationScore"`
	SemanticScore   *float64 `json:"semanticScore,omitempty"`
}

// SubScore is one labelled component of the overall match score.
type SubScore struct {
	Label string
	Value *float64
}

// Breakdown returns the sub-scores in display order.
func (a *Analysis) Breakdown() []SubScore {
	return []SubScore{
		{Label: "Skills Match", Value: a.SkillsScore},
		{Label: "Experience Match", Value: a.ExperienceScore},
		{Label: "Education Match", Value: a.EducationScore},
	}
}
