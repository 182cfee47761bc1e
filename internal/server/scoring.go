package server

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/resume-screener/internal/types"
)

// Weights of the sub-scores in the overall match score.
const (
	skillsWeight     = 0.5
	experienceWeight = 0.3
	educationWeight  = 0.2
)

// maxJobSkills caps the skills extracted from one job description.
const maxJobSkills = 15

var (
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern  = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	degreePattern = regexp.MustCompile(`(?i)\b(bachelor|master|ph\.?d|doctorate|b\.?sc|m\.?sc|mba|degree|university|college)\b`)
	leadingAnd    = regexp.MustCompile(`(?i)^and\s+`)
	bulletPrefix  = regexp.MustCompile(`^\s*[-*•]\s*`)
)

var stopwords = map[string]bool{
	"with": true, "that": true, "this": true, "from": true, "have": true, "will": true,
	"your": true, "their": true, "about": true, "into": true, "what": true, "when": true,
	"work": true, "team": true, "role": true, "able": true, "must": true, "should": true,
	"years": true, "experience": true, "strong": true, "knowledge": true, "skills": true,
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// extractTerms pulls short skill-like phrases (one to three words) out of free
// text split on commas, semicolons, slashes and line breaks.
func extractTerms(text string, limit int) []string {
	pieces := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r' || r == '/' || r == '|' || r == '•'
	})
	seen := make(map[string]bool)
	var out []string
	for _, p := range pieces {
		p = strings.TrimSpace(bulletPrefix.ReplaceAllString(p, ""))
		p = strings.TrimSpace(leadingAnd.ReplaceAllString(p, ""))
		p = strings.TrimRight(p, ".:")
		words := strings.Fields(p)
		if len(words) == 0 || len(words) > 3 || len(p) < 2 {
			continue
		}
		key := normalizeTerm(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// containsTerm reports whether term occurs in text as a whole word sequence,
// ignoring case.
func containsTerm(text, term string) bool {
	term = normalizeTerm(term)
	if term == "" {
		return false
	}
	lower := strings.ToLower(text)
	for start := 0; ; {
		i := strings.Index(lower[start:], term)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(term)
		if boundary(lower, i-1) && boundary(lower, end) {
			return true
		}
		start = i + 1
	}
}

func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	r := rune(s[i])
	return !(unicode.IsLetter(r) || unicode.IsDigit(r))
}

func keywords(text string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	}) {
		if len(w) >= 4 && !stopwords[w] {
			out[w] = true
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func ptr(v float64) *float64 {
	return &v
}

// newJob builds a job from a title and its description text.
func newJob(title, description string, now time.Time) types.Job {
	terms := extractTerms(description, maxJobSkills)
	skills := make(types.SkillSet, len(terms))
	for i, t := range terms {
		skills[i] = types.Skill{Name: t}
	}

	summary := strings.TrimSpace(description)
	if i := strings.IndexAny(summary, ".\n"); i > 0 {
		summary = summary[:i]
	}
	if len(summary) > 200 {
		summary = summary[:200]
	}

	return types.Job{
		Title:           strings.TrimSpace(title),
		Summary:         summary,
		DescriptionText: description,
		Requirements:    types.TextList{Text: strings.Join(terms, ", ")},
		Skills:          skills,
		PostedAt:        types.NewTimestamp(now),
		UploadDate:      types.NewTimestamp(now),
	}
}

// parseResume extracts contact details, skills, education and experience
// bullets from plain resume text. vocabulary is the set of known skill names.
func parseResume(name, fileName, text string, vocabulary []string, now time.Time) types.Candidate {
	c := types.Candidate{
		Name:       strings.TrimSpace(name),
		FileName:   fileName,
		Status:     types.StatusNew,
		UploadDate: types.NewTimestamp(now),
		Email:      emailPattern.FindString(text),
		Phone:      strings.TrimSpace(phonePattern.FindString(text)),
	}

	var nextSkill int64
	for _, v := range vocabulary {
		if containsTerm(text, v) {
			nextSkill++
			c.Skills = append(c.Skills, types.Skill{ID: nextSkill, Name: v})
		}
	}

	var nextExp int64
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case c.Education == "" && degreePattern.MatchString(trimmed):
			c.Education = trimmed
		case bulletPrefix.MatchString(line):
			nextExp++
			c.Experiences = append(c.Experiences, types.Experience{
				ID:          nextExp,
				Description: strings.TrimSpace(bulletPrefix.ReplaceAllString(line, "")),
			})
		case c.Summary == "" && !emailPattern.MatchString(trimmed) && !phonePattern.MatchString(trimmed) &&
			!strings.EqualFold(trimmed, c.Name):
			c.Summary = trimmed
		}
	}
	return c
}

// scores are the sub-scores of one resume against one job.
type scores struct {
	match, skills, experience, education float64
}

// score compares resume text with a job. It is deterministic: the same text
// and job always produce the same numbers.
func score(text string, job types.Job) scores {
	var sc scores

	if names := job.Skills.Names(); len(names) > 0 {
		hit := 0
		for _, n := range names {
			if containsTerm(text, n) {
				hit++
			}
		}
		sc.skills = 100 * float64(hit) / float64(len(names))
	}

	want := keywords(job.DescriptionText + " " + job.Title)
	if len(want) > 0 {
		have := keywords(text)
		hit := 0
		for w := range want {
			if have[w] {
				hit++
			}
		}
		sc.experience = 100 * float64(hit) / float64(len(want))
	}

	if degreePattern.MatchString(text) {
		sc.education = 100
	} else {
		sc.education = 40
	}

	sc.skills = round1(sc.skills)
	sc.experience = round1(sc.experience)
	sc.match = round1(skillsWeight*sc.skills + experienceWeight*sc.experience + educationWeight*sc.education)
	return sc
}

// apply stores sc on c as scored against jobID.
func (sc scores) apply(c *types.Candidate, jobID int64) {
	c.MatchScore = ptr(sc.match)
	c.SkillsScore = ptr(sc.skills)
	c.ExperienceScore = ptr(sc.experience)
	c.EducationScore = ptr(sc.education)
	id := jobID
	c.JobID = &id
}
