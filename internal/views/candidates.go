package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-screener/internal/classify"
	"github.com/jonathan/resume-screener/internal/listing"
	"github.com/jonathan/resume-screener/internal/types"
)

const maxSkillsShown = 12

// CandidateList renders the candidates matching q.
func (r *Renderer) CandidateList(ctx context.Context, w io.Writer, q listing.CandidateQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}
	all, err := r.src.ListResumes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load candidates: %w", err)
	}
	result := listing.FilterCandidates(all, q)
	counts := listing.CandidateTabCounts(all, q.Search)

	tab := strings.TrimSpace(q.Tab)
	if tab == "" {
		tab = listing.TabAll
	}

	p := printer(w)
	p.PrintNotice(tabLine(counts, tab))
	if result.Empty() {
		p.PrintNotice("No candidates found.")
		return nil
	}

	lines := make([]string, 0, result.Len())
	for _, c := range result.Items {
		lines = append(lines, candidateRow(c))
	}
	p.PrintBox(fmt.Sprintf("Candidates (%d)", result.Len()), lines...)
	return nil
}

func candidateRow(c types.Candidate) string {
	row := fmt.Sprintf("#%d %s [%s] %s", c.ID, c.Name, c.DerivedStatus(), classify.Percent(c.MatchScore))
	if c.Email != "" {
		row += "\n    " + c.Email
	}
	return row
}

// CandidateDetail renders one candidate.
func (r *Renderer) CandidateDetail(ctx context.Context, w io.Writer, id int64) error {
	c, err := r.src.GetResume(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load candidate %d: %w", id, err)
	}

	p := printer(w)
	p.PrintBox(c.Name,
		"Email:     "+orDash(c.Email),
		"Phone:     "+orDash(c.Phone),
		"File:      "+orDash(c.FileName),
		"Uploaded:  "+formatDate(c.UploadDate),
		"Match:     "+scoreLabel(c.MatchScore),
	)

	badges := classify.StatusBadges(c.Status)
	parts := make([]string, 0, len(badges))
	for _, b := range badges {
		if b.Current {
			parts = append(parts, "["+string(b.Status)+"]")
			continue
		}
		parts = append(parts, string(b.Status))
	}
	p.PrintBox("Status", strings.Join(parts, "  "))

	if c.Summary != "" {
		p.PrintBox("Summary", c.Summary)
	}
	if c.Education != "" {
		p.PrintBox("Education", c.Education)
	}

	var exp []string
	for _, e := range c.Experiences {
		for _, line := range classify.ExperienceLines(e.Description) {
			exp = append(exp, "• "+line)
		}
	}
	if len(exp) > 0 {
		p.PrintBox("Experience", exp...)
	}

	if len(c.Skills) > 0 {
		shown, rest := c.Skills.Head(maxSkillsShown)
		lines := []string{strings.Join(shown.Names(), ", ")}
		if rest > 0 {
			lines = append(lines, fmt.Sprintf("... and %d more", rest))
		}
		p.PrintBox("Skills", lines...)
	}
	return nil
}
