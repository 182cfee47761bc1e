package views

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/resume-screener/internal/api"
	"github.com/jonathan/resume-screener/internal/classify"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/session"
	"github.com/jonathan/resume-screener/internal/types"
)

// Notes shown in place of a linked job that could not be loaded.
const (
	JobGoneNote   = "The linked job no longer exists."
	JobFailedNote = "Failed to load job description."
)

// MatchModel is the match analysis of a resume and the job it was scored
// against, when there is one.
type MatchModel struct {
	Analysis *types.Analysis
	Job      *types.Job
	JobNote  string
}

// LoadMatch fetches the analysis of resumeID and then its linked job. A job
// that fails to load leaves a note instead of failing the view.
func (r *Renderer) LoadMatch(ctx context.Context, resumeID int64) (MatchModel, error) {
	a, err := r.src.GetAnalysis(ctx, resumeID)
	if err != nil {
		return MatchModel{}, fmt.Errorf("failed to load resume analysis: %w", err)
	}
	m := MatchModel{Analysis: a}
	if a.JobID == nil {
		return m, nil
	}

	j, err := r.src.GetJob(ctx, *a.JobID)
	switch {
	case err == nil:
		m.Job = j
	case api.IsNotFound(err):
		m.JobNote = JobGoneNote
	default:
		r.logger.Debugw("Linked job failed to load", "job_id", *a.JobID, "error", err)
		m.JobNote = JobFailedNote
	}
	return m, nil
}

// MatchAnalysis renders the overall score, the breakdown bars and the linked
// job of a resume.
func (r *Renderer) MatchAnalysis(ctx context.Context, w io.Writer, resumeID int64) error {
	m, err := r.LoadMatch(ctx, resumeID)
	if err != nil {
		return err
	}
	a := m.Analysis

	p := printer(w)
	title := "Match Analysis"
	if a.CandidateName != "" {
		title += ": " + a.CandidateName
	}
	if classify.ScoreTier(a.MatchScore) == classify.TierUnscored {
		p.PrintBox(title, "This resume has not been scored against a job yet.",
			"Candidate: "+session.CandidatePath(a.ResumeID))
		return nil
	}

	p.PrintBox(title,
		fmt.Sprintf("Overall Score: %s (%s)", classify.Percent(a.MatchScore), classify.ScoreTier(a.MatchScore)),
		observability.Bar(a.MatchScore),
	)

	breakdown := a.Breakdown()
	lines := make([]string, 0, len(breakdown))
	for _, s := range breakdown {
		lines = append(lines, fmt.Sprintf("%-17s %s %4s %s", s.Label, observability.Bar(s.Value),
			classify.Percent(s.Value), classify.ScoreTier(s.Value)))
	}
	p.PrintBox("Breakdown", lines...)

	links := []string{"Candidate: " + session.CandidatePath(a.ResumeID)}
	switch {
	case m.Job != nil:
		links = append(links, fmt.Sprintf("Job:       %s (%s)", session.JobPath(m.Job.ID), m.Job.Title))
	case m.JobNote != "":
		links = append(links, m.JobNote)
	}
	p.PrintBox("Links", links...)

	if m.Job != nil {
		renderJob(w, m.Job, r.classifier())
	}
	return nil
}
