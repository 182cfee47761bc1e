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

// JobList renders the jobs matching q.
func (r *Renderer) JobList(ctx context.Context, w io.Writer, q listing.JobQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}
	all, err := r.src.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}
	c := r.classifier()
	result := listing.FilterJobs(all, q, c.Now())

	tab := strings.TrimSpace(q.Tab)
	if tab == "" {
		tab = listing.TabAll
	}

	p := printer(w)
	p.PrintNotice(tabLine(listing.JobTabCounts(all, c.Now()), tab))
	if result.Empty() {
		p.PrintNotice("No jobs found.")
		return nil
	}

	lines := make([]string, 0, result.Len())
	for i := range result.Items {
		j := &result.Items[i]
		lines = append(lines, fmt.Sprintf("#%d %s [%s] posted %s",
			j.ID, j.Title, c.Job(j).Label(), c.Posted(j).Format(dateLayout)))
	}
	p.PrintBox(fmt.Sprintf("Jobs (%d)", result.Len()), lines...)
	return nil
}

// JobDetail renders one job.
func (r *Renderer) JobDetail(ctx context.Context, w io.Writer, id int64) error {
	j, err := r.src.GetJob(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load job %d: %w", id, err)
	}
	renderJob(w, j, r.classifier())
	return nil
}

func renderJob(w io.Writer, j *types.Job, c classify.Classifier) {
	p := printer(w)
	p.PrintBox(j.Title,
		"Status:    "+c.Job(j).Label(),
		"Posted:    "+c.Posted(j).Format(dateLayout),
		"Category:  "+orDash(j.Category),
		"Location:  "+orDash(j.Location),
	)
	if j.Summary != "" {
		p.PrintBox("Summary", j.Summary)
	}
	if items := classify.ToList(j.Requirements); len(items) > 0 {
		p.PrintBox("Requirements", bullets(items)...)
	}
	if items := classify.ToList(j.Responsibilities); len(items) > 0 {
		p.PrintBox("Responsibilities", bullets(items)...)
	}
	if len(j.Skills) > 0 {
		p.PrintBox("Skills", strings.Join(j.Skills.Names(), ", "))
	}
}

func bullets(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = "• " + item
	}
	return out
}
