package views

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/jonathan/resume-screener/internal/classify"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/types"
	"golang.org/x/sync/errgroup"
)

// TierCount is the number of candidates in one score tier.
type TierCount struct {
	Tier  classify.Tier
	Count int
}

// DashboardModel is the derived content of the dashboard.
type DashboardModel struct {
	Candidates int
	Tiers      []TierCount
	Statuses   []StatusCount
	Recent     []types.Candidate
	Jobs       int
	ActiveJobs int
}

// StatusCount is the number of candidates in one status.
type StatusCount struct {
	Status types.CandidateStatus
	Count  int
}

var tierOrder = []classify.Tier{classify.TierHigh, classify.TierMedium, classify.TierLow, classify.TierUnscored}

// BuildDashboard derives the dashboard from the fetched collections.
func BuildDashboard(resumes []types.Candidate, jobs []types.Job, c classify.Classifier) DashboardModel {
	m := DashboardModel{Candidates: len(resumes), Jobs: len(jobs)}

	tiers := make(map[classify.Tier]int, len(tierOrder))
	statuses := make(map[types.CandidateStatus]int, len(types.CandidateStatuses))
	for i := range resumes {
		tiers[classify.ScoreTier(resumes[i].MatchScore)]++
		statuses[resumes[i].DerivedStatus()]++
	}
	for _, t := range tierOrder {
		m.Tiers = append(m.Tiers, TierCount{Tier: t, Count: tiers[t]})
	}
	for _, s := range types.CandidateStatuses {
		m.Statuses = append(m.Statuses, StatusCount{Status: s, Count: statuses[s]})
	}

	recent := make([]types.Candidate, len(resumes))
	copy(recent, resumes)
	sort.SliceStable(recent, func(i, j int) bool {
		a, b := recent[i].UploadDate.Time, recent[j].UploadDate.Time
		if !a.Equal(b) {
			return a.After(b)
		}
		return recent[i].ID > recent[j].ID
	})
	if len(recent) > observability.MaxItemsToShow {
		recent = recent[:observability.MaxItemsToShow]
	}
	m.Recent = recent

	for i := range jobs {
		if c.Job(&jobs[i]) == classify.JobActive {
			m.ActiveJobs++
		}
	}
	return m
}

// Dashboard fetches resumes and jobs concurrently and renders the overview.
func (r *Renderer) Dashboard(ctx context.Context, w io.Writer) error {
	var (
		resumes []types.Candidate
		jobs    []types.Job
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resumes, err = r.src.ListResumes(gctx)
		if err != nil {
			return fmt.Errorf("failed to load resumes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		jobs, err = r.src.ListJobs(gctx)
		if err != nil {
			return fmt.Errorf("failed to load jobs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	m := BuildDashboard(resumes, jobs, r.classifier())
	r.logger.Debugw("Rendering dashboard", "candidates", m.Candidates, "jobs", m.Jobs)

	p := printer(w)
	p.PrintBox("Dashboard",
		fmt.Sprintf("Candidates: %d", m.Candidates),
		fmt.Sprintf("Jobs:       %d (%d active, %d closed)", m.Jobs, m.ActiveJobs, m.Jobs-m.ActiveJobs),
	)

	lines := make([]string, 0, len(m.Tiers))
	for _, t := range m.Tiers {
		lines = append(lines, fmt.Sprintf("%-10s %d", t.Tier, t.Count))
	}
	p.PrintBox("Match Scores", lines...)

	lines = lines[:0]
	for _, s := range m.Statuses {
		lines = append(lines, fmt.Sprintf("%-10s %d", s.Status, s.Count))
	}
	p.PrintBox("Pipeline", lines...)

	if len(m.Recent) == 0 {
		p.PrintNotice("No resumes uploaded yet.")
		return nil
	}
	lines = lines[:0]
	for _, c := range m.Recent {
		lines = append(lines, fmt.Sprintf("#%d %s — %s", c.ID, c.Name, orDash(c.FileName)))
	}
	if more := observability.More(m.Candidates, len(m.Recent)); more != "" {
		lines = append(lines, more)
	}
	p.PrintBox("Recent Uploads", lines...)
	return nil
}
