// Package views fetches what a route shows, derives its view model and renders
// it through the box printer. Each render takes one "now" from the clock so
// every job on screen is classified against the same instant.
package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-screener/internal/classify"
	"github.com/jonathan/resume-screener/internal/listing"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/types"
	"go.uber.org/zap"
)

// Source is the read side of the API client.
type Source interface {
	ListResumes(ctx context.Context) ([]types.Candidate, error)
	GetResume(ctx context.Context, id int64) (*types.Candidate, error)
	GetAnalysis(ctx context.Context, id int64) (*types.Analysis, error)
	ListJobs(ctx context.Context) ([]types.Job, error)
	GetJob(ctx context.Context, id int64) (*types.Job, error)
}

// Renderer renders views from a Source.
type Renderer struct {
	src    Source
	clock  classify.Clock
	logger *zap.SugaredLogger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the clock used for job state.
func WithClock(c classify.Clock) Option {
	return func(r *Renderer) {
		r.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// New creates a Renderer.
func New(src Source, opts ...Option) *Renderer {
	r := &Renderer{src: src, clock: classify.SystemClock, logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) classifier() classify.Classifier {
	return classify.NewClassifier(r.clock)
}

const dateLayout = "Jan 2, 2006"

func formatDate(ts types.Timestamp) string {
	if ts.IsZero() {
		return "—"
	}
	return ts.Format(dateLayout)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

func scoreLabel(score *float64) string {
	tier := classify.ScoreTier(score)
	if tier == classify.TierUnscored {
		return "not scored"
	}
	return fmt.Sprintf("%s (%s)", classify.Percent(score), tier)
}

func tabLine(counts []listing.TabCount, current string) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		label := fmt.Sprintf("%s (%d)", c.Tab, c.Count)
		if strings.EqualFold(c.Tab, current) {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func printer(w io.Writer) *observability.Printer {
	return observability.NewPrinter(w)
}
