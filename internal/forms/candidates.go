package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-screener/internal/api"
	"github.com/jonathan/resume-screener/internal/classify"
	"github.com/jonathan/resume-screener/internal/session"
	"github.com/jonathan/resume-screener/internal/types"
)

const (
	uploadMissingMessage   = "Please select a file and enter a candidate name."
	uploadForbiddenMessage = "Upload forbidden: please log in again."
	uploadFallback         = "Upload failed. Please try again."
	statusFallback         = "Failed to update status."
	deleteCandidatePrompt  = "Delete this candidate?"
	deleteCandidateFailed  = "Failed to delete candidate."
	scoreFallback          = "Failed to score resume."
)

// UploadCandidateFlow submits a resume upload.
type UploadCandidateFlow struct {
	flow
}

// NewUploadCandidateFlow creates an upload flow.
func NewUploadCandidateFlow(d Deps, opts ...Option) *UploadCandidateFlow {
	f := &UploadCandidateFlow{}
	f.init(d, opts)
	return f
}

// Submit uploads a resume. A missing file or name, or a bad job id, is
// rejected before any request is made.
func (f *UploadCandidateFlow) Submit(ctx context.Context, req types.UploadResumeRequest) (Outcome, error) {
	return f.run(ctx, func(ctx context.Context) (Outcome, error) {
		if err := req.Validate(); err != nil {
			return Outcome{Message: uploadValidationMessage(err)}, err
		}
		c, err := f.Backend.UploadResume(ctx, req)
		if err != nil {
			out, ferr := f.fail(err, uploadFallback)
			if api.IsKind(err, api.KindUnauthorized) {
				out.Message = uploadForbiddenMessage
			}
			return out, ferr
		}
		msg := "Resume uploaded successfully."
		if c != nil && c.Scored() {
			msg = fmt.Sprintf("Resume uploaded successfully. Match score: %s.", classify.Percent(c.MatchScore))
		}
		return f.succeed(ctx, Outcome{Message: msg})
	})
}

// uploadValidationMessage uses the combined prompt when the file or the name
// is missing and describes any other field on its own.
func uploadValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "File", "CandidateName":
			return uploadMissingMessage
		}
	}
	return ValidationMessage(err)
}

// StatusFlow changes a candidate's status.
type StatusFlow struct {
	flow
}

// NewStatusFlow creates a status flow.
func NewStatusFlow(d Deps, opts ...Option) *StatusFlow {
	f := &StatusFlow{}
	f.init(d, opts)
	return f
}

// Submit moves candidate id to status, which must be one of the five known
// statuses (matched case-insensitively).
func (f *StatusFlow) Submit(ctx context.Context, id int64, status string) (Outcome, error) {
	return f.run(ctx, func(ctx context.Context) (Outcome, error) {
		req := types.StatusUpdateRequest{ResumeID: id, Status: canonicalStatus(status)}
		if err := req.Validate(); err != nil {
			return invalid(err)
		}
		if _, err := f.Backend.UpdateStatus(ctx, req); err != nil {
			return f.fail(err, statusFallback)
		}
		return f.succeed(ctx, Outcome{Message: fmt.Sprintf("Status updated to %s.", req.Status)})
	})
}

// canonicalStatus fixes the case of a known status and leaves anything else
// untouched so validation can reject it.
func canonicalStatus(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, s := range types.CandidateStatuses {
		if strings.EqualFold(trimmed, string(s)) {
			return string(s)
		}
	}
	return raw
}

// DeleteCandidateFlow deletes a candidate after confirmation.
type DeleteCandidateFlow struct {
	flow
	confirmer Confirmer
}

// NewDeleteCandidateFlow creates a delete flow that asks c before deleting.
func NewDeleteCandidateFlow(d Deps, c Confirmer, opts ...Option) *DeleteCandidateFlow {
	f := &DeleteCandidateFlow{confirmer: c}
	f.init(d, opts)
	return f
}

// Submit asks for confirmation. Cancelling issues no request; confirming
// deletes and navigates to the candidate list.
func (f *DeleteCandidateFlow) Submit(ctx context.Context, id int64) (Outcome, error) {
	return f.run(ctx, func(ctx context.Context) (Outcome, error) {
		return f.confirmDelete(ctx, f.confirmer, deleteCandidatePrompt, func(ctx context.Context) error {
			return f.Backend.DeleteResume(ctx, id)
		}, session.RouteCandidates, "Candidate deleted.", deleteCandidateFailed)
	})
}

func (f *flow) confirmDelete(ctx context.Context, c Confirmer, prompt string, del func(context.Context) error,
	next, done, fallback string) (Outcome, error) {
	ok, err := c.Confirm(ctx, prompt)
	if err != nil {
		return Outcome{Message: "Could not read confirmation."}, err
	}
	if !ok {
		return Outcome{Cancelled: true}, nil
	}
	if err := del(ctx); err != nil {
		return f.fail(err, fallback)
	}
	return f.succeed(ctx, Outcome{Navigate: next, Message: done})
}

// ScoreFlow scores a resume against a job and opens the match analysis.
type ScoreFlow struct {
	flow
}

// NewScoreFlow creates a score flow.
func NewScoreFlow(d Deps, opts ...Option) *ScoreFlow {
	f := &ScoreFlow{}
	f.init(d, opts)
	return f
}

// Submit requests scoring and navigates to the resume's match page.
func (f *ScoreFlow) Submit(ctx context.Context, req types.ScoreRequest) (Outcome, error) {
	return f.run(ctx, func(ctx context.Context) (Outcome, error) {
		if err := req.Validate(); err != nil {
			return invalid(err)
		}
		c, err := f.Backend.ScoreResume(ctx, req)
		if err != nil {
			return f.fail(err, scoreFallback)
		}
		msg := "Resume scored."
		if c != nil && c.Scored() {
			msg = fmt.Sprintf("Resume scored: %s match.", classify.Percent(c.MatchScore))
		}
		return f.succeed(ctx, Outcome{Navigate: session.MatchPath(req.ResumeID), Message: msg})
	})
}
