package forms

import (
	"context"
	"strings"

	"github.com/jonathan/resume-screener/internal/session"
	"github.com/jonathan/resume-screener/internal/types"
)

const (
	jobManualMissing = "Please enter a job title and description."
	jobFileMissing   = "Please enter a job title and select a file."
	jobFallback      = "Failed to create job."
	deleteJobPrompt  = "Delete this job?"
	deleteJobFailed  = "Failed to delete job."
)

// JobMode selects how a job is created.
type JobMode int

// Job creation modes.
const (
	JobManual JobMode = iota
	JobFile
)

// JobForm is the create-job form: a title plus either pasted text or a file.
type JobForm struct {
	Mode        JobMode
	Title       string
	Description string
	File        *types.Upload
}

// CreateJobFlow creates a job.
type CreateJobFlow struct {
	flow
}

// NewCreateJobFlow creates a create-job flow.
func NewCreateJobFlow(d Deps, opts ...Option) *CreateJobFlow {
	f := &CreateJobFlow{}
	f.init(d, opts)
	return f
}

// Submit sends the manual form as JSON or the file form as multipart.
func (f *CreateJobFlow) Submit(ctx context.Context, form JobForm) (Outcome, error) {
	return f.run(ctx, func(ctx context.Context) (Outcome, error) {
		title := strings.TrimSpace(form.Title)
		var err error
		switch form.Mode {
		case JobFile:
			req := types.UploadJobRequest{Title: title, File: form.File}
			if verr := req.Validate(); verr != nil {
				return Outcome{Message: jobFileMissing}, verr
			}
			_, err = f.Backend.UploadJobFile(ctx, req)
		default:
			req := types.CreateJobRequest{Title: title, DescriptionText: strings.TrimSpace(form.Description)}
			if verr := req.Validate(); verr != nil {
				return Outcome{Message: jobManualMissing}, verr
			}
			_, err = f.Backend.CreateJobManual(ctx, req)
		}
		if err != nil {
			return f.fail(err, jobFallback)
		}
		return f.succeed(ctx, Outcome{Message: "Job created successfully."})
	})
}

// DeleteJobFlow deletes a job after confirmation.
type DeleteJobFlow struct {
	flow
	confirmer Confirmer
}

// NewDeleteJobFlow creates a delete flow that asks c before deleting.
func NewDeleteJobFlow(d Deps, c Confirmer, opts ...Option) *DeleteJobFlow {
	f := &DeleteJobFlow{confirmer: c}
	f.init(d, opts)
	return f
}

// Submit asks for confirmation, then deletes and navigates to the job list.
func (f *DeleteJobFlow) Submit(ctx context.Context, id int64) (Outcome, error) {
	return f.run(ctx, func(ctx context.Context) (Outcome, error) {
		return f.confirmDelete(ctx, f.confirmer, deleteJobPrompt, func(ctx context.Context) error {
			return f.Backend.DeleteJob(ctx, id)
		}, session.RouteJobs, "Job deleted.", deleteJobFailed)
	})
}
