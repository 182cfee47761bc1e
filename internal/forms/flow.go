package forms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-screener/internal/api"
	"github.com/jonathan/resume-screener/internal/session"
	"github.com/jonathan/resume-screener/internal/types"
	"go.uber.org/zap"
)

const (
	busyMessage    = "Please wait for the current submission to finish."
	expiredMessage = "Your session has expired. Please log in again."
)

// Backend is the part of the API client the flows submit to.
type Backend interface {
	Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error)
	Signup(ctx context.Context, req types.SignupRequest) (string, error)
	UploadResume(ctx context.Context, req types.UploadResumeRequest) (*types.Candidate, error)
	ScoreResume(ctx context.Context, req types.ScoreRequest) (*types.Candidate, error)
	UpdateStatus(ctx context.Context, req types.StatusUpdateRequest) (*types.Candidate, error)
	DeleteResume(ctx context.Context, id int64) error
	CreateJobManual(ctx context.Context, req types.CreateJobRequest) (*types.Job, error)
	UploadJobFile(ctx context.Context, req types.UploadJobRequest) (*types.Job, error)
	DeleteJob(ctx context.Context, id int64) error
}

// Outcome is what the user sees after a submission.
type Outcome struct {
	Navigate  string // route to show next; empty to stay
	Message   string
	Cancelled bool
}

// Refetch reloads whatever the submitting view displays.
type Refetch func(ctx context.Context) error

// Deps are shared by every flow.
type Deps struct {
	Backend Backend
	Session *session.Session
	Logger  *zap.SugaredLogger
}

// Option configures a flow.
type Option func(*flow)

// WithRefetch sets the hook run after a successful submission.
func WithRefetch(fn Refetch) Option {
	return func(f *flow) {
		f.refetch = fn
	}
}

type flow struct {
	Deps
	gate    Gate
	refetch Refetch
}

func (f *flow) init(d Deps, opts []Option) {
	if d.Logger == nil {
		d.Logger = zap.NewNop().Sugar()
	}
	f.Deps = d
	for _, opt := range opts {
		opt(f)
	}
}

// Busy reports whether a submission is in flight.
func (f *flow) Busy() bool {
	return f.gate.Busy()
}

func (f *flow) run(ctx context.Context, fn func(context.Context) (Outcome, error)) (Outcome, error) {
	var out Outcome
	err := f.gate.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	if errors.Is(err, ErrBusy) {
		return Outcome{Message: busyMessage}, err
	}
	return out, err
}

// succeed runs the refetch hook. A failed refetch is logged; the submission
// itself still succeeded.
func (f *flow) succeed(ctx context.Context, out Outcome) (Outcome, error) {
	if f.refetch != nil {
		if err := f.refetch(ctx); err != nil {
			f.Logger.Warnw("Refetch after submission failed", "error", err)
		}
	}
	return out, nil
}

// fail converts a backend error into an outcome. An expired session sends the
// user to the login route.
func (f *flow) fail(err error, fallback string) (Outcome, error) {
	f.Logger.Debugw("Submission failed", "error", err)
	if errors.Is(err, api.ErrSessionExpired) {
		return Outcome{Navigate: session.RouteLogin, Message: expiredMessage}, err
	}
	return Outcome{Message: api.UserMessage(err, fallback)}, err
}

func invalid(err error) (Outcome, error) {
	return Outcome{Message: ValidationMessage(err)}, err
}

// fieldLabels name struct fields the way a form labels them.
var fieldLabels = map[string]string{
	"CandidateName":   "Candidate name",
	"DescriptionText": "Description",
	"ResumeID":        "Resume",
	"JobID":           "Job",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// ValidationMessage describes the first failing field of a validation error.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please check the form and try again."
	}
	fe := verrs[0]
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", name)
	case "email":
		return "Please enter a valid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", name, fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "oneof":
		return fmt.Sprintf("Invalid %s: %v. Choose one of %s.", strings.ToLower(name), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid.", name)
	}
}

// File pairs a picked file's name with its content. A nil content means no
// file was picked.
func File(name string, content io.Reader) *types.Upload {
	if content == nil {
		return nil
	}
	return &types.Upload{Name: name, Content: content}
}
