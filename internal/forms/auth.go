package forms

import (
	"context"

	"github.com/jonathan/resume-screener/internal/api"
	"github.com/jonathan/resume-screener/internal/session"
	"github.com/jonathan/resume-screener/internal/types"
)

const (
	loginFallback  = "Invalid credentials or server error."
	signupFallback = "Signup failed. Please try again."
)

// LoginFlow submits the login form.
type LoginFlow struct {
	flow
}

// NewLoginFlow creates a login flow.
func NewLoginFlow(d Deps, opts ...Option) *LoginFlow {
	f := &LoginFlow{}
	f.init(d, opts)
	return f
}

// Submit logs in. On success the token is stored and the user is sent to the
// dashboard; on failure nothing is stored.
func (f *LoginFlow) Submit(ctx context.Context, req types.LoginRequest) (Outcome, error) {
	return f.run(ctx, func(ctx context.Context) (Outcome, error) {
		if err := req.Validate(); err != nil {
			return invalid(err)
		}
		return f.login(ctx, req)
	})
}

func (f *flow) login(ctx context.Context, req types.LoginRequest) (Outcome, error) {
	resp, err := f.Backend.Login(ctx, req)
	if err != nil {
		f.Logger.Debugw("Login rejected", "error", err)
		return Outcome{Message: api.UserMessage(err, loginFallback)}, err
	}
	if err := f.Session.Login(resp.Token); err != nil {
		f.Logger.Warnw("Failed to store session", "error", err)
		return Outcome{Message: "Logged in, but the session could not be saved."}, err
	}
	return f.succeed(ctx, Outcome{Navigate: session.RouteDashboard, Message: "Login successful"})
}

// SignupFlow submits the signup form.
type SignupFlow struct {
	flow
}

// NewSignupFlow creates a signup flow.
func NewSignupFlow(d Deps, opts ...Option) *SignupFlow {
	f := &SignupFlow{}
	f.init(d, opts)
	return f
}

// Submit checks the password confirmation, registers the account and logs in
// with the same credentials.
func (f *SignupFlow) Submit(ctx context.Context, req types.SignupRequest) (Outcome, error) {
	return f.run(ctx, func(ctx context.Context) (Outcome, error) {
		if err := req.Validate(); err != nil {
			return invalid(err)
		}
		if _, err := f.Backend.Signup(ctx, req); err != nil {
			return f.fail(err, signupFallback)
		}

		out, err := f.login(ctx, types.LoginRequest{Email: req.Email, Password: req.Password})
		if err != nil {
			return Outcome{Navigate: session.RouteLogin, Message: "Account created. Please log in."}, nil
		}
		return out, nil
	})
}

// Logout clears the session and returns the route to show.
func Logout(s *session.Session) (Outcome, error) {
	route, err := s.Logout()
	if err != nil {
		return Outcome{Navigate: session.RouteLogin, Message: "Logged out, but the saved session could not be removed."}, err
	}
	return Outcome{Navigate: route, Message: "Logged out."}, nil
}
