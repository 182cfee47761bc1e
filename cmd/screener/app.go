package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jonathan/resume-screener/internal/api"
	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/forms"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/jonathan/resume-screener/internal/session"
	"github.com/jonathan/resume-screener/internal/views"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errReported marks a failure whose message has already been printed.
var errReported = errors.New("reported")

// rootFlags are the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	apiURL     string
	tokenFile  string
	verbose    bool
	yes        bool
}

// app is everything a command needs, built once per invocation.
type app struct {
	flags   *rootFlags
	cfg     config.Config
	logger  *zap.SugaredLogger
	session *session.Session
	client  *api.Client
	views   *views.Renderer
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	a := &app{flags: flags}

	root := &cobra.Command{
		Use:           "screener",
		Short:         "Resume screening client",
		Long:          "screener signs in to a resume-screening backend, lists and filters candidates and jobs, uploads resumes and job descriptions, and shows match analyses.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a JSON config file")
	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Backend base URL (overrides config and "+config.EnvAPIURL+")")
	root.PersistentFlags().StringVar(&flags.tokenFile, "token-file", "", "Where the session token is stored")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVarP(&flags.yes, "yes", "y", false, "Answer yes to confirmation prompts")

	root.AddCommand(
		newLoginCmd(a),
		newSignupCmd(a),
		newLogoutCmd(a),
		newDashboardCmd(a),
		newCandidatesCmd(a),
		newJobsCmd(a),
		newMatchCmd(a),
		newScoreCmd(a),
		newOpenCmd(a),
		newServeDevCmd(),
	)
	return root
}

// load resolves configuration and builds the session, client and renderer.
func (a *app) load() error {
	if a.client != nil {
		return nil
	}
	cfg, err := config.Resolve(a.flags.configPath)
	if err != nil {
		return err
	}
	if a.flags.apiURL != "" {
		cfg.APIURL = a.flags.apiURL
	}
	if a.flags.tokenFile != "" {
		cfg.TokenFile = a.flags.tokenFile
	}
	cfg.Verbose = cfg.Verbose || a.flags.verbose
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.TokenFile == "" {
		path, err := session.DefaultTokenPath()
		if err != nil {
			return err
		}
		cfg.TokenFile = path
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	a.logger = logger

	sess, err := session.New(session.NewFileStore(cfg.TokenFile))
	if err != nil {
		return err
	}
	a.session = sess

	client, err := api.New(cfg.APIURL, sess, api.WithTimeout(cfg.Timeout()), api.WithLogger(logger))
	if err != nil {
		return err
	}
	a.client = client
	a.views = views.New(client, views.WithClock(sess.Clock()), views.WithLogger(logger))

	logger.Debugw("Client ready", "api_url", cfg.APIURL, "token_file", cfg.TokenFile)
	return nil
}

func (a *app) deps() forms.Deps {
	return forms.Deps{Backend: a.client, Session: a.session, Logger: a.logger}
}

func (a *app) confirmer(cmd *cobra.Command) forms.Confirmer {
	if a.flags.yes {
		return forms.AlwaysConfirm
	}
	return forms.PromptConfirmer{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
}

// enter loads the app and passes the guard for path. Without a session the
// user is told to log in.
func (a *app) enter(path string) error {
	if err := a.load(); err != nil {
		return err
	}
	if _, redirected := session.NewGuard(a.session).Enter(path); redirected {
		return errors.New("not logged in: run 'screener login' first")
	}
	return nil
}

// report prints a flow outcome and follows its navigation.
func (a *app) report(cmd *cobra.Command, out forms.Outcome, err error) error {
	w := cmd.OutOrStdout()
	if out.Cancelled {
		fmt.Fprintln(w, "Cancelled.")
		return nil
	}
	if out.Message != "" {
		fmt.Fprintln(w, out.Message)
	}
	if out.Navigate != "" {
		if navErr := a.render(cmd.Context(), w, out.Navigate); navErr != nil {
			a.logger.Debugw("Navigation failed", "route", out.Navigate, "error", navErr)
			fmt.Fprintln(w, navErr)
		}
	}
	if err != nil {
		return errReported
	}
	return nil
}

// viewError turns a view failure into the message shown to the user.
func (a *app) viewError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	a.logger.Debugw("View failed", "error", err)
	msg := api.UserMessage(err, fallback)
	if errors.Is(err, api.ErrSessionExpired) {
		msg += " Run 'screener login'."
	}
	return errors.New(msg)
}

// render shows the view of path, applying the guard first.
func (a *app) render(ctx context.Context, w io.Writer, path string) error {
	route, redirected := session.NewGuard(a.session).Enter(path)
	if redirected {
		fmt.Fprintln(w, "Please log in first.")
	}

	switch route.Pattern {
	case session.RouteLogin:
		observability.NewPrinter(w).PrintNotice("Log in with: screener login --email <email>")
		return nil
	case session.RouteSignup:
		observability.NewPrinter(w).PrintNotice("Sign up with: screener signup --name <name> --email <email>")
		return nil
	case session.RouteDashboard:
		return a.viewError(a.views.Dashboard(ctx, w), "Failed to load dashboard")
	case session.RouteCandidates:
		return a.viewError(a.views.CandidateList(ctx, w, listingAll()), "Failed to load candidates")
	case session.RouteCandidate:
		return a.viewError(a.views.CandidateDetail(ctx, w, route.ID("id")), "Failed to load candidate")
	case session.RouteJobs:
		return a.viewError(a.views.JobList(ctx, w, jobsAll()), "Failed to load jobs")
	case session.RouteJob:
		return a.viewError(a.views.JobDetail(ctx, w, route.ID("id")), "Failed to load job")
	case session.RouteMatch:
		return a.viewError(a.views.MatchAnalysis(ctx, w, route.ID("resumeId")), "Failed to load resume analysis")
	default:
		return fmt.Errorf("no view for route %s", route.Pattern)
	}
}
