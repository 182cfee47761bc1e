package main

import (
	"github.com/jonathan/resume-screener/internal/forms"
	"github.com/jonathan/resume-screener/internal/session"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/spf13/cobra"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show candidate and job totals and recent uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.enter(session.RouteDashboard); err != nil {
				return err
			}
			return a.render(cmd.Context(), cmd.OutOrStdout(), session.RouteDashboard)
		},
	}
}

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match <resumeId>",
		Short: "Show the match analysis of a resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.enter(session.MatchPath(id)); err != nil {
				return err
			}
			return a.render(cmd.Context(), cmd.OutOrStdout(), session.MatchPath(id))
		},
	}
}

func newScoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "score <resumeId> <jobId>",
		Short: "Score a resume against a job and show the analysis",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resumeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			jobID, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := a.enter(session.MatchPath(resumeID)); err != nil {
				return err
			}
			req := types.ScoreRequest{ResumeID: resumeID, JobID: jobID}
			out, err := forms.NewScoreFlow(a.deps()).Submit(cmd.Context(), req)
			return a.report(cmd, out, err)
		},
	}
}

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <route>",
		Short: "Render a route such as /jobs/3 or /resume/7/match",
		Long:  "Render the view behind a route path. Protected routes require a session; unknown paths show the login route.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			return a.render(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}
