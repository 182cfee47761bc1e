package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-screener/internal/forms"
	"github.com/jonathan/resume-screener/internal/listing"
	"github.com/jonathan/resume-screener/internal/session"
	"github.com/spf13/cobra"
)

func jobsAll() listing.JobQuery {
	return listing.JobQuery{Tab: listing.TabAll}
}

func newJobsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "List, inspect and manage job descriptions",
	}
	cmd.AddCommand(
		newJobsListCmd(a),
		newJobsShowCmd(a),
		newJobsCreateCmd(a),
		newJobsUploadCmd(a),
		newJobsDeleteCmd(a),
	)
	return cmd
}

func newJobsListCmd(a *app) *cobra.Command {
	var q listing.JobQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, filtered by title and active/closed tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := q.Validate(); err != nil {
				return err
			}
			if err := a.enter(session.RouteJobs); err != nil {
				return err
			}
			err := a.views.JobList(cmd.Context(), cmd.OutOrStdout(), q)
			return a.viewError(err, "Failed to load jobs")
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "Match title (case-insensitive)")
	cmd.Flags().StringVarP(&q.Tab, "tab", "t", listing.TabAll, "All, active or closed")
	return cmd
}

func newJobsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.enter(session.JobPath(id)); err != nil {
				return err
			}
			return a.render(cmd.Context(), cmd.OutOrStdout(), session.JobPath(id))
		},
	}
}

func newJobsCreateCmd(a *app) *cobra.Command {
	form := forms.JobForm{Mode: forms.JobManual}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a job from a title and pasted description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.enter(session.RouteJobs); err != nil {
				return err
			}
			out, err := forms.NewCreateJobFlow(a.deps()).Submit(cmd.Context(), form)
			return a.report(cmd, out, err)
		},
	}
	cmd.Flags().StringVar(&form.Title, "title", "", "Job title")
	cmd.Flags().StringVarP(&form.Description, "description", "d", "", "Job description text")
	return cmd
}

func newJobsUploadCmd(a *app) *cobra.Command {
	form := forms.JobForm{Mode: forms.JobFile}
	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Create a job from a description file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.enter(session.RouteJobs); err != nil {
				return err
			}
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open job description: %w", err)
				}
				defer f.Close()
				form.File = forms.File(filepath.Base(args[0]), f)
			}
			out, err := forms.NewCreateJobFlow(a.deps()).Submit(cmd.Context(), form)
			return a.report(cmd, out, err)
		},
	}
	cmd.Flags().StringVar(&form.Title, "title", "", "Job title")
	return cmd
}

func newJobsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a job after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.enter(session.JobPath(id)); err != nil {
				return err
			}
			out, err := forms.NewDeleteJobFlow(a.deps(), a.confirmer(cmd)).Submit(cmd.Context(), id)
			return a.report(cmd, out, err)
		},
	}
}
