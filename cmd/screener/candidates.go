package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/resume-screener/internal/forms"
	"github.com/jonathan/resume-screener/internal/listing"
	"github.com/jonathan/resume-screener/internal/session"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/spf13/cobra"
)

func listingAll() listing.CandidateQuery {
	return listing.CandidateQuery{Tab: listing.TabAll}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func newCandidatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "candidates",
		Aliases: []string{"candidate", "resumes"},
		Short:   "List, inspect and manage candidates",
	}
	cmd.AddCommand(
		newCandidatesListCmd(a),
		newCandidatesShowCmd(a),
		newCandidatesStatusCmd(a),
		newCandidatesDeleteCmd(a),
		newCandidatesDownloadCmd(a),
		newCandidatesUploadCmd(a),
	)
	return cmd
}

func newCandidatesListCmd(a *app) *cobra.Command {
	var q listing.CandidateQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List candidates, filtered by search text and status tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := q.Validate(); err != nil {
				return err
			}
			if err := a.enter(session.RouteCandidates); err != nil {
				return err
			}
			err := a.views.CandidateList(cmd.Context(), cmd.OutOrStdout(), q)
			return a.viewError(err, "Failed to load candidates")
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "Match name or email (case-insensitive)")
	cmd.Flags().StringVarP(&q.Tab, "tab", "t", listing.TabAll, "All, New, Reviewed, Contacted, Hired or Rejected")
	return cmd
}

func newCandidatesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one candidate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.enter(session.CandidatePath(id)); err != nil {
				return err
			}
			return a.render(cmd.Context(), cmd.OutOrStdout(), session.CandidatePath(id))
		},
	}
}

func newCandidatesStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a candidate to New, Reviewed, Contacted, Hired or Rejected",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.enter(session.CandidatePath(id)); err != nil {
				return err
			}
			out, err := forms.NewStatusFlow(a.deps()).Submit(cmd.Context(), id, args[1])
			return a.report(cmd, out, err)
		},
	}
}

func newCandidatesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a candidate after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.enter(session.CandidatePath(id)); err != nil {
				return err
			}
			out, err := forms.NewDeleteCandidateFlow(a.deps(), a.confirmer(cmd)).Submit(cmd.Context(), id)
			return a.report(cmd, out, err)
		},
	}
}

func newCandidatesDownloadCmd(a *app) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a candidate's original resume file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.enter(session.CandidatePath(id)); err != nil {
				return err
			}

			var buf bytes.Buffer
			name, err := a.client.DownloadResume(cmd.Context(), id, &buf)
			if err != nil {
				return a.viewError(err, "Failed to download resume")
			}
			if name == "" {
				name = fmt.Sprintf("resume-%d", id)
			}
			path := filepath.Join(outDir, name)
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", path, buf.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to save into")
	return cmd
}

func newCandidatesUploadCmd(a *app) *cobra.Command {
	var (
		name  string
		jobID int64
	)
	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload a resume, optionally scoring it against a job",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.enter(session.RouteDashboard); err != nil {
				return err
			}

			req := types.UploadResumeRequest{CandidateName: name}
			if jobID > 0 {
				req.JobID = &jobID
			}
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open resume: %w", err)
				}
				defer f.Close()
				req.File = forms.File(filepath.Base(args[0]), f)
			}

			out, err := forms.NewUploadCandidateFlow(a.deps()).Submit(cmd.Context(), req)
			return a.report(cmd, out, err)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Candidate name")
	cmd.Flags().Int64Var(&jobID, "job", 0, "Job to score the resume against")
	return cmd
}
