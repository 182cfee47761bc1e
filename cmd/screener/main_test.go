package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-screener/internal/config"
	"github.com/jonathan/resume-screener/internal/forms"
	"github.com/jonathan/resume-screener/internal/listing"
	"github.com/jonathan/resume-screener/internal/server/servertest"
	"github.com/jonathan/resume-screener/internal/session"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cli runs screener commands in process against one backend and token file.
type cli struct {
	t         *testing.T
	env       *servertest.Env
	tokenFile string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	for _, key := range []string{config.EnvAPIURL, config.EnvTokenFile, config.EnvTimeoutSeconds, config.EnvVerbose} {
		t.Setenv(key, "")
	}
	return &cli{
		t:         t,
		env:       servertest.New(t),
		tokenFile: filepath.Join(t.TempDir(), "token"),
	}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api-url", c.env.URL, "--token-file", c.tokenFile}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) signup() {
	c.t.Helper()
	out, err := c.run("", "signup", "--name", "Recruiter", "--email", "hr@example.com",
		"--password", "secret1", "--confirm", "secret1")
	require.NoError(c.t, err, out)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSignupLoginLogout(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("", "signup", "--name", "Recruiter", "--email", "hr@example.com",
		"--password", "secret1", "--confirm", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Login successful")
	assert.Contains(t, out, "Candidates: 0")
	assert.FileExists(t, c.tokenFile)

	out, err = c.run("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, err = c.run("", "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	out, err = c.run("secret1\n", "login", "--email", "hr@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Login successful")
}

func TestLoginInvalidCredentials(t *testing.T) {
	c := newCLI(t)
	c.signup()
	_, err := c.run("", "logout")
	require.NoError(t, err)

	out, err := c.run("", "login", "--email", "hr@example.com", "--password", "wrong")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Error: Invalid credentials")
	assert.NoFileExists(t, c.tokenFile)
}

func TestSignupPasswordMismatchFromStdin(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("secret1\nsecret2\n", "signup", "--name", "A", "--email", "a@example.com")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Passwords do not match")
	assert.Zero(t, c.env.Server.Users().Count())
}

func TestCandidateLifecycle(t *testing.T) {
	c := newCLI(t)
	c.signup()

	out, err := c.run("", "jobs", "create", "--title", "Backend Engineer", "-d", "Go, PostgreSQL, Kubernetes")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Job created successfully.")

	resume := writeFile(t, "ada.txt", "Ada Lovelace\nada@example.com\nGo and PostgreSQL engineer")
	out, err = c.run("", "candidates", "upload", resume, "--name", "Ada Lovelace", "--job", "1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Resume uploaded successfully. Match score:")

	out, err = c.run("", "candidates", "list", "--search", "ADA")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 Ada Lovelace [New]")

	out, err = c.run("", "candidates", "status", "1", "reviewed")
	require.NoError(t, err)
	assert.Contains(t, out, "Status updated to Reviewed.")

	out, err = c.run("", "candidates", "list", "--tab", "Reviewed")
	require.NoError(t, err)
	assert.Contains(t, out, "[Reviewed (1)]")

	out, err = c.run("", "candidates", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[Reviewed]")

	out, err = c.run("", "score", "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Resume scored:")
	assert.Contains(t, out, "Overall Score:")
	assert.Contains(t, out, "/jobs/1 (Backend Engineer)")

	dir := t.TempDir()
	out, err = c.run("", "candidates", "download", "1", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved")
	data, err := os.ReadFile(filepath.Join(dir, "ada.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ada Lovelace")

	out, err = c.run("n\n", "candidates", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete this candidate? [y/N]: ")
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, c.env.Server.Store().ListResumes(), 1)

	out, err = c.run("", "--yes", "candidates", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Candidate deleted.")
	assert.Contains(t, out, "No candidates found.")
	assert.Empty(t, c.env.Server.Store().ListResumes())
}

func TestUploadWithoutFile(t *testing.T) {
	c := newCLI(t)
	c.signup()

	out, err := c.run("", "candidates", "upload", "--name", "Ada")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Please select a file and enter a candidate name.")
}

func TestJobsCommands(t *testing.T) {
	c := newCLI(t)
	c.signup()

	desc := writeFile(t, "jd.txt", "Python, SQL and Airflow")
	out, err := c.run("", "jobs", "upload", desc, "--title", "Data Engineer")
	require.NoError(t, err, out)

	out, err = c.run("", "jobs", "list", "--search", "data")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 Data Engineer [")

	out, err = c.run("", "jobs", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Data Engineer")

	_, err = c.run("", "jobs", "show", "99")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "http")

	out, err = c.run("", "-y", "jobs", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Job deleted.")
	assert.Contains(t, out, "No jobs found.")
}

func TestOpenRoutes(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("", "open", "/jobs")
	require.NoError(t, err)
	assert.Contains(t, out, "Please log in first.")
	assert.Contains(t, out, "screener login")

	c.signup()
	out, err = c.run("", "open", "/no/such/page")
	require.NoError(t, err)
	assert.Contains(t, out, "screener login")

	out, err = c.run("", "open", "/jobs/")
	require.NoError(t, err)
	assert.Contains(t, out, "No jobs found.")
}

func TestInvalidID(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "match", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid id "abc"`)
}

func TestListRejectsUnknownTab(t *testing.T) {
	c := newCLI(t)

	// Not logged in: the tab is rejected before the session or backend is touched.
	_, err := c.run("", "candidates", "list", "--tab", "Archived")
	require.Error(t, err)
	assert.ErrorIs(t, err, listing.ErrUnknownTab)
	assert.NotContains(t, err.Error(), "not logged in")

	c.signup()
	_, err = c.run("", "jobs", "list", "--tab", "open")
	assert.ErrorIs(t, err, listing.ErrUnknownTab)

	out, err := c.run("", "candidates", "list", "--tab", "hired")
	require.NoError(t, err)
	assert.Contains(t, out, "[Hired (0)]")
}

func TestReportPrintsNavigationFailure(t *testing.T) {
	c := newCLI(t)
	c.signup()

	a := &app{flags: &rootFlags{apiURL: c.env.URL, tokenFile: c.tokenFile}}
	require.NoError(t, a.load())
	c.env.HTTP.Close()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	err := a.report(cmd, forms.Outcome{Message: "Job deleted.", Navigate: session.RouteJobs}, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Job deleted.")
	assert.Contains(t, out.String(), "Failed to load jobs")
}
