package views

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/resume-screener/internal/api"
	"github.com/jonathan/resume-screener/internal/classify"
	"github.com/jonathan/resume-screener/internal/listing"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Source = (*api.Client)(nil)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	resumes   []types.Candidate
	jobs      []types.Job
	analysis  map[int64]*types.Analysis
	resumeErr error
	jobErr    error
	jobCalls  atomic.Int32
}

func (f *fakeSource) ListResumes(context.Context) ([]types.Candidate, error) {
	return f.resumes, f.resumeErr
}

func (f *fakeSource) GetResume(_ context.Context, id int64) (*types.Candidate, error) {
	for i := range f.resumes {
		if f.resumes[i].ID == id {
			return &f.resumes[i], nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404, Message: "Resume not found"}
}

func (f *fakeSource) GetAnalysis(_ context.Context, id int64) (*types.Analysis, error) {
	if a, ok := f.analysis[id]; ok {
		return a, nil
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404}
}

func (f *fakeSource) ListJobs(context.Context) ([]types.Job, error) {
	return f.jobs, f.jobErr
}

func (f *fakeSource) GetJob(_ context.Context, id int64) (*types.Job, error) {
	f.jobCalls.Add(1)
	if f.jobErr != nil {
		return nil, f.jobErr
	}
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			return &f.jobs[i], nil
		}
	}
	return nil, &api.Error{Kind: api.KindNotFound, Status: 404}
}

func score(v float64) *float64 { return &v }

func id(v int64) *int64 { return &v }

func daysAgo(d int) types.Timestamp {
	return types.NewTimestamp(now.AddDate(0, 0, -d))
}

func fixture() *fakeSource {
	return &fakeSource{
		resumes: []types.Candidate{
			{ID: 1, Name: "zoe Smith", Email: "zoe@example.com", Status: "Hired", MatchScore: score(81), UploadDate: daysAgo(3)},
			{ID: 2, Name: "Adam Jones", Email: "adam@corp.io", MatchScore: score(62), UploadDate: daysAgo(1)},
			{ID: 3, Name: "Mia Chen", Status: "bogus", MatchScore: score(20), UploadDate: daysAgo(2),
				Phone: "555-0100", Summary: "Data engineer", Education: "BSc",
				Skills:      types.SkillSet{{Name: "Go"}, {Name: "SQL"}},
				Experiences: []types.Experience{{ID: 1, Description: "Built pipelines; ; Led team"}}},
			{ID: 4, Name: "Ben Ode", UploadDate: daysAgo(10)},
		},
		jobs: []types.Job{
			{ID: 1, Title: "Backend Engineer", PostedAt: daysAgo(5),
				Requirements: types.TextList{Text: "and Python, SQL,, Java"}},
			{ID: 2, Title: "Analyst", UploadDate: daysAgo(45)},
			{ID: 3, Title: "Intern"},
		},
		analysis: map[int64]*types.Analysis{
			1: {ResumeID: 1, CandidateName: "zoe Smith", JobID: id(1), MatchScore: score(81),
				SkillsScore: score(90), ExperienceScore: score(55), EducationScore: score(40)},
			2: {ResumeID: 2, CandidateName: "Adam Jones", JobID: id(99), MatchScore: score(62)},
			4: {ResumeID: 4, CandidateName: "Ben Ode"},
		},
	}
}

func newRenderer(src Source) *Renderer {
	return New(src, WithClock(classify.FixedClock(now)))
}

func TestBuildDashboard(t *testing.T) {
	src := fixture()
	m := BuildDashboard(src.resumes, src.jobs, classify.At(now))

	assert.Equal(t, 4, m.Candidates)
	assert.Equal(t, []TierCount{
		{classify.TierHigh, 1}, {classify.TierMedium, 1}, {classify.TierLow, 1}, {classify.TierUnscored, 1},
	}, m.Tiers)
	assert.Equal(t, StatusCount{types.StatusNew, 3}, m.Statuses[0])
	assert.Equal(t, StatusCount{types.StatusHired, 1}, m.Statuses[3])
	assert.Equal(t, 3, m.Jobs)
	assert.Equal(t, 2, m.ActiveJobs, "jobs without a date count as just posted")

	require.Len(t, m.Recent, 4)
	assert.Equal(t, []int64{2, 3, 1, 4}, []int64{m.Recent[0].ID, m.Recent[1].ID, m.Recent[2].ID, m.Recent[3].ID})
	assert.Equal(t, int64(1), src.resumes[0].ID, "input order untouched")
}

func TestBuildDashboard_CapsRecent(t *testing.T) {
	var resumes []types.Candidate
	for i := int64(1); i <= 8; i++ {
		resumes = append(resumes, types.Candidate{ID: i, Name: "c"})
	}
	m := BuildDashboard(resumes, nil, classify.At(now))
	require.Len(t, m.Recent, 5)
	assert.Equal(t, int64(8), m.Recent[0].ID)
}

func TestDashboard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(fixture()).Dashboard(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "Candidates: 4")
	assert.Contains(t, out, "Jobs:       3 (2 active, 1 closed)")
	assert.Contains(t, out, "#2 Adam Jones")
	assert.Contains(t, out, "unscored   1")
}

func TestDashboard_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(&fakeSource{}).Dashboard(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No resumes uploaded yet.")
}

func TestDashboard_FetchError(t *testing.T) {
	src := fixture()
	src.jobErr = errors.New("connection refused")

	var buf bytes.Buffer
	err := newRenderer(src).Dashboard(context.Background(), &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load jobs")
	assert.Empty(t, buf.String())
}

func TestCandidateList(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer(fixture()).CandidateList(context.Background(), &buf, listing.CandidateQuery{Tab: "New"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "All (4)")
	assert.Contains(t, out, "[New (3)]")
	assert.Contains(t, out, "Candidates (3)")
	assert.NotContains(t, out, "zoe Smith")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Adam Jones")), bytes.Index(buf.Bytes(), []byte("Ben Ode")))
	assert.Contains(t, out, "#3 Mia Chen [New] 20%")
	assert.Contains(t, out, "#4 Ben Ode [New] —")
}

func TestCandidateList_NoResults(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer(fixture()).CandidateList(context.Background(), &buf, listing.CandidateQuery{Search: "nobody"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No candidates found.")
}

func TestCandidateDetail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(fixture()).CandidateDetail(context.Background(), &buf, 3))

	out := buf.String()
	assert.Contains(t, out, "[New]  Reviewed")
	assert.Contains(t, out, "Match:     20% (low)")
	assert.Contains(t, out, "• Built pipelines")
	assert.Contains(t, out, "• Led team")
	assert.Contains(t, out, "Go, SQL")
	assert.Contains(t, out, "Uploaded:  May 30, 2024")
}

func TestCandidateDetail_NotFound(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer(fixture()).CandidateDetail(context.Background(), &buf, 42)
	assert.True(t, api.IsNotFound(err))
}

func TestJobList(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer(fixture()).JobList(context.Background(), &buf, listing.JobQuery{Tab: listing.TabActive})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[active (2)]")
	assert.Contains(t, out, "closed (1)")
	assert.Contains(t, out, "#1 Backend Engineer [Active] posted May 27, 2024")
	assert.Contains(t, out, "#3 Intern [Active] posted Jun 1, 2024")
	assert.NotContains(t, out, "Analyst")
}

func TestJobDetail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(fixture()).JobDetail(context.Background(), &buf, 1))

	out := buf.String()
	assert.Contains(t, out, "• Python")
	assert.Contains(t, out, "• Sql")
	assert.Contains(t, out, "• Java")
	assert.Contains(t, out, "Status:    Active")

	buf.Reset()
	require.NoError(t, newRenderer(fixture()).JobDetail(context.Background(), &buf, 2))
	assert.Contains(t, buf.String(), "Status:    Closed")
}

func TestLoadMatch(t *testing.T) {
	r := newRenderer(fixture())

	m, err := r.LoadMatch(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, m.Job)
	assert.Equal(t, "Backend Engineer", m.Job.Title)
	assert.Empty(t, m.JobNote)

	m, err = r.LoadMatch(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, m.Job)
	assert.Equal(t, JobGoneNote, m.JobNote)

	_, err = r.LoadMatch(context.Background(), 9)
	assert.True(t, api.IsNotFound(err))
}

func TestLoadMatch_JobFailure(t *testing.T) {
	src := fixture()
	src.jobErr = errors.New("boom")
	m, err := newRenderer(src).LoadMatch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, JobFailedNote, m.JobNote)
}

func TestLoadMatch_NoJobSkipsFetch(t *testing.T) {
	src := fixture()
	_, err := newRenderer(src).LoadMatch(context.Background(), 4)
	require.NoError(t, err)
	assert.Zero(t, src.jobCalls.Load())
}

func TestMatchAnalysis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(fixture()).MatchAnalysis(context.Background(), &buf, 1))

	out := buf.String()
	assert.Contains(t, out, "Overall Score: 81% (high)")
	assert.Contains(t, out, "90% high")
	assert.Contains(t, out, "55% medium")
	assert.Contains(t, out, "40% low")
	assert.Contains(t, out, "/jobs/1 (Backend Engineer)")
	assert.Contains(t, out, "• Python")
}

func TestMatchAnalysis_Unscored(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(fixture()).MatchAnalysis(context.Background(), &buf, 4))
	assert.Contains(t, buf.String(), "has not been scored")
	assert.NotContains(t, buf.String(), "Breakdown")
}
