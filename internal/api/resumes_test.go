package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestUploadResume_Multipart(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resume/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Ada Lovelace", r.FormValue("candidateName"))
		assert.Equal(t, "3", r.FormValue("jobId"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "ada.pdf", hdr.Filename)
		assert.Equal(t, "%PDF-1.4", string(data))

		writeJSON(w, http.StatusOK, map[string]any{"id": 9, "candidateName": "Ada Lovelace", "jobId": 3})
	}, "tok")

	cand, err := c.UploadResume(context.Background(), types.UploadResumeRequest{
		CandidateName: "Ada Lovelace",
		File:          &types.Upload{Name: "ada.pdf", Content: strings.NewReader("%PDF-1.4")},
		JobID:         int64Ptr(3),
	})
	require.NoError(t, err)
	require.NotNil(t, cand)
	assert.Equal(t, int64(9), cand.ID)
}

func TestUploadResume_OmitsJobID(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, present := r.MultipartForm.Value["jobId"]
		assert.False(t, present)
		w.WriteHeader(http.StatusOK)
	}, "tok")

	cand, err := c.UploadResume(context.Background(), types.UploadResumeRequest{
		CandidateName: "Ada",
		File:          &types.Upload{Name: "ada.pdf", Content: strings.NewReader("x")},
	})
	require.NoError(t, err)
	assert.Nil(t, cand)
}

func TestUploadResume_NoFileMakesNoRequest(t *testing.T) {
	c, _, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}, "tok")

	_, err := c.UploadResume(context.Background(), types.UploadResumeRequest{CandidateName: "Ada"})
	assert.Error(t, err)
	assert.Equal(t, int32(0), *calls)
}

func TestScoreResume_QueryParams(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/resume/score", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("resumeId"))
		assert.Equal(t, "2", r.URL.Query().Get("jobId"))
		writeJSON(w, http.StatusOK, map[string]any{"id": 4, "candidateName": "Ada", "matchScore": 66})
	}, "tok")

	cand, err := c.ScoreResume(context.Background(), types.ScoreRequest{ResumeID: 4, JobID: 2})
	require.NoError(t, err)
	require.NotNil(t, cand.MatchScore)
	assert.InDelta(t, 66, *cand.MatchScore, 0.001)
}

func TestUpdateStatus(t *testing.T) {
	c, _, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/resume/5/status", r.URL.Path)
		assert.Equal(t, "Hired", r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, map[string]any{"id": 5, "candidateName": "Ada", "status": "Hired"})
	}, "tok")

	cand, err := c.UpdateStatus(context.Background(), types.StatusUpdateRequest{ResumeID: 5, Status: "Hired"})
	require.NoError(t, err)
	assert.Equal(t, types.StatusHired, cand.Status)

	_, err = c.UpdateStatus(context.Background(), types.StatusUpdateRequest{ResumeID: 5, Status: "Promoted"})
	assert.Error(t, err)
	assert.Equal(t, int32(1), *calls)
}

func TestDeleteResume(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/resume/12", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	assert.NoError(t, c.DeleteResume(context.Background(), 12))
}

func TestGetAnalysis(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resume/3/analysis", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":3,"candidateName":"Ada","jobId":8,"matchScore":77,"skillsScore":80,"experienceScore":null,"educationScore":60}`)
	}, "tok")

	a, err := c.GetAnalysis(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, a.JobID)
	assert.Equal(t, int64(8), *a.JobID)
	assert.Nil(t, a.ExperienceScore)
}

func TestDownloadResume(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resume/download/3", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="../ada.pdf"`)
		_, _ = io.WriteString(w, "file-bytes")
	}, "tok")

	var buf bytes.Buffer
	name, err := c.DownloadResume(context.Background(), 3, &buf)
	require.NoError(t, err)
	assert.Equal(t, "ada.pdf", name)
	assert.Equal(t, "file-bytes", buf.String())
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "", attachmentName(""))
	assert.Equal(t, "", attachmentName("attachment"))
	assert.Equal(t, "cv.docx", attachmentName(`attachment; filename="cv.docx"`))
	assert.Equal(t, "", attachmentName(";;;"))
}
