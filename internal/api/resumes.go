package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
)

// ListResumes fetches every candidate.
func (c *Client) ListResumes(ctx context.Context) ([]types.Candidate, error) {
	var out []types.Candidate
	if err := c.getJSON(ctx, "/resume/all", schemas.Candidate, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetResume fetches one candidate.
func (c *Client) GetResume(ctx context.Context, id int64) (*types.Candidate, error) {
	var out types.Candidate
	if err := c.getJSON(ctx, fmt.Sprintf("/resume/%d", id), schemas.Candidate, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAnalysis fetches the match analysis of a resume.
func (c *Client) GetAnalysis(ctx context.Context, id int64) (*types.Analysis, error) {
	var out types.Analysis
	if err := c.getJSON(ctx, fmt.Sprintf("/resume/%d/analysis", id), schemas.Analysis, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadResume streams the original resume file into w and returns the file
// name the backend suggested, if any.
func (c *Client) DownloadResume(ctx context.Context, id int64, w io.Writer) (string, error) {
	r := request{method: http.MethodGet, path: fmt.Sprintf("/resume/download/%d", id)}
	resp, err := c.roundTrip(ctx, r)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", &Error{Kind: KindTransport, Status: resp.StatusCode, Method: r.method, Path: r.path,
			Cause: fmt.Errorf("failed to download resume: %w", err)}
	}
	return attachmentName(resp.Header.Get("Content-Disposition")), nil
}

// attachmentName returns the base file name of a Content-Disposition header.
func attachmentName(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := path.Base(params["filename"])
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// UploadResume submits a resume file. JobID, when set, asks the backend to
// score the resume against that job.
func (c *Client) UploadResume(ctx context.Context, req types.UploadResumeRequest) (*types.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	form := multipartForm{
		fields:   [][2]string{{"candidateName", req.CandidateName}},
		fileName: req.File.Name,
		file:     req.File.Content,
	}
	if req.JobID != nil {
		form.fields = append(form.fields, [2]string{"jobId", strconv.FormatInt(*req.JobID, 10)})
	}

	r, err := form.encode(http.MethodPost, "/resume/upload")
	if err != nil {
		return nil, err
	}
	return c.candidateResponse(ctx, r)
}

// ScoreResume asks the backend to score a resume against a job.
func (c *Client) ScoreResume(ctx context.Context, req types.ScoreRequest) (*types.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r := request{
		method: http.MethodPost,
		path:   "/resume/score",
		query: url.Values{
			"resumeId": {strconv.FormatInt(req.ResumeID, 10)},
			"jobId":    {strconv.FormatInt(req.JobID, 10)},
		},
	}
	return c.candidateResponse(ctx, r)
}

// UpdateStatus moves a candidate to a new status and returns the updated record.
func (c *Client) UpdateStatus(ctx context.Context, req types.StatusUpdateRequest) (*types.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r := request{
		method: http.MethodPatch,
		path:   fmt.Sprintf("/resume/%d/status", req.ResumeID),
		query:  url.Values{"status": {req.Status}},
	}
	return c.candidateResponse(ctx, r)
}

// DeleteResume deletes a candidate.
func (c *Client) DeleteResume(ctx context.Context, id int64) error {
	_, err := c.send(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/resume/%d", id)})
	return err
}

// candidateResponse sends r and decodes a candidate from the body. An empty
// body is not an error; the caller re-fetches anyway.
func (c *Client) candidateResponse(ctx context.Context, r request) (*types.Candidate, error) {
	data, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var out types.Candidate
	if err := c.decode(r, data, schemas.Candidate, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
