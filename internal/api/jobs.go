package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
)

// ListJobs fetches every job.
func (c *Client) ListJobs(ctx context.Context) ([]types.Job, error) {
	var out []types.Job
	if err := c.getJSON(ctx, "/job/all", schemas.Job, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetJob fetches one job.
func (c *Client) GetJob(ctx context.Context, id int64) (*types.Job, error) {
	var out types.Job
	if err := c.getJSON(ctx, fmt.Sprintf("/job/%d", id), schemas.Job, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateJobManual creates a job from a title and pasted description text.
func (c *Client) CreateJobManual(ctx context.Context, req types.CreateJobRequest) (*types.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r, err := jsonRequest(http.MethodPost, "/job/createManual", req)
	if err != nil {
		return nil, err
	}
	return c.jobResponse(ctx, r)
}

// UploadJobFile creates a job from a description file.
func (c *Client) UploadJobFile(ctx context.Context, req types.UploadJobRequest) (*types.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	form := multipartForm{
		fields:   [][2]string{{"title", req.Title}},
		fileName: req.File.Name,
		file:     req.File.Content,
	}
	r, err := form.encode(http.MethodPost, "/job/uploadFile")
	if err != nil {
		return nil, err
	}
	return c.jobResponse(ctx, r)
}

// DeleteJob deletes a job.
func (c *Client) DeleteJob(ctx context.Context, id int64) error {
	_, err := c.send(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/job/%d", id)})
	return err
}

func (c *Client) jobResponse(ctx context.Context, r request) (*types.Job, error) {
	data, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var out types.Job
	if err := c.decode(r, data, schemas.Job, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
