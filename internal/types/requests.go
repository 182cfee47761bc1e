package types

import "io"

// Upload is a file picked by the user for a multipart submission.
type Upload struct {
	Name    string    `validate:"required"`
	Content io.Reader `validate:"required"`
}

// UploadResumeRequest is the multipart form of POST /resume/upload.
type UploadResumeRequest struct {
	CandidateName string  `validate:"required"`
	File          *Upload `validate:"required"`
	JobID         *int64  `validate:"omitempty,gt=0"`
}

// CreateJobRequest is the body of POST /job/createManual.
type CreateJobRequest struct {
	Title           string `json:"title" validate:"required"`
	DescriptionText string `json:"descriptionText" validate:"required"`
}

// UploadJobRequest is the multipart form of POST /job/uploadFile.
type UploadJobRequest struct {
	Title string  `validate:"required"`
	File  *Upload `validate:"required"`
}

// StatusUpdateRequest carries the status parameter of PATCH /resume/{id}/status.
type StatusUpdateRequest struct {
	ResumeID int64  `validate:"required,gt=0"`
	Status   string `validate:"required,oneof=New Reviewed Contacted Hired Rejected"`
}

// ScoreRequest carries the parameters of POST /resume/score.
type ScoreRequest struct {
	ResumeID int64 `validate:"required,gt=0"`
	JobID    int64 `validate:"required,gt=0"`
}

// Validate validates the UploadResumeRequest using the validator.
func (r *UploadResumeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UploadJobRequest using the validator.
func (r *UploadJobRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the StatusUpdateRequest using the validator.
func (r *StatusUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}
