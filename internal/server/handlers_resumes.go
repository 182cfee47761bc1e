package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// maxUploadBytes caps multipart uploads.
const maxUploadBytes = 10 << 20

func (s *Server) handleListResumes(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.ListResumes())
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := s.store.GetResume(id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, c)
}

// handleResumeView serves GET /resume/{id}/{view}; only the analysis view
// exists.
func (s *Server) handleResumeView(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("view") != "analysis" {
		s.errorResponse(w, http.StatusNotFound, "Not found")
		return
	}
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := s.store.GetResume(id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.Analysis{
		ResumeID:        c.ID,
		CandidateName:   c.Name,
		FileName:        c.FileName,
		JobID:           c.JobID,
		MatchScore:      c.MatchScore,
		SkillsScore:     c.SkillsScore,
		ExperienceScore: c.ExperienceScore,
		EducationScore:  c.EducationScore,
	})
}

func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	c, file, contentType, err := s.store.ResumeFile(id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	name := c.FileName
	if name == "" {
		name = fmt.Sprintf("resume-%d", c.ID)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file)
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	name := strings.TrimSpace(r.FormValue("candidateName"))
	if name == "" {
		s.errorResponse(w, http.StatusBadRequest, "candidateName is required")
		return
	}

	var job *types.Job
	if raw := strings.TrimSpace(r.FormValue("jobId")); raw != "" {
		jobID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || jobID <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid jobId: "+raw)
			return
		}
		j, err := s.store.GetJob(jobID)
		if err != nil {
			s.storeError(w, err)
			return
		}
		job = &j
	}

	data, fileName, contentType, err := readFormFile(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	text := documentText(s.logger, fileName, data)
	c := parseResume(name, fileName, text, s.store.Vocabulary(), s.now())
	if job != nil {
		score(text, *job).apply(&c, job.ID)
	}
	c = s.store.AddResume(c, data, contentType, text)

	s.logger.Infow("Resume uploaded", "resume_id", c.ID, "file", fileName, "bytes", len(data))
	s.jsonResponse(w, http.StatusOK, c)
}

func (s *Server) handleScoreResume(w http.ResponseWriter, r *http.Request) {
	req, err := parseScoreRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.store.GetJob(req.JobID)
	if err != nil {
		s.storeError(w, err)
		return
	}
	text, err := s.store.ResumeText(req.ResumeID)
	if err != nil {
		s.storeError(w, err)
		return
	}

	sc := score(text, job)
	c, err := s.store.UpdateResume(req.ResumeID, func(c *types.Candidate) {
		sc.apply(c, job.ID)
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.logger.Infow("Resume scored", "resume_id", c.ID, "job_id", job.ID, "match", sc.match)
	s.jsonResponse(w, http.StatusOK, c)
}

func parseScoreRequest(r *http.Request) (types.ScoreRequest, error) {
	var req types.ScoreRequest
	q := r.URL.Query()
	var err error
	if req.ResumeID, err = strconv.ParseInt(q.Get("resumeId"), 10, 64); err != nil {
		return req, fmt.Errorf("invalid resumeId: %q", q.Get("resumeId"))
	}
	if req.JobID, err = strconv.ParseInt(q.Get("jobId"), 10, 64); err != nil {
		return req, fmt.Errorf("invalid jobId: %q", q.Get("jobId"))
	}
	if err := req.Validate(); err != nil {
		return req, errors.New(extractValidationErrors(err))
	}
	return req, nil
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	req := types.StatusUpdateRequest{ResumeID: id, Status: r.URL.Query().Get("status")}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid status: "+req.Status)
		return
	}

	c, err := s.store.UpdateResume(id, func(c *types.Candidate) {
		c.Status = types.CandidateStatus(req.Status)
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, c)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteResume(id); err != nil {
		s.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readFormFile reads the "file" part of a parsed multipart form.
func readFormFile(r *http.Request) ([]byte, string, string, error) {
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", errors.New("file is required")
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, "", "", errors.New("file is empty")
	}
	return data, hdr.Filename, hdr.Header.Get("Content-Type"), nil
}

