package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

func (s *Server) handleListJobs(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.ListJobs())
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	j, err := s.store.GetJob(id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, j)
}

func (s *Server) handleCreateJobManual(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	j := s.store.AddJob(newJob(req.Title, req.DescriptionText, s.now()))
	s.logger.Infow("Job created", "job_id", j.ID, "skills", len(j.Skills))
	s.jsonResponse(w, http.StatusOK, j)
}

func (s *Server) handleUploadJobFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		s.errorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	data, fileName, _, err := readFormFile(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	text := documentText(s.logger, fileName, data)
	if strings.TrimSpace(text) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Could not read text from "+fileName)
		return
	}

	j := s.store.AddJob(newJob(title, text, s.now()))
	s.logger.Infow("Job uploaded", "job_id", j.ID, "file", fileName)
	s.jsonResponse(w, http.StatusOK, j)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteJob(id); err != nil {
		s.storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
