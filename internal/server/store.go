package server

import (
	"sort"
	"sync"

	"github.com/jonathan/resume-screener/internal/types"
)

type resumeRecord struct {
	candidate   types.Candidate
	file        []byte
	contentType string
	text        string
}

// Store keeps resumes and jobs in memory. Every accessor returns copies.
type Store struct {
	mu         sync.RWMutex
	nextResume int64
	nextJob    int64
	resumes    map[int64]*resumeRecord
	jobs       map[int64]*types.Job
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		resumes: make(map[int64]*resumeRecord),
		jobs:    make(map[int64]*types.Job),
	}
}

// AddResume assigns an ID to c and stores it with its file.
func (s *Store) AddResume(c types.Candidate, file []byte, contentType, text string) types.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextResume++
	c.ID = s.nextResume
	s.resumes[c.ID] = &resumeRecord{candidate: c, file: file, contentType: contentType, text: text}
	return c
}

// ListResumes returns every candidate ordered by ID.
func (s *Store) ListResumes() []types.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Candidate, 0, len(s.resumes))
	for _, rec := range s.resumes {
		out = append(out, rec.candidate)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetResume returns one candidate.
func (s *Store) GetResume(id int64) (types.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.resumes[id]
	if !ok {
		return types.Candidate{}, &ErrNotFound{Entity: "Resume", ID: id}
	}
	return rec.candidate, nil
}

// ResumeFile returns the uploaded file of a resume.
func (s *Store) ResumeFile(id int64) (types.Candidate, []byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.resumes[id]
	if !ok {
		return types.Candidate{}, nil, "", &ErrNotFound{Entity: "Resume", ID: id}
	}
	return rec.candidate, append([]byte(nil), rec.file...), rec.contentType, nil
}

// ResumeText returns the text extracted from a resume.
func (s *Store) ResumeText(id int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.resumes[id]
	if !ok {
		return "", &ErrNotFound{Entity: "Resume", ID: id}
	}
	return rec.text, nil
}

// UpdateResume applies fn to a stored candidate and returns the result.
func (s *Store) UpdateResume(id int64, fn func(*types.Candidate)) (types.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.resumes[id]
	if !ok {
		return types.Candidate{}, &ErrNotFound{Entity: "Resume", ID: id}
	}
	fn(&rec.candidate)
	return rec.candidate, nil
}

// DeleteResume removes a resume.
func (s *Store) DeleteResume(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resumes[id]; !ok {
		return &ErrNotFound{Entity: "Resume", ID: id}
	}
	delete(s.resumes, id)
	return nil
}

// AddJob assigns an ID to j and stores it.
func (s *Store) AddJob(j types.Job) types.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextJob++
	j.ID = s.nextJob
	stored := j
	s.jobs[j.ID] = &stored
	return j
}

// ListJobs returns every job ordered by ID.
func (s *Store) ListJobs() []types.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, *j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

// GetJob returns one job.
func (s *Store) GetJob(id int64) (types.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return types.Job{}, &ErrNotFound{Entity: "Job", ID: id}
	}
	return *j, nil
}

// DeleteJob removes a job. Resumes scored against it keep their scores and
// job reference.
func (s *Store) DeleteJob(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return &ErrNotFound{Entity: "Job", ID: id}
	}
	delete(s.jobs, id)
	return nil
}

// Vocabulary returns the distinct skill names of every stored job.
func (s *Store) Vocabulary() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, j := range s.jobs {
		for _, name := range j.Skills.Names() {
			key := normalizeTerm(name)
			if !seen[key] {
				seen[key] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}
