package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dunamismax/go-cli/store"
)

type enqueueJobRequest struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// enqueueJob puts a job on the queue for the worker process to pick
// up. The payload is passed through to the handler untouched.
func (s *Server) enqueueJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enqueueJobRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "job name is required")
			return
		}
		job, err := s.Store.EnqueueJob(req.Name, string(req.Payload))
		if err != nil {
			serverError(w, err)
			return
		}
		writeData(w, http.StatusAccepted, job)
	}
}

func (s *Server) getJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := s.Store.GetJob(chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "Job not found")
			return
		}
		if err != nil {
			serverError(w, err)
			return
		}
		writeData(w, http.StatusOK, job)
	}
}

func (s *Server) listJobs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, perPage := pageParams(r)
		jobs, total, err := s.Store.ListJobs(perPage, (page-1)*perPage)
		if err != nil {
			serverError(w, err)
			return
		}
		writePage(w, jobs, pageMeta(total, page, perPage))
	}
}
