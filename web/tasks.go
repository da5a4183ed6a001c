package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/store"
)

const maxTaskTitleLength = 200

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

func (s *Server) createTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTaskRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		if err := validateTaskTitle(req.Title); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Priority != "" && !models.ValidTaskPriority(req.Priority) {
			writeError(w, http.StatusBadRequest, "priority must be one of low, medium, high")
			return
		}
		task := &models.Task{
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			Completed:   req.Completed,
		}
		if err := s.Store.CreateTask(task); err != nil {
			serverError(w, err)
			return
		}
		writeData(w, http.StatusCreated, task)
	}
}

func (s *Server) listTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, perPage := pageParams(r)
		filter := store.TaskFilter{Limit: perPage, Offset: (page - 1) * perPage}

		if raw := r.URL.Query().Get("completed"); raw != "" {
			completed, err := strconv.ParseBool(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "completed must be true or false")
				return
			}
			filter.Completed = &completed
		}
		if priority := r.URL.Query().Get("priority"); priority != "" {
			if !models.ValidTaskPriority(priority) {
				writeError(w, http.StatusBadRequest, "priority must be one of low, medium, high")
				return
			}
			filter.Priority = priority
		}

		tasks, total, err := s.Store.ListTasks(filter)
		if err != nil {
			serverError(w, err)
			return
		}
		writePage(w, tasks, pageMeta(total, page, perPage))
	}
}

func (s *Server) getTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		task, err := s.Store.GetTask(id)
		if errors.Is(err, store.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			serverError(w, err)
			return
		}
		writeData(w, http.StatusOK, task)
	}
}

func (s *Server) updateTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req updateTaskRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Title != nil {
			trimmed := strings.TrimSpace(*req.Title)
			if err := validateTaskTitle(trimmed); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			req.Title = &trimmed
		}
		if req.Priority != nil && !models.ValidTaskPriority(*req.Priority) {
			writeError(w, http.StatusBadRequest, "priority must be one of low, medium, high")
			return
		}
		task, err := s.Store.UpdateTask(id, store.TaskUpdate{
			Title:       req.Title,
			Description: req.Description,
			Priority:    req.Priority,
			Completed:   req.Completed,
		})
		if errors.Is(err, store.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			serverError(w, err)
			return
		}
		writeData(w, http.StatusOK, task)
	}
}

func (s *Server) deleteTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		err := s.Store.DeleteTask(id)
		if errors.Is(err, store.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			serverError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "Task deleted successfully")
	}
}

func (s *Server) completeTask() http.HandlerFunc {
	return s.setTaskCompleted(true)
}

func (s *Server) uncompleteTask() http.HandlerFunc {
	return s.setTaskCompleted(false)
}

func (s *Server) setTaskCompleted(completed bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		task, err := s.Store.UpdateTask(id, store.TaskUpdate{Completed: &completed})
		if errors.Is(err, store.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		if err != nil {
			serverError(w, err)
			return
		}
		writeData(w, http.StatusOK, task)
	}
}

func validateTaskTitle(title string) error {
	if title == "" {
		return errors.New("title is required")
	}
	if len(title) > maxTaskTitleLength {
		return fmt.Errorf("title must be at most %d characters", maxTaskTitleLength)
	}
	return nil
}
