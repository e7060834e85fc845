package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taskman/api/internal/core/domain"
	"github.com/taskman/api/internal/core/ports"
)

type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{
		service: service,
	}
}

type createTaskRequest struct {
	Name     string `json:"name"`
	Date     string `json:"date,omitempty"`
	Priority string `json:"priority,omitempty"`
	Note     string `json:"note,omitempty"`
}

type updateTaskRequest struct {
	Name     *string `json:"name,omitempty"`
	Date     *string `json:"date,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Note     *string `json:"note,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "you are not logged in, please log in to get access")
		return
	}

	tasks, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch tasks")
		return
	}
	respondList(w, http.StatusOK, len(tasks), tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "you are not logged in, please log in to get access")
		return
	}

	task, err := h.service.Get(r.Context(), chi.URLParam(r, "taskId"), user.ID)
	if err != nil {
		h.respondTaskError(w, err)
		return
	}
	respondData(w, http.StatusOK, task)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "you are not logged in, please log in to get access")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date format")
		return
	}

	task, err := h.service.Create(r.Context(), ports.CreateTaskInput{
		UserID:   user.ID,
		Name:     req.Name,
		Date:     date,
		Priority: req.Priority,
		Note:     req.Note,
	})
	if err != nil {
		h.respondTaskError(w, err)
		return
	}
	respondData(w, http.StatusCreated, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "you are not logged in, please log in to get access")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.UpdateTaskInput{
		Name:     req.Name,
		Priority: req.Priority,
		Note:     req.Note,
		Active:   req.Active,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil || date == nil {
			respondError(w, http.StatusBadRequest, "invalid date format")
			return
		}
		input.Date = date
	}

	task, err := h.service.Update(r.Context(), chi.URLParam(r, "taskId"), user.ID, input)
	if err != nil {
		h.respondTaskError(w, err)
		return
	}
	respondData(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "you are not logged in, please log in to get access")
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "taskId"), user.ID); err != nil {
		h.respondTaskError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) respondTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidTaskID),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrDateInPast):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTaskNotFound):
		// Covers both unknown ids and tasks owned by someone else; the
		// two are indistinguishable on purpose.
		respondError(w, http.StatusNotFound, domain.ErrTaskNotFound.Error())
	default:
		respondError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
	}
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
