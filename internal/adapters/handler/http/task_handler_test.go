package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskman/api/internal/core/domain"
	"github.com/taskman/api/internal/core/ports"
)

type fakeTaskService struct {
	created   *ports.CreateTaskInput
	createErr error
	getErr    error
	task      *domain.Task
}

func (s *fakeTaskService) List(context.Context, uuid.UUID) ([]*domain.Task, error) {
	return []*domain.Task{}, nil
}

func (s *fakeTaskService) Get(context.Context, string, uuid.UUID) (*domain.Task, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.task, nil
}

func (s *fakeTaskService) Create(_ context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &input
	return &domain.Task{ID: uuid.New(), UserID: input.UserID, Name: input.Name, Date: input.Date, Active: true}, nil
}

func (s *fakeTaskService) Update(context.Context, string, uuid.UUID, ports.UpdateTaskInput) (*domain.Task, error) {
	return s.task, nil
}

func (s *fakeTaskService) Delete(context.Context, string, uuid.UUID) error { return nil }

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	user := &domain.User{ID: uuid.New(), Role: domain.RoleUser}
	return req.WithContext(context.WithValue(req.Context(), userContextKey, user))
}

func TestCreateTaskHandlerParsesDates(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDate   bool
	}{
		{name: "no date", body: `{"name":"Buy milk"}`, wantStatus: http.StatusCreated},
		{name: "date only", body: `{"name":"Buy milk","date":"2031-01-02"}`, wantStatus: http.StatusCreated, wantDate: true},
		{name: "rfc3339", body: `{"name":"Buy milk","date":"2031-01-02T15:04:05Z"}`, wantStatus: http.StatusCreated, wantDate: true},
		{name: "garbage date", body: `{"name":"Buy milk","date":"next tuesday"}`, wantStatus: http.StatusBadRequest},
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeTaskService{}
			h := NewTaskHandler(svc)

			rec := httptest.NewRecorder()
			h.Create(rec, authedRequest("POST", "/api/v1/tasks", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDate {
				require.NotNil(t, svc.created)
				require.NotNil(t, svc.created.Date)
				assert.Equal(t, 2031, svc.created.Date.Year())
			}
		})
	}
}

func TestCreateTaskHandlerMapsServiceErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: domain.ErrNameRequired, wantStatus: http.StatusBadRequest},
		{err: domain.ErrDateInPast, wantStatus: http.StatusBadRequest},
		{err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &fakeTaskService{createErr: tt.err}
		h := NewTaskHandler(svc)

		rec := httptest.NewRecorder()
		h.Create(rec, authedRequest("POST", "/api/v1/tasks", `{"name":"x"}`))
		assert.Equal(t, tt.wantStatus, rec.Code)
	}
}

func TestGetTaskHandlerMasksForeignTasks(t *testing.T) {
	svc := &fakeTaskService{getErr: domain.ErrTaskNotFound}
	h := NewTaskHandler(svc)

	r := chi.NewRouter()
	r.Get("/api/v1/tasks/{taskId}", h.Get)

	req := authedRequest("GET", "/api/v1/tasks/"+uuid.NewString(), "")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.ErrTaskNotFound.Error())
}

func TestTaskHandlersRejectMissingIdentity(t *testing.T) {
	h := NewTaskHandler(&fakeTaskService{task: &domain.Task{}})

	endpoints := []func(http.ResponseWriter, *http.Request){h.List, h.Get, h.Create, h.Update, h.Delete}
	for _, endpoint := range endpoints {
		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest("GET", "/api/v1/tasks", strings.NewReader("{}")))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestParseDate(t *testing.T) {
	date, err := parseDate("")
	require.NoError(t, err)
	assert.Nil(t, date)

	date, err = parseDate("2031-06-15")
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, time.June, date.Month())

	_, err = parseDate("15/06/2031")
	assert.Error(t, err)
}
