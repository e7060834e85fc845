package integration

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskPayload struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Active bool      `json:"active"`
	Note   string    `json:"note"`
}

func decodeTask(t *testing.T, raw json.RawMessage) taskPayload {
	t.Helper()
	var task taskPayload
	require.NoError(t, json.Unmarshal(raw, &task))
	return task
}

// TestTaskFlow covers the basic lifecycle: Create -> Get -> Update -> Delete.
func TestTaskFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	userID, token := app.signupUser(t, "a@x.com", "pw1234")

	// Create
	resp, parsed := app.doJSON(t, "POST", "/api/v1/tasks", token, map[string]string{
		"name": "Buy milk",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeTask(t, parsed.Data)
	assert.Equal(t, userID, created.UserID, "task is owned by its creator")
	assert.True(t, created.Active)

	// Get
	resp, parsed = app.doJSON(t, "GET", "/api/v1/tasks/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, decodeTask(t, parsed.Data).ID)

	// Partial update: note changes, name stays.
	resp, parsed = app.doJSON(t, "PATCH", "/api/v1/tasks/"+created.ID.String(), token, map[string]any{
		"note":   "semi-skimmed",
		"active": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeTask(t, parsed.Data)
	assert.Equal(t, "Buy milk", updated.Name)
	assert.Equal(t, "semi-skimmed", updated.Note)
	assert.False(t, updated.Active)
	assert.Equal(t, userID, updated.UserID)

	// Delete
	resp, _ = app.doJSON(t, "DELETE", "/api/v1/tasks/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Second delete reports not found.
	resp, _ = app.doJSON(t, "DELETE", "/api/v1/tasks/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTaskOwnershipIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, tokenA := app.signupUser(t, "a@x.com", "pw1234")
	_, tokenB := app.signupUser(t, "b@x.com", "pw1234")

	resp, parsed := app.doJSON(t, "POST", "/api/v1/tasks", tokenA, map[string]string{
		"name": "A's secret task",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := decodeTask(t, parsed.Data)

	// B cannot read, update or delete A's task; every path looks like 404.
	resp, _ = app.doJSON(t, "GET", "/api/v1/tasks/"+task.ID.String(), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.doJSON(t, "PATCH", "/api/v1/tasks/"+task.ID.String(), tokenB, map[string]string{
		"name": "hijacked",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = app.doJSON(t, "DELETE", "/api/v1/tasks/"+task.ID.String(), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// B's listing is empty, A's has the task untouched.
	resp, parsed = app.doJSON(t, "GET", "/api/v1/tasks", tokenB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, parsed.Results)
	assert.Equal(t, 0, *parsed.Results)

	resp, parsed = app.doJSON(t, "GET", "/api/v1/tasks", tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, parsed.Results)
	assert.Equal(t, 1, *parsed.Results)

	resp, parsed = app.doJSON(t, "GET", "/api/v1/tasks/"+task.ID.String(), tokenA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "A's secret task", decodeTask(t, parsed.Data).Name)
}

func TestCreateTaskDateValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := app.signupUser(t, "a@x.com", "pw1234")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	resp, _ := app.doJSON(t, "POST", "/api/v1/tasks", token, map[string]string{
		"name": "too late",
		"date": yesterday,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	today := time.Now().UTC().Format("2006-01-02")
	resp, _ = app.doJSON(t, "POST", "/api/v1/tasks", token, map[string]string{
		"name": "due today",
		"date": today,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = app.doJSON(t, "POST", "/api/v1/tasks", token, map[string]string{
		"date": "2031-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "name is required")
}
