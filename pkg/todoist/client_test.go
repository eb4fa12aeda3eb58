package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/tasks", r.URL.Path)

		var req CreateTaskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Essay 1", req.Content)
		assert.Equal(t, "2203306141", req.ProjectID)
		assert.Equal(t, "due 03/15/2024 at 11 PM", req.DueString)
		assert.Equal(t, "en", req.DueLang)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "7301",
			"project_id": "2203306141",
			"content": "Essay 1",
			"description": "write it",
			"priority": 3,
			"due": {"date": "2024-03-15", "string": "due 03/15/2024 at 11 PM"}
		}`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, srv.Client())
	task, err := client.AddTask(context.Background(), CreateTaskRequest{
		Content:   "Essay 1",
		ProjectID: "2203306141",
		Priority:  3,
		DueString: "due 03/15/2024 at 11 PM",
		DueLang:   "en",
	})
	require.NoError(t, err)
	assert.Equal(t, "7301", task.ID)
	require.NotNil(t, task.Due)
	assert.Equal(t, "due 03/15/2024 at 11 PM", task.Due.String)
}

func TestAddTaskError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Priority is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, srv.Client())
	_, err := client.AddTask(context.Background(), CreateTaskRequest{Content: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Priority is invalid")
}

func TestTasksQuery(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id": "1", "project_id": "p1", "content": "a", "description": "Canvas ID: 11"}]`)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, srv.Client())

	tasks, err := client.Tasks(context.Background(), "p1", "s1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Contains(t, query, "project_id=p1")
	assert.Contains(t, query, "section_id=s1")

	_, err = client.Tasks(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.NotContains(t, query, "section_id")
}

func TestDeleteTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/tasks/7301", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, srv.Client())
	assert.NoError(t, client.DeleteTask(context.Background(), "7301"))
}
