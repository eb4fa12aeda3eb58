// Package todoist is a Todoist REST v2 client covering the task, project
// and section operations the push needs.
package todoist

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.todoist.com/rest/v2"

// Client is a Todoist REST API client.
type Client struct {
	rc *resty.Client
}

// NewClient creates a client against the public Todoist API. The
// http.Client must already carry bearer authentication.
func NewClient(hc *http.Client) *Client {
	return NewClientWithBaseURL(defaultBaseURL, hc)
}

// NewClientWithBaseURL is NewClient with an overridable base URL, for
// tests.
func NewClientWithBaseURL(baseURL string, hc *http.Client) *Client {
	rc := resty.NewWithClient(hc).
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
	return &Client{rc: rc}
}

// Projects lists all of the user's projects.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	resp, err := c.rc.R().SetContext(ctx).SetResult(&projects).Get("/projects")
	if err != nil {
		return nil, fmt.Errorf("todoist: listing projects: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("todoist: listing projects: %s", resp.Status())
	}
	return projects, nil
}

// Project fetches a single project by ID.
func (c *Client) Project(ctx context.Context, id string) (*Project, error) {
	var project Project
	resp, err := c.rc.R().SetContext(ctx).SetResult(&project).Get("/projects/" + id)
	if err != nil {
		return nil, fmt.Errorf("todoist: fetching project %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("todoist: fetching project %s: %s", id, resp.Status())
	}
	return &project, nil
}

// Sections lists a project's sections.
func (c *Client) Sections(ctx context.Context, projectID string) ([]Section, error) {
	var sections []Section
	resp, err := c.rc.R().SetContext(ctx).
		SetQueryParam("project_id", projectID).
		SetResult(&sections).
		Get("/sections")
	if err != nil {
		return nil, fmt.Errorf("todoist: listing sections of project %s: %w", projectID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("todoist: listing sections of project %s: %s", projectID, resp.Status())
	}
	return sections, nil
}

// Section fetches a single section by ID.
func (c *Client) Section(ctx context.Context, id string) (*Section, error) {
	var section Section
	resp, err := c.rc.R().SetContext(ctx).SetResult(&section).Get("/sections/" + id)
	if err != nil {
		return nil, fmt.Errorf("todoist: fetching section %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("todoist: fetching section %s: %s", id, resp.Status())
	}
	return &section, nil
}

// Tasks lists a project's active tasks, narrowed to a section when
// sectionID is non-empty.
func (c *Client) Tasks(ctx context.Context, projectID, sectionID string) ([]Task, error) {
	req := c.rc.R().SetContext(ctx).SetQueryParam("project_id", projectID)
	if sectionID != "" {
		req.SetQueryParam("section_id", sectionID)
	}

	var tasks []Task
	resp, err := req.SetResult(&tasks).Get("/tasks")
	if err != nil {
		return nil, fmt.Errorf("todoist: listing tasks of project %s: %w", projectID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("todoist: listing tasks of project %s: %s", projectID, resp.Status())
	}
	return tasks, nil
}

// Task fetches a single task by ID.
func (c *Client) Task(ctx context.Context, id string) (*Task, error) {
	var task Task
	resp, err := c.rc.R().SetContext(ctx).SetResult(&task).Get("/tasks/" + id)
	if err != nil {
		return nil, fmt.Errorf("todoist: fetching task %s: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("todoist: fetching task %s: %s", id, resp.Status())
	}
	return &task, nil
}

// AddTask creates a task. There is deliberately no retry here: a failed
// creation is reported and picked up again by the next run's duplicate
// check.
func (c *Client) AddTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	resp, err := c.rc.R().SetContext(ctx).SetBody(req).SetResult(&task).Post("/tasks")
	if err != nil {
		return nil, fmt.Errorf("todoist: creating task %q: %w", req.Content, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("todoist: creating task %q: %s: %s", req.Content, resp.Status(), resp.String())
	}
	return &task, nil
}

// DeleteTask deletes a task. The sync itself never calls this; it backs
// the -delete administrative flag.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	resp, err := c.rc.R().SetContext(ctx).Delete("/tasks/" + id)
	if err != nil {
		return fmt.Errorf("todoist: deleting task %s: %w", id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("todoist: deleting task %s: %s", id, resp.Status())
	}
	return nil
}
