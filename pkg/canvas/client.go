// Package canvas is a minimal Canvas LMS REST client covering the read
// surface the push needs: courses and their assignments, quizzes and
// discussion topics.
package canvas

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Client is a Canvas REST API client.
type Client struct {
	rc *resty.Client
}

// NewClient creates a client against the given Canvas instance base URL
// (e.g. https://school.instructure.com). The http.Client must already
// carry bearer authentication.
func NewClient(baseURL string, hc *http.Client) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("canvas base URL is not set (use -set-canvas-url)")
	}
	rc := resty.NewWithClient(hc).
		SetBaseURL(strings.TrimRight(baseURL, "/") + "/api/v1").
		SetHeader("Accept", "application/json")
	return &Client{rc: rc}, nil
}

// Self fetches the authenticated user, which doubles as a token check at
// startup.
func (c *Client) Self(ctx context.Context) (*User, error) {
	var user User
	resp, err := c.rc.R().SetContext(ctx).SetResult(&user).Get("/users/self")
	if err != nil {
		return nil, fmt.Errorf("canvas: fetching current user: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("canvas: fetching current user: %s", resp.Status())
	}
	return &user, nil
}

// Course fetches a single course by ID.
func (c *Client) Course(ctx context.Context, id int64) (*Course, error) {
	var course Course
	resp, err := c.rc.R().SetContext(ctx).SetResult(&course).
		Get(fmt.Sprintf("/courses/%d", id))
	if err != nil {
		return nil, fmt.Errorf("canvas: fetching course %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("canvas: fetching course %d: %s", id, resp.Status())
	}
	return &course, nil
}

// ActiveCourses lists the courses the user is actively enrolled in.
func (c *Client) ActiveCourses(ctx context.Context) ([]Course, error) {
	return listPaged[Course](ctx, c, "/courses", map[string]string{
		"enrollment_state": "active",
	})
}

// Assignments lists a course's assignments the user has not yet submitted.
func (c *Client) Assignments(ctx context.Context, courseID int64) ([]Assignment, error) {
	return listPaged[Assignment](ctx, c, fmt.Sprintf("/courses/%d/assignments", courseID), map[string]string{
		"bucket": "unsubmitted",
	})
}

// Quizzes lists all of a course's quizzes. The quizzes endpoint has no
// lock-aware query parameter, so lock filtering is the caller's job.
func (c *Client) Quizzes(ctx context.Context, courseID int64) ([]Quiz, error) {
	return listPaged[Quiz](ctx, c, fmt.Sprintf("/courses/%d/quizzes", courseID), nil)
}

// Discussions lists a course's unlocked discussion topics.
func (c *Client) Discussions(ctx context.Context, courseID int64) ([]DiscussionTopic, error) {
	return listPaged[DiscussionTopic](ctx, c, fmt.Sprintf("/courses/%d/discussion_topics", courseID), map[string]string{
		"scope": "unlocked",
	})
}

// listPaged follows Canvas's Link-header pagination until no rel="next"
// page remains.
func listPaged[T any](ctx context.Context, c *Client, path string, query map[string]string) ([]T, error) {
	req := c.rc.R().SetContext(ctx).SetQueryParam("per_page", "100")
	if query != nil {
		req.SetQueryParams(query)
	}

	var all []T
	next := path
	for next != "" {
		var page []T
		resp, err := req.SetResult(&page).Get(next)
		if err != nil {
			return nil, fmt.Errorf("canvas: GET %s: %w", path, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("canvas: GET %s: %s", path, resp.Status())
		}
		all = append(all, page...)

		// Follow-up URLs are absolute and already carry the query.
		next = nextPageURL(resp.Header().Get("Link"))
		req = c.rc.R().SetContext(ctx)
	}
	return all, nil
}

// nextPageURL extracts the rel="next" target from a Link header, if any.
func nextPageURL(header string) string {
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(part, ";")
		if len(fields) < 2 {
			continue
		}
		if strings.TrimSpace(fields[1]) == `rel="next"` {
			return strings.Trim(strings.TrimSpace(fields[0]), "<>")
		}
	}
	return ""
}
