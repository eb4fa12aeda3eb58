package canvas

import "time"

type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Post is any Canvas item that can be pushed as a task. Every post carries
// a stable numeric ID, unique within its course, which duplicate detection
// greps for in task descriptions.
type Post interface {
	PostID() int64
}

// The three post shapes name their fields inconsistently (name vs title,
// due_at vs lock_at); the sync normalizer flattens them.

type Assignment struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	HTMLURL     string     `json:"html_url,omitempty"`
}

func (a Assignment) PostID() int64 { return a.ID }

type Quiz struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DueAt         *time.Time `json:"due_at"`
	LockedForUser bool       `json:"locked_for_user"`
}

func (q Quiz) PostID() int64 { return q.ID }

type DiscussionTopic struct {
	ID      int64      `json:"id"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	LockAt  *time.Time `json:"lock_at"`
}

func (d DiscussionTopic) PostID() int64 { return d.ID }
