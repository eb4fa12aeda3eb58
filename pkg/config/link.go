package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Recognized post types. Anything else in a link's posts list is skipped
// with a diagnostic at push time.
const (
	PostAssignment = "assignment"
	PostQuiz       = "quiz"
	PostDiscussion = "discussion"
)

// Link ties one Canvas course to one Todoist project, with the post rules
// describing what to push between them. A link missing either identifier
// is reported and skipped, never fatal.
type Link struct {
	CourseID  int64      `json:"course_id" validate:"required"`
	ProjectID string     `json:"project_id" validate:"required"`
	Posts     []PostRule `json:"posts,omitempty" validate:"dive"`
}

// PostRule selects one kind of Canvas post and describes how its tasks are
// placed and decorated.
type PostRule struct {
	Type      string   `json:"type"`
	SectionID string   `json:"section_id,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	// Todoist's API counts priority upward: 1 is normal and 4 is urgent
	// (the desktop/mobile clients display the scale reversed).
	Priority int           `json:"priority,omitempty" validate:"omitempty,min=1,max=4"`
	Subtasks []SubtaskRule `json:"subtasks,omitempty" validate:"dive"`
}

// SubtaskRule declares a follow-up task created under each primary task.
type SubtaskRule struct {
	Content     string   `json:"content,omitempty"`
	Description string   `json:"description,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Priority    int      `json:"priority,omitempty" validate:"omitempty,min=1,max=4"`
	// DueString is relative to the parent task's due date, e.g.
	// "2 days before ". The trailing space matters: the parent's due
	// string is concatenated directly onto it.
	DueString string `json:"due_string,omitempty"`
}

// LoadLinks reads the link file. A missing or empty file is an error: with
// no linked courses there is nothing to push.
func LoadLinks(path string) ([]Link, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no link file at %s: create one to link courses to projects", path)
		}
		return nil, fmt.Errorf("failed to open link file %s: %w", path, err)
	}
	defer f.Close()

	var links []Link
	if err := json.NewDecoder(f).Decode(&links); err != nil {
		return nil, fmt.Errorf("failed to decode link file %s: %w", path, err)
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("link file %s contains no linked courses", path)
	}
	return links, nil
}
