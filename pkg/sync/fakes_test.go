package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harrisonrobin/classync/pkg/canvas"
	"github.com/harrisonrobin/classync/pkg/todoist"
)

type fakeSource struct {
	courses     map[int64]*canvas.Course
	assignments map[int64][]canvas.Assignment
	quizzes     map[int64][]canvas.Quiz
	discussions map[int64][]canvas.DiscussionTopic

	fetchCalls int
}

func (f *fakeSource) Course(_ context.Context, id int64) (*canvas.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, errors.New("course not found")
	}
	return course, nil
}

func (f *fakeSource) Assignments(_ context.Context, courseID int64) ([]canvas.Assignment, error) {
	f.fetchCalls++
	return f.assignments[courseID], nil
}

func (f *fakeSource) Quizzes(_ context.Context, courseID int64) ([]canvas.Quiz, error) {
	f.fetchCalls++
	return f.quizzes[courseID], nil
}

func (f *fakeSource) Discussions(_ context.Context, courseID int64) ([]canvas.DiscussionTopic, error) {
	f.fetchCalls++
	return f.discussions[courseID], nil
}

type fakeDest struct {
	projects map[string]*todoist.Project
	sections map[string]*todoist.Section
	tasks    []todoist.Task

	// added records every creation request, addAttempts every try
	// including ones that failed.
	added       []todoist.CreateTaskRequest
	addAttempts int
	nextID      int

	tasksErr error
	addErr   error
	taskErr  error
}

func (f *fakeDest) Project(_ context.Context, id string) (*todoist.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, errors.New("project not found")
	}
	return project, nil
}

func (f *fakeDest) Section(_ context.Context, id string) (*todoist.Section, error) {
	section, ok := f.sections[id]
	if !ok {
		return nil, errors.New("section not found")
	}
	return section, nil
}

func (f *fakeDest) Tasks(_ context.Context, projectID, sectionID string) ([]todoist.Task, error) {
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	var out []todoist.Task
	for _, t := range f.tasks {
		if t.ProjectID != projectID {
			continue
		}
		if sectionID != "" && t.SectionID != sectionID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeDest) Task(_ context.Context, id string) (*todoist.Task, error) {
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return &f.tasks[i], nil
		}
	}
	return nil, errors.New("task not found")
}

func (f *fakeDest) AddTask(_ context.Context, req todoist.CreateTaskRequest) (*todoist.Task, error) {
	f.addAttempts++
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.added = append(f.added, req)

	f.nextID++
	task := todoist.Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		ProjectID:   req.ProjectID,
		SectionID:   req.SectionID,
		ParentID:    req.ParentID,
		Content:     req.Content,
		Description: req.Description,
		Labels:      req.Labels,
		Priority:    req.Priority,
	}
	if req.DueString != "" {
		// Echo the expression back the way the real API resolves it.
		task.Due = &todoist.Due{String: req.DueString}
	}
	f.tasks = append(f.tasks, task)
	return &task, nil
}

func newTestSyncer(source Source, dest Destination) *Syncer {
	s := New(source, dest, log.New(io.Discard))
	s.now = func() time.Time {
		return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	}
	return s
}
