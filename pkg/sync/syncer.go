// Package sync pushes Canvas posts into Todoist tasks, one configured link
// at a time. Tasks pushed on a previous run are recognized by the Canvas
// ID embedded in their description and left alone, so repeated runs are
// idempotent without any state of their own.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/harrisonrobin/classync/pkg/canvas"
	"github.com/harrisonrobin/classync/pkg/config"
	"github.com/harrisonrobin/classync/pkg/todoist"
)

// Source is the Canvas capability the syncer consumes.
type Source interface {
	Course(ctx context.Context, id int64) (*canvas.Course, error)
	Assignments(ctx context.Context, courseID int64) ([]canvas.Assignment, error)
	Quizzes(ctx context.Context, courseID int64) ([]canvas.Quiz, error)
	Discussions(ctx context.Context, courseID int64) ([]canvas.DiscussionTopic, error)
}

// Destination is the Todoist capability the syncer consumes.
type Destination interface {
	Project(ctx context.Context, id string) (*todoist.Project, error)
	Section(ctx context.Context, id string) (*todoist.Section, error)
	Tasks(ctx context.Context, projectID, sectionID string) ([]todoist.Task, error)
	Task(ctx context.Context, id string) (*todoist.Task, error)
	AddTask(ctx context.Context, req todoist.CreateTaskRequest) (*todoist.Task, error)
}

// Syncer walks the link configuration and materializes tasks. Collaborator
// clients are injected so the whole engine runs against fakes in tests.
type Syncer struct {
	source   Source
	dest     Destination
	log      *log.Logger
	validate *validator.Validate
	now      func() time.Time
}

func New(source Source, dest Destination, logger *log.Logger) *Syncer {
	return &Syncer{
		source:   source,
		dest:     dest,
		log:      logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Result summarizes one push run. The per-item log lines carry the
// detail; Result carries the totals.
type Result struct {
	Created    int
	Subtasks   int
	Duplicates int
	Failed     int
	Errors     []string
}

// Push walks every link in order. Failures are scoped as narrowly as
// possible: a bad link skips that link, a bad rule skips that rule, a bad
// post skips that post. Push itself never aborts.
func (s *Syncer) Push(ctx context.Context, links []config.Link) *Result {
	res := &Result{}
	for _, link := range links {
		s.pushLink(ctx, link, res)
	}
	return res
}

func (s *Syncer) pushLink(ctx context.Context, link config.Link, res *Result) {
	if err := s.validate.Struct(link); err != nil {
		s.failf(res, "skipping invalid link (course %d, project %q): %v", link.CourseID, link.ProjectID, err)
		return
	}

	course, err := s.source.Course(ctx, link.CourseID)
	if err != nil {
		s.failf(res, "skipping link: could not fetch course %d: %v", link.CourseID, err)
		return
	}

	project, err := s.dest.Project(ctx, link.ProjectID)
	if err != nil {
		s.failf(res, "skipping link: could not fetch project %q: %v", link.ProjectID, err)
		return
	}

	logger := s.log.With("course", course.Name, "project", project.Name)
	logger.Info("pushing course to project")

	if len(link.Posts) == 0 {
		logger.Warn("link defines no posts to push")
		return
	}

	for _, rule := range link.Posts {
		s.pushRule(ctx, link, rule, logger, res)
	}
}

func (s *Syncer) pushRule(ctx context.Context, link config.Link, rule config.PostRule, logger *log.Logger, res *Result) {
	posts, err := s.fetchPosts(ctx, link.CourseID, rule.Type)
	if err != nil {
		logger.Error("skipping post rule", "type", rule.Type, "err", err)
		res.Errors = append(res.Errors, err.Error())
		return
	}
	if len(posts) == 0 {
		logger.Info("no posts to push", "type", rule.Type)
		return
	}
	logger.Info("pushing posts", "type", rule.Type, "count", len(posts))

	for _, post := range posts {
		if s.isDuplicate(ctx, post.PostID(), link.ProjectID, rule.SectionID) {
			res.Duplicates++
			continue
		}

		task := s.createPrimary(ctx, post, rule, link.ProjectID)
		if task == nil {
			// No primary task means no subtasks either.
			res.Failed++
			continue
		}
		res.Created++

		for _, sub := range rule.Subtasks {
			if s.createSubtask(ctx, sub, task.ID) {
				res.Subtasks++
			} else {
				res.Failed++
			}
		}
	}
}

// fetchPosts pulls the posts a rule selects, filtered as far as the Canvas
// API allows server-side: unsubmitted assignments, unlocked discussions.
// Quiz locking has no server-side filter, so locked quizzes are dropped
// here.
func (s *Syncer) fetchPosts(ctx context.Context, courseID int64, kind string) ([]canvas.Post, error) {
	switch kind {
	case config.PostAssignment:
		assignments, err := s.source.Assignments(ctx, courseID)
		if err != nil {
			return nil, err
		}
		posts := make([]canvas.Post, 0, len(assignments))
		for _, a := range assignments {
			posts = append(posts, a)
		}
		return posts, nil

	case config.PostQuiz:
		quizzes, err := s.source.Quizzes(ctx, courseID)
		if err != nil {
			return nil, err
		}
		posts := make([]canvas.Post, 0, len(quizzes))
		for _, q := range quizzes {
			if q.LockedForUser {
				continue
			}
			posts = append(posts, q)
		}
		return posts, nil

	case config.PostDiscussion:
		discussions, err := s.source.Discussions(ctx, courseID)
		if err != nil {
			return nil, err
		}
		posts := make([]canvas.Post, 0, len(discussions))
		for _, d := range discussions {
			posts = append(posts, d)
		}
		return posts, nil

	default:
		return nil, fmt.Errorf("unrecognized post type %q: must be assignment, quiz, or discussion", kind)
	}
}

func (s *Syncer) failf(res *Result, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.log.Error(msg)
	res.Errors = append(res.Errors, msg)
}
