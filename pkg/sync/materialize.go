package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/harrisonrobin/classync/pkg/canvas"
	"github.com/harrisonrobin/classync/pkg/config"
	"github.com/harrisonrobin/classync/pkg/todoist"
	"github.com/harrisonrobin/classync/pkg/util"
)

const (
	// provenanceLayout renders the creation timestamp embedded in every
	// pushed task's description.
	provenanceLayout = "02/01/2006 15:04:05"

	// dueLang tells Todoist's date parser which language the due
	// expressions are written in.
	dueLang = "en"

	defaultSubtaskContent = "No name"
)

// createPrimary pushes one Canvas post as a Todoist task and returns the
// created task. A nil return means no task was created (already reported)
// and no subtasks may be hung off it. Creation is attempted exactly once;
// the next run's duplicate check naturally retries anything that failed.
func (s *Syncer) createPrimary(ctx context.Context, post canvas.Post, rule config.PostRule, projectID string) *todoist.Task {
	n, err := normalize(post)
	if err != nil {
		s.log.Error("skipping post", "err", err)
		return nil
	}

	priority := rule.Priority
	if priority == 0 {
		priority = 1
	}
	labels := rule.Labels
	if labels == nil {
		labels = []string{}
	}

	req := todoist.CreateTaskRequest{
		Content:     n.Title,
		Description: n.Body + provenance(s.now(), post.PostID()),
		ProjectID:   projectID,
		SectionID:   rule.SectionID,
		Labels:      labels,
		Priority:    priority,
		DueString:   util.FormatDue(n.DueBasis),
		DueLang:     dueLang,
	}

	task, err := s.dest.AddTask(ctx, req)
	if err != nil {
		s.log.Error("failed to create task", "content", n.Title, "err", err)
		return nil
	}

	if rule.SectionID != "" {
		s.log.Info("created task", "content", n.Title, "section", s.sectionName(ctx, rule.SectionID))
	} else {
		s.log.Info("created task", "content", n.Title)
	}
	return task
}

// provenance is the suffix appended to every primary task's description.
// Both values appear verbatim: the Canvas ID is what duplicate detection
// greps for on later runs, so the format must stay stable across
// releases.
func provenance(now time.Time, postID int64) string {
	return fmt.Sprintf("\n`Autocreated %s `\n`Canvas ID: %d`", now.Format(provenanceLayout), postID)
}

// sectionName resolves a section's display name for logging, degrading to
// the raw ID when the lookup fails.
func (s *Syncer) sectionName(ctx context.Context, sectionID string) string {
	section, err := s.dest.Section(ctx, sectionID)
	if err != nil {
		return sectionID
	}
	return section.Name
}

// createSubtask pushes one declared subtask under a primary task and
// reports whether it was created. The due expression is the rule's
// relative phrase concatenated with the parent's resolved due string; with
// no parent due date there is nothing to anchor to, so the subtask gets no
// due date at all. Placement is inherited from the parent, never set
// explicitly.
func (s *Syncer) createSubtask(ctx context.Context, rule config.SubtaskRule, parentID string) bool {
	parent, err := s.dest.Task(ctx, parentID)
	if err != nil {
		s.log.Error("could not fetch parent task for subtask", "parent", parentID, "err", err)
		return false
	}

	dueString := rule.DueString
	parentDue := ""
	if parent.Due == nil {
		dueString = ""
	} else {
		parentDue = parent.Due.String
	}

	content := rule.Content
	if content == "" {
		content = defaultSubtaskContent
	}
	priority := rule.Priority
	if priority == 0 {
		priority = 1
	}
	labels := rule.Labels
	if labels == nil {
		labels = []string{}
	}

	req := todoist.CreateTaskRequest{
		Content:     content,
		Description: rule.Description,
		ParentID:    parentID,
		Labels:      labels,
		Priority:    priority,
		DueString:   dueString + parentDue,
	}

	if _, err := s.dest.AddTask(ctx, req); err != nil {
		s.log.Error("failed to create subtask", "content", content, "err", err)
		return false
	}

	s.log.Info("created subtask", "content", content)
	return true
}
