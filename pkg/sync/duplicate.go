package sync

import (
	"context"
	"strconv"
	"strings"
)

// isDuplicate reports whether the project (narrowed to a section when one
// is configured) already holds a task for the given Canvas post. Detection
// is a substring search for the post's ID in task descriptions, where the
// materializer embeds it. The task list itself is the only durable record
// of what has been pushed.
//
// A failed listing also reports true. Skipping one post for one run is
// recoverable; flooding the project with repeats on a transient read error
// is not.
func (s *Syncer) isDuplicate(ctx context.Context, postID int64, projectID, sectionID string) bool {
	tasks, err := s.dest.Tasks(ctx, projectID, sectionID)
	if err != nil {
		s.log.Error("could not check for existing tasks, treating post as already pushed", "post", postID, "err", err)
		return true
	}

	needle := strconv.FormatInt(postID, 10)
	for _, task := range tasks {
		if strings.Contains(task.Description, needle) {
			s.log.Info("existing task found, skipping", "task", task.Content)
			return true
		}
	}
	return false
}
