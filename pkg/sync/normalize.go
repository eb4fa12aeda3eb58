package sync

import (
	"fmt"
	"time"

	"github.com/harrisonrobin/classync/pkg/canvas"
	"github.com/harrisonrobin/classync/pkg/htmltext"
)

// NormalizationError reports a post whose concrete shape the normalizer
// does not recognize. The caller skips the post and moves on.
type NormalizationError struct {
	Post canvas.Post
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("post %T did not match any recognized Canvas post shape", e.Post)
}

// normalized is the canonical form shared by all post kinds: what the task
// is called, what goes in its description, and what anchors its due date.
type normalized struct {
	Title    string
	Body     string
	DueBasis *time.Time
}

// normalize maps each Canvas post shape onto the canonical triple.
// Discussions carry HTML that must be flattened to text, and their lock
// date is the last moment they accept replies, so it stands in as the
// effective due date. An unmatched shape is an explicit error, never a
// silent zero value.
func normalize(post canvas.Post) (*normalized, error) {
	switch p := post.(type) {
	case canvas.Assignment:
		return &normalized{Title: p.Name, Body: p.Description, DueBasis: p.DueAt}, nil
	case canvas.Quiz:
		return &normalized{Title: p.Title, Body: p.Description, DueBasis: p.DueAt}, nil
	case canvas.DiscussionTopic:
		return &normalized{Title: p.Title, Body: htmltext.Strip(p.Message), DueBasis: p.LockAt}, nil
	default:
		return nil, &NormalizationError{Post: post}
	}
}
