package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLinkFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sync.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadLinks(t *testing.T) {
	path := writeLinkFile(t, `[
		{
			"course_id": 11310,
			"project_id": "2203306141",
			"posts": [
				{
					"type": "assignment",
					"section_id": "110573943",
					"labels": ["school"],
					"priority": 3,
					"subtasks": [
						{"content": "Start early", "due_string": "2 days before ", "priority": 2}
					]
				},
				{"type": "quiz"}
			]
		}
	]`)

	links, err := LoadLinks(path)
	require.NoError(t, err)
	require.Len(t, links, 1)

	link := links[0]
	assert.Equal(t, int64(11310), link.CourseID)
	assert.Equal(t, "2203306141", link.ProjectID)
	require.Len(t, link.Posts, 2)

	rule := link.Posts[0]
	assert.Equal(t, PostAssignment, rule.Type)
	assert.Equal(t, "110573943", rule.SectionID)
	assert.Equal(t, []string{"school"}, rule.Labels)
	assert.Equal(t, 3, rule.Priority)
	require.Len(t, rule.Subtasks, 1)
	assert.Equal(t, "Start early", rule.Subtasks[0].Content)
	assert.Equal(t, "2 days before ", rule.Subtasks[0].DueString)

	assert.Equal(t, PostQuiz, link.Posts[1].Type)
	assert.Zero(t, link.Posts[1].Priority)
}

func TestLoadLinksMissingFile(t *testing.T) {
	_, err := LoadLinks(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no link file")
}

func TestLoadLinksEmptyFile(t *testing.T) {
	path := writeLinkFile(t, `[]`)
	_, err := LoadLinks(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no linked courses")
}

func TestLoadLinksMalformed(t *testing.T) {
	path := writeLinkFile(t, `{not json`)
	_, err := LoadLinks(path)
	assert.Error(t, err)
}
