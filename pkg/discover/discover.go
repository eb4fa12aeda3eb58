// Package discover prints the Canvas and Todoist identifiers needed to
// author a link file.
package discover

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/harrisonrobin/classync/pkg/canvas"
	"github.com/harrisonrobin/classync/pkg/todoist"
)

// Courses renders the user's active Canvas courses with their IDs.
func Courses(ctx context.Context, client *canvas.Client) error {
	courses, err := client.ActiveCourses(ctx)
	if err != nil {
		return fmt.Errorf("could not list active courses: %w", err)
	}

	t := newTable("Course", "ID")
	for _, course := range courses {
		t.Row(course.Name, strconv.FormatInt(course.ID, 10))
	}
	fmt.Println(t)
	return nil
}

// Projects renders the user's Todoist projects, each with its sections
// beneath it.
func Projects(ctx context.Context, client *todoist.Client) error {
	projects, err := client.Projects(ctx)
	if err != nil {
		return fmt.Errorf("could not list projects: %w", err)
	}

	t := newTable("Project", "Section", "ID")
	for _, project := range projects {
		t.Row(project.Name, "", project.ID)
		sections, err := client.Sections(ctx, project.ID)
		if err != nil {
			return fmt.Errorf("could not list sections of %q: %w", project.Name, err)
		}
		for _, section := range sections {
			t.Row("", section.Name, section.ID)
		}
	}
	fmt.Println(t)
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}
