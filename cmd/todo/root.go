package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/todo"
)

const dueDateLayout = "2006-01-02"

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

var (
	todoFile string
	storage  *todo.Storage
)

func buildRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todo",
		Version: version,
		Short:   "Manage a todo list stored as a JSON file",
		Long: `todo keeps tasks in a JSON file next to you. Items have a priority,
a status, optional due dates and tags; completed items stay around
until you clear them.

Examples:
  todo add "buy milk" -p high --due 2026-09-01
  todo list --status pending
  todo done 3
  todo stats`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			storage = todo.NewStorage(todoFile)
		},
	}

	cmd.PersistentFlags().StringVarP(&todoFile, "file", "f", "todos.json", "Path of the todo file")

	cmd.AddCommand(
		buildAddCommand(),
		buildListCommand(),
		buildShowCommand(),
		buildEditCommand(),
		buildDoneCommand(),
		buildUndoneCommand(),
		buildRemoveCommand(),
		buildStatsCommand(),
		buildClearCommand(),
		buildBackupCommand(),
		buildRestoreCommand(),
	)

	return cmd
}

// withList loads the list, applies fn and saves the result.
func withList(fn func(list *todo.List) error) error {
	list, err := storage.Load()
	if err != nil {
		return err
	}
	if err := fn(list); err != nil {
		return err
	}
	return storage.Save(list)
}

func statusGlyph(status models.TodoStatus) string {
	switch status {
	case models.StatusCompleted:
		return green("✓")
	case models.StatusInProgress:
		return yellow("◐")
	case models.StatusCancelled:
		return faint("✗")
	}
	return "○"
}

func priorityLabel(priority models.TodoPriority) string {
	switch priority {
	case models.PriorityHigh:
		return red(string(priority))
	case models.PriorityLow:
		return green(string(priority))
	}
	return yellow(string(priority))
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse(dueDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q: use YYYY-MM-DD", raw)
	}
	return &due, nil
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
