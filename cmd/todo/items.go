package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/todo"
)

func buildAddCommand() *cobra.Command {
	var (
		description string
		priority    string
		due         string
		tags        string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := parseDueDate(due)
			if err != nil {
				return err
			}
			return withList(func(list *todo.List) error {
				item, err := list.Add(args[0], description, models.TodoPriority(priority), dueDate, splitTags(tags))
				if err != nil {
					return err
				}
				fmt.Printf("%s Added #%d: %s\n", green("✔"), item.ID, item.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Longer description")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(models.PriorityMedium), "Priority: low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "Due date as YYYY-MM-DD")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")

	return cmd
}

func buildListCommand() *cobra.Command {
	var (
		status   string
		priority string
		tag      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := storage.Load()
			if err != nil {
				return err
			}
			items := list.Filter(models.TodoStatus(status), models.TodoPriority(priority), tag)
			if len(items) == 0 {
				fmt.Println("Nothing to do.")
				return nil
			}
			printItems(items)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status: pending, in_progress, completed, cancelled")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Filter by priority: low, medium or high")
	cmd.Flags().StringVar(&tag, "tag", "", "Filter by tag")

	return cmd
}

func buildShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			list, err := storage.Load()
			if err != nil {
				return err
			}
			item, err := list.Get(id)
			if err != nil {
				return err
			}
			printItem(item)
			return nil
		},
	}
}

func buildEditCommand() *cobra.Command {
	var (
		title       string
		description string
		priority    string
		status      string
		due         string
		tags        string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var update todo.Update
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				p := models.TodoPriority(priority)
				update.Priority = &p
			}
			if cmd.Flags().Changed("status") {
				s := models.TodoStatus(status)
				update.Status = &s
			}
			if cmd.Flags().Changed("due") {
				update.DueDate, err = parseDueDate(due)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("tags") {
				update.Tags = splitTags(tags)
			}

			return withList(func(list *todo.List) error {
				item, err := list.Apply(id, update)
				if err != nil {
					return err
				}
				fmt.Printf("%s Updated #%d: %s\n", green("✔"), item.ID, item.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority")
	cmd.Flags().StringVarP(&status, "status", "s", "", "New status")
	cmd.Flags().StringVar(&due, "due", "", "New due date as YYYY-MM-DD")
	cmd.Flags().StringVar(&tags, "tags", "", "Replacement tags, comma-separated")

	return cmd
}

func buildDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark an item completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withList(func(list *todo.List) error {
				item, err := list.Complete(id)
				if err != nil {
					return err
				}
				fmt.Printf("%s Done: %s\n", green("✔"), item.Title)
				return nil
			})
		},
	}
}

func buildUndoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undone <id>",
		Short: "Reopen a completed item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withList(func(list *todo.List) error {
				item, err := list.Reopen(id)
				if err != nil {
					return err
				}
				fmt.Printf("%s Reopened: %s\n", yellow("○"), item.Title)
				return nil
			})
		},
	}
}

func buildRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withList(func(list *todo.List) error {
				if err := list.Delete(id); err != nil {
					return err
				}
				fmt.Printf("%s Removed #%d\n", red("✘"), id)
				return nil
			})
		},
	}
}

func printItems(items []models.TodoItem) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "   ID\tPRI\tTITLE\tDUE\tTAGS")
	for i := range items {
		item := &items[i]
		due := ""
		if item.DueDate != nil {
			due = item.DueDate.Format(dueDateLayout)
		}
		fmt.Fprintf(w, "%s  %d\t%s\t%s\t%s\t%s\n",
			statusGlyph(item.Status), item.ID, priorityLabel(item.Priority),
			item.Title, due, strings.Join(item.Tags, ","))
	}
	w.Flush()
}

func printItem(item *models.TodoItem) {
	fmt.Printf("%s #%d %s\n", statusGlyph(item.Status), item.ID, item.Title)
	if item.Description != "" {
		fmt.Printf("  %s\n", item.Description)
	}
	fmt.Printf("  %s %s   %s %s\n", cyan("priority:"), priorityLabel(item.Priority), cyan("status:"), item.Status)
	fmt.Printf("  %s %s\n", cyan("created:"), item.CreatedAt.Format("2006-01-02 15:04"))
	if item.UpdatedAt != nil {
		fmt.Printf("  %s %s\n", cyan("updated:"), item.UpdatedAt.Format("2006-01-02 15:04"))
	}
	if item.DueDate != nil {
		fmt.Printf("  %s %s\n", cyan("due:"), item.DueDate.Format(dueDateLayout))
	}
	if item.CompletedAt != nil {
		fmt.Printf("  %s %s\n", cyan("completed:"), item.CompletedAt.Format("2006-01-02 15:04"))
	}
	if len(item.Tags) > 0 {
		fmt.Printf("  %s %s\n", cyan("tags:"), strings.Join(item.Tags, ", "))
	}
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
