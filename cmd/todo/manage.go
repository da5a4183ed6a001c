package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dunamismax/go-cli/todo"
)

func buildStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := storage.Load()
			if err != nil {
				return err
			}
			stats := list.Stats()
			fmt.Printf("%s %d total, %s pending, %s in progress, %s completed\n",
				cyan("Items:"), stats.Total,
				yellow(fmt.Sprintf("%d", stats.Pending)),
				yellow(fmt.Sprintf("%d", stats.InProgress)),
				green(fmt.Sprintf("%d", stats.Completed)))
			fmt.Printf("%s %.1f%%\n", cyan("Completion rate:"), stats.CompletionRate)
			return nil
		},
	}
}

func buildClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all completed items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withList(func(list *todo.List) error {
				cleared := list.ClearCompleted()
				fmt.Printf("%s Cleared %d completed items\n", green("✔"), cleared)
				return nil
			})
		},
	}
}

func buildBackupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write a timestamped copy of the todo file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := storage.Backup()
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Println("Nothing to back up yet.")
				return nil
			}
			fmt.Printf("%s Backup written to %s\n", green("✔"), path)
			return nil
		},
	}
}

func buildRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Replace the todo file with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.Restore(args[0]); err != nil {
				return err
			}
			fmt.Printf("%s Restored from %s\n", green("✔"), args[0])
			return nil
		},
	}
}
