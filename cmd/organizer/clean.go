package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func buildCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean-empty <source>",
		Short: "Remove empty directories, deepest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrganizer(args[0])
			if err != nil {
				return err
			}
			removed, err := o.CleanEmptyDirs()
			if err != nil {
				return err
			}

			for _, dir := range removed {
				fmt.Printf("  %s\n", dir)
			}
			if dryRun {
				fmt.Printf("%s Dry run: %d empty directories would be removed\n", yellow("!"), len(removed))
				return nil
			}
			fmt.Printf("%s Removed %d empty directories\n", green("✔"), len(removed))
			return nil
		},
	}
}
