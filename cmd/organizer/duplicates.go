package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dunamismax/go-cli/organizer"
)

func buildDuplicatesCommand() *cobra.Command {
	var (
		remove bool
		keep   string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "duplicates <source>",
		Short: "Find files with identical content, optionally delete them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrganizer(args[0])
			if err != nil {
				return err
			}

			total, err := o.CountFiles()
			if err != nil {
				return err
			}

			bar := progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Hashing files..."),
				progressbar.OptionSetPredictTime(false),
				progressbar.OptionThrottle(100*time.Millisecond),
				progressbar.OptionClearOnFinish(),
			)
			o.Progress = func(string) { bar.Add(1) }

			groups, err := o.FindDuplicates()
			bar.Finish()
			if err != nil {
				return err
			}

			if len(groups) == 0 {
				fmt.Printf("%s No duplicates found in %d files\n", green("✔"), total)
				return nil
			}

			if err := organizer.ApplyKeepStrategy(groups, organizer.KeepStrategy(keep)); err != nil {
				return err
			}

			extra := 0
			for i, group := range groups {
				fmt.Printf("%s (%d copies)\n", cyan(fmt.Sprintf("Group %d", i+1)), len(group.Paths))
				fmt.Printf("  %s  %s\n", green("keep"), group.Paths[0])
				for _, path := range group.Paths[1:] {
					fmt.Printf("  %s  %s\n", red("dupe"), path)
					extra++
				}
			}
			fmt.Printf("%d duplicate files in %d groups\n", extra, len(groups))

			if !remove {
				return nil
			}

			if dryRun {
				fmt.Printf("%s Dry run: %d files would be deleted\n", yellow("!"), extra)
				return nil
			}
			if !yes && !confirm(fmt.Sprintf("Delete %d duplicate files?", extra)) {
				fmt.Println("Aborted.")
				return nil
			}

			removed, err := o.RemoveDuplicates(groups)
			if err != nil {
				return err
			}
			fmt.Printf("%s Deleted %d duplicate files\n", green("✔"), len(removed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Delete every duplicate except the kept copy")
	cmd.Flags().StringVar(&keep, "keep", string(organizer.KeepFirst),
		"Which copy to keep: first, oldest or path")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
