package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dunamismax/go-cli/app"
	"github.com/dunamismax/go-cli/models"
	"github.com/dunamismax/go-cli/organizer"
)

func buildStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <source>",
		Short: "Summarize a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrganizer(args[0])
			if err != nil {
				return err
			}
			stats, err := o.Stats()
			if err != nil {
				return err
			}
			printStats(args[0], stats)
			return nil
		},
	}
}

func printStats(source string, stats *models.DirectoryStats) {
	fmt.Printf("%s %s\n", cyan("Directory:"), source)
	fmt.Printf("%s %d files, %s\n\n", cyan("Total:"), stats.TotalFiles, app.BytesToHuman(stats.TotalSize))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "CATEGORY\tFILES")
	categories := make([]string, 0, len(stats.Categories))
	for category := range stats.Categories {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(w, "%s\t%d\n", category, stats.Categories[category])
	}
	w.Flush()
	fmt.Println()

	fmt.Fprintln(w, "SIZE\tFILES")
	for _, label := range organizer.StatsBucketOrder() {
		fmt.Fprintf(w, "%s\t%d\n", label, stats.SizeBuckets[label])
	}
	w.Flush()
	fmt.Println()

	printRanking(w, "LARGEST", stats.LargestFiles)
	printRanking(w, "OLDEST", stats.OldestFiles)
	printRanking(w, "NEWEST", stats.NewestFiles)
}

func printRanking(w *tabwriter.Writer, title string, files []models.FileValue) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(w, "%s\t\n", title)
	for _, file := range files {
		fmt.Fprintf(w, "%s\t%s\n", file.Path, file.Value)
	}
	w.Flush()
	fmt.Println()
}
