package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dunamismax/go-cli/organizer"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

var (
	targetDir      string
	dryRun         bool
	categoriesPath string
)

func buildRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "organizer",
		Version: version,
		Short:   "Organize, deduplicate and inspect directories",
		Long: `organizer moves the files of a directory into subdirectories grouped
by category, modification date or size, finds duplicate files by
content hash, removes empty directories and reports statistics.

Commands:
  by-type      Group files into category folders (images, documents, ...)
  by-date      Group files into folders named after their modification date
  by-size      Group files into folders by size range
  duplicates   Find files with identical content, optionally delete them
  clean-empty  Remove empty directories, deepest first
  stats        Summarize a directory tree
  watch        Organize new files as they appear

Examples:
  organizer by-type ~/Downloads
  organizer by-date ~/Downloads --format 2006-01
  organizer by-size ~/Downloads --ranges "0:1MB:small,1MB:inf:big"
  organizer duplicates ~/Downloads --remove --keep oldest
  organizer stats ~/Downloads

  # Preview any command with --dry-run
  organizer by-type --dry-run ~/Downloads`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&targetDir, "target", "t", "", "Destination root (default: <source>/organized)")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without changing anything")
	cmd.PersistentFlags().StringVar(&categoriesPath, "categories", "", "YAML file with custom category mappings")

	cmd.AddCommand(
		buildByTypeCommand(),
		buildByDateCommand(),
		buildBySizeCommand(),
		buildDuplicatesCommand(),
		buildCleanCommand(),
		buildStatsCommand(),
		buildWatchCommand(),
	)

	return cmd
}

// newOrganizer builds an Organizer from the persistent flags.
func newOrganizer(source string) (*organizer.Organizer, error) {
	o := organizer.New(source, targetDir, dryRun)
	if categoriesPath != "" {
		table, err := organizer.LoadCategoryTable(categoriesPath)
		if err != nil {
			return nil, err
		}
		o.Classifier = organizer.NewClassifier(table)
	}
	return o, nil
}

func printReport(report organizer.Report) {
	keys := make([]string, 0, len(report))
	for key := range report {
		keys = append(keys, string(key))
	}
	sort.Strings(keys)

	for _, key := range keys {
		for _, path := range report[organizer.BucketKey(key)] {
			fmt.Printf("  %s -> %s\n", filepath.Base(path), cyan(key+"/"))
		}
	}

	if dryRun {
		fmt.Printf("%s Dry run: %d files would be organized into %d folders\n",
			yellow("!"), report.TotalFiles(), len(report))
		return
	}
	fmt.Printf("%s Organized %d files into %d folders\n",
		green("✔"), report.TotalFiles(), len(report))
}
