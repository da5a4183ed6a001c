//go:build ignore

// Generates a playground directory tree for trying out the organizer
// commands: mixed categories and sizes, files from different months,
// duplicate clusters and a few empty directories.
//
// Run with: go run demo/generate_data.go [dir]
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type file struct {
	path    string
	size    int64
	modTime string // 2006-01-02
	content string // duplicate clusters share content
}

func main() {
	root := "playground"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	files := []file{
		// A typical messy downloads folder
		{path: "vacation_photo_001.jpg", size: 2457600, modTime: "2024-07-14"},
		{path: "vacation_photo_002.jpg", size: 3145728, modTime: "2024-07-14"},
		{path: "screenshot_2025-01-03.png", size: 524288, modTime: "2025-01-03"},
		{path: "annual_report_2024.pdf", size: 1048576, modTime: "2024-12-20"},
		{path: "nda_template.docx", size: 45056, modTime: "2023-09-01"},
		{path: "notes.txt", size: 512, modTime: "2025-02-11"},
		{path: "budget_forecast.xlsx", size: 786432, modTime: "2025-01-28"},
		{path: "company_overview.pptx", size: 5242880, modTime: "2023-10-31"},
		{path: "holiday_video.mp4", size: 134217728, modTime: "2024-08-02"},
		{path: "podcast_episode_12.mp3", size: 52428800, modTime: "2024-11-05"},
		{path: "backup_2024.zip", size: 8388608, modTime: "2024-12-31"},
		{path: "installer.deb", size: 10485760, modTime: "2025-03-15"},
		{path: "organize_downloads.py", size: 2048, modTime: "2025-04-01"},
		{path: "README", size: 1024, modTime: "2022-05-20"},

		// Duplicate clusters, same content under different names
		{path: "invoice_january.pdf", content: "invoice january 2025", modTime: "2025-01-31"},
		{path: "invoice_january_copy.pdf", content: "invoice january 2025", modTime: "2025-02-01"},
		{path: "archive/invoice_january_final.pdf", content: "invoice january 2025", modTime: "2025-02-03"},
		{path: "song_draft.mp3", content: "eight bars of silence", modTime: "2024-06-06"},
		{path: "archive/music/song_draft.mp3", content: "eight bars of silence", modTime: "2024-06-07"},

		// Nested content for stats and clean-empty
		{path: "archive/old/2019/taxes_2019.pdf", size: 204800, modTime: "2020-04-14"},
	}

	empties := []string{
		"archive/old/2018/receipts",
		"empty",
	}

	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f.path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			fatal(err)
		}

		// Every file starts with its own path so no two generated
		// files hash alike unless they share content on purpose.
		data := []byte(f.content)
		if f.content == "" {
			data = []byte(f.path)
		}
		if err := os.WriteFile(full, data, 0o644); err != nil {
			fatal(err)
		}
		if f.size > int64(len(data)) {
			// Sparse tail keeps big demo files cheap on disk.
			if err := os.Truncate(full, f.size); err != nil {
				fatal(err)
			}
		}

		modTime, err := time.Parse("2006-01-02", f.modTime)
		if err != nil {
			fatal(err)
		}
		if err := os.Chtimes(full, modTime, modTime); err != nil {
			fatal(err)
		}
	}

	for _, dir := range empties {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755); err != nil {
			fatal(err)
		}
	}

	fmt.Printf("Created %d files and %d empty directories under %s\n", len(files), len(empties), root)
	fmt.Println("Try:")
	fmt.Printf("  organizer stats %s\n", root)
	fmt.Printf("  organizer by-type --dry-run %s\n", root)
	fmt.Printf("  organizer duplicates %s\n", root)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
