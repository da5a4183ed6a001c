package organizer

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/dunamismax/go-cli/app"
	"github.com/dunamismax/go-cli/models"
)

// statsTimeLayout renders modification times in the oldest and newest
// file lists.
const statsTimeLayout = "2006-01-02 15:04"

// statsBuckets are the fixed reporting buckets used by Stats. They are
// independent of the configurable size ranges used for organizing.
var statsBuckets = []models.SizeRange{
	{Min: 0, Max: 1024, Label: "< 1KB"},
	{Min: 1024, Max: 1024 * 1024, Label: "1KB - 1MB"},
	{Min: 1024 * 1024, Max: 100 * 1024 * 1024, Label: "1MB - 100MB"},
	{Min: 100 * 1024 * 1024, Max: -1, Label: "> 100MB"},
}

// StatsBucketOrder lists the reporting bucket labels in display order.
func StatsBucketOrder() []string {
	labels := make([]string, len(statsBuckets))
	for i, b := range statsBuckets {
		labels[i] = b.Label
	}
	return labels
}

type fileEntry struct {
	path    string
	size    int64
	modTime time.Time
}

// Stats aggregates file counts, sizes, categories, size buckets and
// the top-10 largest, oldest and newest files over the whole subtree
// under Source. Ties in the top lists keep traversal order.
func (o *Organizer) Stats() (*models.DirectoryStats, error) {
	if err := o.checkSource(); err != nil {
		return nil, err
	}

	stats := &models.DirectoryStats{
		Categories:  make(map[string]int64),
		SizeBuckets: make(map[string]int64),
	}

	var files []fileEntry
	err := filepath.WalkDir(o.Source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		stats.TotalFiles++
		stats.TotalSize += info.Size()
		stats.Categories[o.Classifier.Categorize(d.Name())]++
		stats.SizeBuckets[sizeLabel(statsBuckets, info.Size())]++

		files = append(files, fileEntry{path: path, size: info.Size(), modTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", o.Source, err)
	}

	largest := sortedCopy(files, func(a, b fileEntry) bool { return a.size > b.size })
	for _, f := range topN(largest, 10) {
		stats.LargestFiles = append(stats.LargestFiles, models.FileValue{
			Path:  f.path,
			Value: app.BytesToHuman(f.size),
		})
	}

	oldest := sortedCopy(files, func(a, b fileEntry) bool { return a.modTime.Before(b.modTime) })
	for _, f := range topN(oldest, 10) {
		stats.OldestFiles = append(stats.OldestFiles, models.FileValue{
			Path:  f.path,
			Value: f.modTime.Format(statsTimeLayout),
		})
	}

	newest := sortedCopy(files, func(a, b fileEntry) bool { return a.modTime.After(b.modTime) })
	for _, f := range topN(newest, 10) {
		stats.NewestFiles = append(stats.NewestFiles, models.FileValue{
			Path:  f.path,
			Value: f.modTime.Format(statsTimeLayout),
		})
	}

	return stats, nil
}

// sortedCopy stable-sorts a copy of files, leaving the traversal-order
// slice intact for the next ranking.
func sortedCopy(files []fileEntry, less func(a, b fileEntry) bool) []fileEntry {
	out := make([]fileEntry, len(files))
	copy(out, files)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func topN(files []fileEntry, n int) []fileEntry {
	if len(files) > n {
		return files[:n]
	}
	return files
}
