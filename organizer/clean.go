package organizer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CleanEmptyDirs removes directories with no entries under Source.
// Directories are visited deepest first, so a parent emptied by the
// removal of its children goes in the same pass. The source root
// itself is never removed. Dry runs report the directories that are
// empty right now without deleting anything.
func (o *Organizer) CleanEmptyDirs() ([]string, error) {
	if err := o.checkSource(); err != nil {
		return nil, err
	}

	var dirs []string
	err := filepath.WalkDir(o.Source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != o.Source {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", o.Source, err)
	}

	// Deepest first, so children are checked before their parents.
	sort.SliceStable(dirs, func(i, j int) bool {
		return pathDepth(dirs[i]) > pathDepth(dirs[j])
	})

	var removed []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return removed, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		if len(entries) > 0 {
			continue
		}
		if !o.DryRun {
			if err := os.Remove(dir); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", dir, err)
			}
		}
		removed = append(removed, dir)
	}
	return removed, nil
}

// pathDepth counts the components of a cleaned path.
func pathDepth(path string) int {
	return len(strings.Split(filepath.Clean(path), string(filepath.Separator)))
}
