package organizer

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dunamismax/go-cli/models"
)

// hashChunkSize bounds memory while hashing. Files stream through the
// digest in chunks of this size regardless of their length.
const hashChunkSize = 4096

// KeepStrategy selects which file of a duplicate group survives a
// removal.
type KeepStrategy string

const (
	KeepFirst  KeepStrategy = "first"  // first file encountered during the scan
	KeepOldest KeepStrategy = "oldest" // file with the earliest modification time
	KeepPath   KeepStrategy = "path"   // lexically smallest path
)

// FindDuplicates walks the whole subtree under Source and groups files
// whose content hashes identically. Only groups with at least two
// members are returned, ordered by when their first member was seen.
// Within a group the first path is the first one encountered.
func (o *Organizer) FindDuplicates() ([]models.DuplicateGroup, error) {
	if err := o.checkSource(); err != nil {
		return nil, err
	}

	byHash := make(map[string]*models.DuplicateGroup)
	var order []string

	err := filepath.WalkDir(o.Source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		digest, err := hashFile(path)
		if err != nil {
			return err
		}
		if o.Progress != nil {
			o.Progress(path)
		}

		group, ok := byHash[digest]
		if !ok {
			group = &models.DuplicateGroup{Hash: digest}
			byHash[digest] = group
			order = append(order, digest)
		}
		group.Paths = append(group.Paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", o.Source, err)
	}

	var groups []models.DuplicateGroup
	for _, digest := range order {
		if group := byHash[digest]; len(group.Paths) > 1 {
			groups = append(groups, *group)
		}
	}
	return groups, nil
}

// CountFiles counts the regular files under Source, including nested
// ones. Progress bars use it to size the duplicate scan upfront.
func (o *Organizer) CountFiles() (int, error) {
	if err := o.checkSource(); err != nil {
		return 0, err
	}
	count := 0
	err := filepath.WalkDir(o.Source, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", o.Source, err)
	}
	return count, nil
}

// ApplyKeepStrategy reorders each group so the file to keep sits at
// index zero. KeepFirst leaves the scan order untouched.
func ApplyKeepStrategy(groups []models.DuplicateGroup, keep KeepStrategy) error {
	switch keep {
	case "", KeepFirst:
		return nil
	case KeepOldest:
		for i := range groups {
			paths := groups[i].Paths
			oldest := 0
			var oldestTime time.Time
			for j, path := range paths {
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("failed to stat %s: %w", path, err)
				}
				if j == 0 || info.ModTime().Before(oldestTime) {
					oldest = j
					oldestTime = info.ModTime()
				}
			}
			paths[0], paths[oldest] = paths[oldest], paths[0]
		}
		return nil
	case KeepPath:
		for i := range groups {
			paths := groups[i].Paths
			smallest := 0
			for j, path := range paths {
				if path < paths[smallest] {
					smallest = j
				}
			}
			paths[0], paths[smallest] = paths[smallest], paths[0]
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKeepStrategy, keep)
	}
}

// RemoveDuplicates deletes every file but the first of each group and
// returns the deleted paths. Confirmation belongs to the caller; this
// only removes. Dry runs report the same paths without deleting. On
// error the work done so far stands and is reported.
func (o *Organizer) RemoveDuplicates(groups []models.DuplicateGroup) ([]string, error) {
	var removed []string
	for _, group := range groups {
		if len(group.Paths) < 2 {
			continue
		}
		for _, path := range group.Paths[1:] {
			if !o.DryRun {
				if err := os.Remove(path); err != nil {
					return removed, fmt.Errorf("failed to remove %s: %w", path, err)
				}
			}
			removed = append(removed, path)
		}
	}
	return removed, nil
}

// hashFile streams a file through MD5 in fixed-size chunks and returns
// the hex digest.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, hashChunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
