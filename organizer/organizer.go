package organizer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dunamismax/go-cli/models"
)

const (
	// DefaultTargetName is the subdirectory of the source used when no
	// explicit target is given.
	DefaultTargetName = "organized"

	// DefaultDateLayout groups files by year and month when organizing
	// by date.
	DefaultDateLayout = "2006-01"
)

// BucketKey names the destination subdirectory a strategy assigns a
// file to: a category, a formatted date or a size label.
type BucketKey string

// Bucketer computes the bucket for a single file. The three organize
// strategies are three Bucketer implementations; anything matching
// this signature plugs into Organize.
type Bucketer func(name string, info fs.FileInfo) BucketKey

// Report maps each bucket to the files routed into it, in traversal
// order. Dry runs record original paths, real runs record the final
// destination paths.
type Report map[BucketKey][]string

// TotalFiles counts the files across all buckets.
func (r Report) TotalFiles() int {
	total := 0
	for _, files := range r {
		total += len(files)
	}
	return total
}

// Organizer relocates the direct children of Source into bucket
// subdirectories of Target. With DryRun set it computes the same
// report without touching the filesystem.
type Organizer struct {
	Source string
	Target string
	DryRun bool

	// Classifier decides categories for OrganizeByType and Stats.
	Classifier *Classifier

	// Progress, when set, is called once per hashed file while
	// scanning for duplicates. CLI progress bars hook in here.
	Progress func(path string)
}

// New returns an Organizer for source. An empty target selects
// DefaultTargetName inside the source.
func New(source, target string, dryRun bool) *Organizer {
	if target == "" {
		target = filepath.Join(source, DefaultTargetName)
	}
	return &Organizer{
		Source:     source,
		Target:     target,
		DryRun:     dryRun,
		Classifier: NewClassifier(nil),
	}
}

// ByType buckets files by classifier category.
func ByType(c *Classifier) Bucketer {
	return func(name string, _ fs.FileInfo) BucketKey {
		return BucketKey(c.Categorize(name))
	}
}

// ByDate buckets files by modification time rendered with layout. An
// empty layout selects DefaultDateLayout.
func ByDate(layout string) Bucketer {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return func(_ string, info fs.FileInfo) BucketKey {
		return BucketKey(info.ModTime().Format(layout))
	}
}

// BySize buckets files into the first matching size range. Nil ranges
// select DefaultSizeRanges. Malformed ranges are rejected here, before
// any file is touched.
func BySize(ranges []models.SizeRange) (Bucketer, error) {
	if ranges == nil {
		ranges = DefaultSizeRanges()
	}
	if err := ValidateSizeRanges(ranges); err != nil {
		return nil, err
	}
	return func(_ string, info fs.FileInfo) BucketKey {
		return BucketKey(sizeLabel(ranges, info.Size()))
	}, nil
}

// OrganizeByType routes files into classifier categories.
func (o *Organizer) OrganizeByType() (Report, error) {
	return o.Organize(ByType(o.Classifier))
}

// OrganizeByDate routes files into modification time buckets.
func (o *Organizer) OrganizeByDate(layout string) (Report, error) {
	return o.Organize(ByDate(layout))
}

// OrganizeBySize routes files into size buckets.
func (o *Organizer) OrganizeBySize(ranges []models.SizeRange) (Report, error) {
	bucket, err := BySize(ranges)
	if err != nil {
		return nil, err
	}
	return o.Organize(bucket)
}

// Organize routes every direct child file of Source through bucket and
// returns the report. Subdirectories and their contents stay where
// they are. Real runs create bucket directories on demand and rename
// colliding files; dry runs leave the filesystem alone.
func (o *Organizer) Organize(bucket Bucketer) (Report, error) {
	files, err := o.listSource()
	if err != nil {
		return nil, err
	}

	report := make(Report)
	for _, entry := range files {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}

		key := bucket(entry.Name(), info)
		src := filepath.Join(o.Source, entry.Name())

		if o.DryRun {
			report[key] = append(report[key], src)
			continue
		}

		destDir := filepath.Join(o.Target, string(key))
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", destDir, err)
		}
		dest, err := resolveCollision(destDir, entry.Name())
		if err != nil {
			return nil, err
		}
		if err := os.Rename(src, dest); err != nil {
			return nil, fmt.Errorf("failed to move %s: %w", src, err)
		}
		report[key] = append(report[key], dest)
	}
	return report, nil
}

// listSource returns the regular files directly under Source, in
// lexical order.
func (o *Organizer) listSource() ([]fs.DirEntry, error) {
	if err := o.checkSource(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(o.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", o.Source, err)
	}
	var files []fs.DirEntry
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, entry)
		}
	}
	return files, nil
}

// checkSource verifies that Source exists and is a directory.
func (o *Organizer) checkSource() error {
	info, err := os.Stat(o.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, o.Source)
		}
		return fmt.Errorf("failed to stat %s: %w", o.Source, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNotFound, o.Source)
	}
	return nil
}

// resolveCollision returns a free destination path inside dir for
// name, appending _1, _2, ... before the extension until no existing
// file is in the way. The existing file keeps its name and content.
func resolveCollision(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	dest := filepath.Join(dir, name)
	for counter := 1; ; counter++ {
		_, err := os.Stat(dest)
		if os.IsNotExist(err) {
			return dest, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to stat %s: %w", dest, err)
		}
		dest = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}
}
