package organizer

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func TestStats(t *testing.T) {
	dir, cleanup := makeTestDir(t)
	defer cleanup()

	oldTime := time.Now().Add(-72 * time.Hour).Truncate(time.Minute)
	midTime := time.Now().Add(-48 * time.Hour).Truncate(time.Minute)
	newTime := time.Now().Add(-24 * time.Hour).Truncate(time.Minute)

	small := filepath.Join(dir, "small.txt")
	mid := filepath.Join(dir, "mid.jpg")
	big := filepath.Join(dir, "nested", "big.csv")
	writeSized(t, small, 500)
	writeSized(t, mid, 2048)
	writeSized(t, big, 2*1024*1024)
	touch(t, small, oldTime)
	touch(t, mid, midTime)
	touch(t, big, newTime)

	o := New(dir, "", false)
	stats, err := o.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.TotalFiles != 3 {
		t.Errorf("TotalFiles = %d, want 3", stats.TotalFiles)
	}
	if want := int64(500 + 2048 + 2*1024*1024); stats.TotalSize != want {
		t.Errorf("TotalSize = %d, want %d", stats.TotalSize, want)
	}

	categories := map[string]int64{"documents": 1, "images": 1, "spreadsheets": 1}
	for category, count := range categories {
		if stats.Categories[category] != count {
			t.Errorf("Categories[%s] = %d, want %d", category, stats.Categories[category], count)
		}
	}

	buckets := map[string]int64{"< 1KB": 1, "1KB - 1MB": 1, "1MB - 100MB": 1}
	for label, count := range buckets {
		if stats.SizeBuckets[label] != count {
			t.Errorf("SizeBuckets[%q] = %d, want %d", label, stats.SizeBuckets[label], count)
		}
	}

	if len(stats.LargestFiles) != 3 {
		t.Fatalf("LargestFiles has %d entries, want 3", len(stats.LargestFiles))
	}
	if stats.LargestFiles[0].Path != big || stats.LargestFiles[0].Value != "2.0 MB" {
		t.Errorf("LargestFiles[0] = %+v, want big.csv at 2.0 MB", stats.LargestFiles[0])
	}

	if stats.OldestFiles[0].Path != small {
		t.Errorf("OldestFiles[0] = %s, want small.txt", stats.OldestFiles[0].Path)
	}
	if want := oldTime.Format("2006-01-02 15:04"); stats.OldestFiles[0].Value != want {
		t.Errorf("OldestFiles[0].Value = %q, want %q", stats.OldestFiles[0].Value, want)
	}
	if stats.NewestFiles[0].Path != big {
		t.Errorf("NewestFiles[0] = %s, want big.csv", stats.NewestFiles[0].Path)
	}
}

func TestStatsEmptyDir(t *testing.T) {
	dir, cleanup := makeTestDir(t)
	defer cleanup()

	o := New(dir, "", false)
	stats, err := o.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if stats.TotalFiles != 0 || stats.TotalSize != 0 {
		t.Errorf("empty dir: files %d size %d", stats.TotalFiles, stats.TotalSize)
	}
	if len(stats.Categories) != 0 || len(stats.SizeBuckets) != 0 {
		t.Errorf("empty dir has non-empty maps: %+v", stats)
	}
	if len(stats.LargestFiles)+len(stats.OldestFiles)+len(stats.NewestFiles) != 0 {
		t.Errorf("empty dir has top lists: %+v", stats)
	}
}

func TestStatsTopListsCapAtTen(t *testing.T) {
	dir, cleanup := makeTestDir(t)
	defer cleanup()

	for i := 0; i < 12; i++ {
		writeSized(t, filepath.Join(dir, fmt.Sprintf("file_%02d.txt", i)), 100+i)
	}

	o := New(dir, "", false)
	stats, err := o.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if len(stats.LargestFiles) != 10 {
		t.Errorf("LargestFiles has %d entries, want 10", len(stats.LargestFiles))
	}
	// file_11 is the biggest at 111 bytes.
	if want := filepath.Join(dir, "file_11.txt"); stats.LargestFiles[0].Path != want {
		t.Errorf("LargestFiles[0] = %s, want %s", stats.LargestFiles[0].Path, want)
	}
}

func TestStatsBucketOrder(t *testing.T) {
	want := []string{"< 1KB", "1KB - 1MB", "1MB - 100MB", "> 100MB"}
	got := StatsBucketOrder()
	if len(got) != len(want) {
		t.Fatalf("StatsBucketOrder() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("StatsBucketOrder()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStatsMissingDir(t *testing.T) {
	o := New("/nonexistent/path", "", false)
	if _, err := o.Stats(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
