package organizer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Settle parameters for files that are still being written when their
// create event arrives. A file counts as complete once its size stops
// changing between polls.
const (
	settleInterval = 500 * time.Millisecond
	settleAttempts = 8
)

// Watch organizes new direct children of Source as they appear,
// routing each through bucket. It blocks until ctx is done. Files
// still growing are left alone until their size settles; failures on
// individual files are logged and skipped so the watch keeps running.
func (o *Organizer) Watch(ctx context.Context, bucket Bucketer) error {
	if err := o.checkSource(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(o.Source); err != nil {
		return fmt.Errorf("failed to watch %s: %w", o.Source, err)
	}
	log.Printf("watching %s", o.Source)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if err := o.organizeNew(event.Name, bucket); err != nil {
				log.Printf("skipping %s: %v", event.Name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error on %s: %v", o.Source, err)
		}
	}
}

// organizeNew settles and relocates one newly appeared file. Events
// for directories and for paths that are not direct children of the
// source are ignored.
func (o *Organizer) organizeNew(path string, bucket Bucketer) error {
	if filepath.Dir(path) != filepath.Clean(o.Source) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Moved or deleted before we got to it.
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}

	if err := waitSettled(path); err != nil {
		return err
	}
	info, err = os.Stat(path)
	if err != nil {
		return err
	}

	key := bucket(filepath.Base(path), info)
	destDir := filepath.Join(o.Target, string(key))
	if filepath.Clean(destDir) == filepath.Clean(o.Source) {
		// Moving into the watched directory itself would loop.
		return nil
	}

	if o.DryRun {
		log.Printf("dry run: would move %s to %s", path, destDir)
		return nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", destDir, err)
	}
	dest, err := resolveCollision(destDir, filepath.Base(path))
	if err != nil {
		return err
	}
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("failed to move %s: %w", path, err)
	}
	log.Printf("moved %s to %s", path, dest)
	return nil
}

// waitSettled polls until the file size stops changing between polls.
func waitSettled(path string) error {
	prev := int64(-1)
	for i := 0; i < settleAttempts; i++ {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if info.Size() == prev {
			return nil
		}
		prev = info.Size()
		time.Sleep(settleInterval)
	}
	return fmt.Errorf("file %s is still changing", path)
}
