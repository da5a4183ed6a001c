package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var debugEnabled bool

// SetupLogging tees the standard logger to stdout and a per-app log
// file under logsDir. The returned closer releases the file.
func SetupLogging(logsDir, appName string, debug bool) (func() error, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logsDir, SanitizeFilename(appName)+".log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, file))
	log.SetFlags(log.Ldate | log.Ltime)
	debugEnabled = debug

	return file.Close, nil
}

// Debugf logs only when debug logging was enabled at setup.
func Debugf(format string, args ...any) {
	if debugEnabled {
		log.Printf("DEBUG "+format, args...)
	}
}
