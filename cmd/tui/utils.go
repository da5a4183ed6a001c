package main

import "github.com/dunamismax/go-cli/models"

// statusLabel renders a status for a table cell.
func statusLabel(status models.TodoStatus) string {
	switch status {
	case models.StatusCompleted:
		return "✓ done"
	case models.StatusInProgress:
		return "◐ doing"
	case models.StatusCancelled:
		return "✗ cancelled"
	}
	return "○ pending"
}
