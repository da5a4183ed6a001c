package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dunamismax/go-cli/models"
)

// maxTitleLength bounds item titles.
const maxTitleLength = 200

var (
	ErrItemNotFound    = errors.New("todo item not found")
	ErrInvalidTitle    = errors.New("invalid title")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
)

// List holds todo items and hands out sequential IDs. IDs are never
// reused, even after deletions.
type List struct {
	Items  []models.TodoItem `json:"items"`
	NextID int               `json:"next_id"`
}

// NewList returns an empty list.
func NewList() *List {
	return &List{NextID: 1}
}

// Add appends a new pending item and returns it. An empty priority
// defaults to medium.
func (l *List) Add(title, description string, priority models.TodoPriority, due *time.Time, tags []string) (*models.TodoItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidTitle)
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("%w: title longer than %d characters", ErrInvalidTitle, maxTitleLength)
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	l.Items = append(l.Items, models.TodoItem{
		ID:          l.NextID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
		DueDate:     due,
		Tags:        tags,
	})
	l.NextID++
	return &l.Items[len(l.Items)-1], nil
}

// Get returns the item with the given ID.
func (l *List) Get(id int) (*models.TodoItem, error) {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrItemNotFound, id)
}

// Update describes a partial change to an item. Nil fields are left
// untouched; Tags replaces the whole tag list when non-nil.
type Update struct {
	Title       *string
	Description *string
	Priority    *models.TodoPriority
	Status      *models.TodoStatus
	DueDate     *time.Time
	Tags        []string
}

// Apply updates an item in place and stamps UpdatedAt.
func (l *List) Apply(id int, u Update) (*models.TodoItem, error) {
	item, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidTitle)
		}
		if len(title) > maxTitleLength {
			return nil, fmt.Errorf("%w: title longer than %d characters", ErrInvalidTitle, maxTitleLength)
		}
		item.Title = title
	}
	if u.Description != nil {
		item.Description = *u.Description
	}
	if u.Priority != nil {
		if !models.ValidPriority(*u.Priority) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, *u.Priority)
		}
		item.Priority = *u.Priority
	}
	if u.Status != nil {
		if !models.ValidStatus(*u.Status) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *u.Status)
		}
		item.Status = *u.Status
	}
	if u.DueDate != nil {
		item.DueDate = u.DueDate
	}
	if u.Tags != nil {
		item.Tags = u.Tags
	}

	now := time.Now()
	item.UpdatedAt = &now
	return item, nil
}

// Delete removes the item with the given ID.
func (l *List) Delete(id int) error {
	for i := range l.Items {
		if l.Items[i].ID == id {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
}

// Complete marks an item as completed and stamps CompletedAt.
func (l *List) Complete(id int) (*models.TodoItem, error) {
	item, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item.Status = models.StatusCompleted
	item.CompletedAt = &now
	item.UpdatedAt = &now
	return item, nil
}

// Reopen puts a completed item back to pending and clears CompletedAt.
func (l *List) Reopen(id int) (*models.TodoItem, error) {
	item, err := l.Get(id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item.Status = models.StatusPending
	item.CompletedAt = nil
	item.UpdatedAt = &now
	return item, nil
}

// Filter returns the items matching every given criterion. Zero
// values mean no filtering on that field.
func (l *List) Filter(status models.TodoStatus, priority models.TodoPriority, tag string) []models.TodoItem {
	var out []models.TodoItem
	for _, item := range l.Items {
		if status != "" && item.Status != status {
			continue
		}
		if priority != "" && item.Priority != priority {
			continue
		}
		if tag != "" && !hasTag(item.Tags, tag) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ClearCompleted removes all completed items and reports how many
// went away.
func (l *List) ClearCompleted() int {
	var kept []models.TodoItem
	removed := 0
	for _, item := range l.Items {
		if item.Status == models.StatusCompleted {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	l.Items = kept
	return removed
}

// Stats summarizes the list. The completion rate is a percentage and
// zero for an empty list.
func (l *List) Stats() models.TodoStats {
	stats := models.TodoStats{Total: len(l.Items)}
	for _, item := range l.Items {
		switch item.Status {
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
