package models

import "errors"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

var priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

var ErrInvalidPriority = errors.New("priority index out of range")

// PriorityFromIndex maps the 1-based wire index (1-low, 2-medium, 3-high)
// to a priority, failing instead of panicking on out-of-range input.
func PriorityFromIndex(index int) (Priority, error) {
	if index < 1 || index > len(priorities) {
		return "", ErrInvalidPriority
	}
	return priorities[index-1], nil
}

type Task struct {
	Audit

	Header      string
	Description string
	StatusID    int64
	Priority    Priority
	// UserID is the creator and sole owner of the task.
	UserID int64
}
