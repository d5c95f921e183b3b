package models

import "time"

// TaskStatus is the kanban column a task lives in. All transitions are
// allowed in any direction; there is no enforced workflow ordering.
type TaskStatus string

const (
	StatusBacklog    TaskStatus = "backlog"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// Valid reports whether the status is one of the known values
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// TaskStatuses lists the statuses in kanban column order
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusBacklog, StatusInProgress, StatusReview, StatusDone}
}

// Task represents a unit of work inside a project
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Status        TaskStatus `json:"status"`
	Priority      Priority   `json:"priority"`
	Assignee      *User      `json:"assignee,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	ProjectID     string     `json:"projectId"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Tags          []string   `json:"tags"`
	EstimateHours float64    `json:"estimateHours,omitempty"`

	// ActualHours is derived: the sum of hours over the task's time
	// entries, recomputed by the store on every entry mutation.
	ActualHours float64 `json:"actualHours"`
}

// Overdue reports whether the task has a due date in the past relative
// to now and is not done. Tasks without a due date are never overdue.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusDone {
		return false
	}
	return t.DueDate.Before(now)
}
