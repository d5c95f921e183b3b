package models

import "time"

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
)

// Valid reports whether the status is one of the known values
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectOnHold, ProjectCompleted:
		return true
	}
	return false
}

// Priority is shared between projects and tasks
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether the priority is one of the known values
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Project represents a tracked project with its owner and team resolved
// against the user collection at creation time
type Project struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        ProjectStatus `json:"status"`
	Priority      Priority      `json:"priority"`
	StartDate     time.Time     `json:"startDate"`
	EndDate       time.Time     `json:"endDate"`
	Progress      int           `json:"progress"` // 0-100
	Owner         User          `json:"owner"`
	Team          []User        `json:"team"`
	Color         string        `json:"color"`
	EstimateHours float64       `json:"estimateHours,omitempty"`
	ActualHours   float64       `json:"actualHours"`
}
