package models

import "time"

// TimeEntry represents hours logged against a task for one calendar day
type TimeEntry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	Date      time.Time `json:"date"` // normalized to midnight UTC
	Hours     float64   `json:"hours"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Day normalizes a timestamp to its calendar day (midnight UTC)
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
