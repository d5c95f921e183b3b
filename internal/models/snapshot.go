package models

// Snapshot is the complete serialized state of all collections at one
// instant. It is the unit of persistence, export and import.
type Snapshot struct {
	Projects    []Project   `json:"projects"`
	Tasks       []Task      `json:"tasks"`
	TimeEntries []TimeEntry `json:"timeEntries"`
	Users       []User      `json:"users"`
	CurrentUser *User       `json:"currentUser"`
}
