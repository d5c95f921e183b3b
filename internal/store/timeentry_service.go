package store

import (
	"time"

	"github.com/almasgali/planhub/internal/models"
)

// CreateTimeEntryRequest holds the data needed to log hours against a
// task. An empty UserID defaults to the current user.
type CreateTimeEntryRequest struct {
	TaskID  string
	UserID  string
	Date    time.Time // defaults to today
	Hours   float64
	Comment string
}

// UpdateTimeEntryRequest is a partial update; nil fields are left as-is
type UpdateTimeEntryRequest struct {
	TaskID  *string
	UserID  *string
	Date    *time.Time
	Hours   *float64
	Comment *string
}

// CreateTimeEntry appends a time entry and recomputes the owning
// task's actual-hours total
func (s *Store) CreateTimeEntry(req CreateTimeEntryRequest) (*models.TimeEntry, error) {
	if req.Hours <= 0 {
		return nil, &ValidationError{Field: "hours", Reason: "must be greater than zero"}
	}

	if _, err := s.taskByID(req.TaskID); err != nil {
		return nil, err
	}

	userID := req.UserID
	if userID == "" {
		if s.currentUser == nil {
			return nil, &ValidationError{Field: "userId", Reason: "required when no current user is set"}
		}
		userID = s.currentUser.ID
	}
	if _, ok := s.userByID(userID); !ok {
		return nil, &ReferenceError{Entity: "user", ID: userID}
	}

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}

	entry := models.TimeEntry{
		ID:        s.newID(),
		TaskID:    req.TaskID,
		UserID:    userID,
		Date:      models.Day(date),
		Hours:     req.Hours,
		Comment:   req.Comment,
		CreatedAt: s.now(),
	}

	s.timeEntries = append(s.timeEntries, entry)
	s.recomputeActualHours(entry.TaskID)
	s.persist()
	return &entry, nil
}

// UpdateTimeEntry merges the non-nil fields of a partial update into
// an existing entry. Actual hours are recomputed uniformly on every
// entry mutation, covering hour edits and moves between tasks.
func (s *Store) UpdateTimeEntry(id string, req UpdateTimeEntryRequest) (*models.TimeEntry, error) {
	idx := -1
	for i := range s.timeEntries {
		if s.timeEntries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotFoundError{Entity: "time entry", ID: id}
	}

	e := s.timeEntries[idx]
	previousTask := e.TaskID

	if req.TaskID != nil {
		if _, err := s.taskByID(*req.TaskID); err != nil {
			return nil, err
		}
		e.TaskID = *req.TaskID
	}
	if req.UserID != nil {
		if _, ok := s.userByID(*req.UserID); !ok {
			return nil, &ReferenceError{Entity: "user", ID: *req.UserID}
		}
		e.UserID = *req.UserID
	}
	if req.Date != nil {
		e.Date = models.Day(*req.Date)
	}
	if req.Hours != nil {
		if *req.Hours <= 0 {
			return nil, &ValidationError{Field: "hours", Reason: "must be greater than zero"}
		}
		e.Hours = *req.Hours
	}
	if req.Comment != nil {
		e.Comment = *req.Comment
	}

	s.timeEntries[idx] = e
	s.recomputeActualHours(previousTask)
	if e.TaskID != previousTask {
		s.recomputeActualHours(e.TaskID)
	}
	s.persist()
	return &e, nil
}

// DeleteTimeEntry removes an entry and recomputes the owning task's
// actual-hours total from the remaining entries
func (s *Store) DeleteTimeEntry(id string) error {
	idx := -1
	for i := range s.timeEntries {
		if s.timeEntries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Entity: "time entry", ID: id}
	}

	taskID := s.timeEntries[idx].TaskID
	s.timeEntries = append(s.timeEntries[:idx], s.timeEntries[idx+1:]...)
	s.recomputeActualHours(taskID)
	s.persist()
	return nil
}

// recomputeActualHours rebuilds a task's actual-hours total as the sum
// over all of its surviving entries. The total is always recomputed
// from scratch rather than adjusted incrementally, so it cannot drift.
func (s *Store) recomputeActualHours(taskID string) {
	var total float64
	for _, e := range s.timeEntries {
		if e.TaskID == taskID {
			total += e.Hours
		}
	}
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].ActualHours = total
			return
		}
	}
}

// taskByID resolves a task id, erroring with a ReferenceError
func (s *Store) taskByID(id string) (models.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, &ReferenceError{Entity: "task", ID: id}
}
