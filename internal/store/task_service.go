package store

import (
	"strings"
	"time"

	"github.com/almasgali/planhub/internal/models"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	Title         string
	Description   string
	Status        models.TaskStatus // defaults to backlog
	Priority      models.Priority   // defaults to medium
	AssigneeID    string            // optional
	DueDate       *time.Time
	ProjectID     string
	Tags          []string
	EstimateHours float64
}

// UpdateTaskRequest is a partial update; nil fields are left as-is.
// Setting AssigneeID to the empty string clears the assignee.
type UpdateTaskRequest struct {
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	Priority      *models.Priority
	AssigneeID    *string
	DueDate       *time.Time
	ClearDueDate  bool
	Tags          *[]string
	EstimateHours *float64
}

// CreateTask appends a new task with a store-assigned id and both
// timestamps set to the current instant
func (s *Store) CreateTask(req CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}

	status := req.Status
	if status == "" {
		status = models.StatusBacklog
	}
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "must be backlog, in-progress, review or done"}
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, &ValidationError{Field: "priority", Reason: "must be low, medium, high or urgent"}
	}

	if _, err := s.projectByID(req.ProjectID); err != nil {
		return nil, err
	}

	var assignee *models.User
	if req.AssigneeID != "" {
		u, ok := s.userByID(req.AssigneeID)
		if !ok {
			return nil, &ReferenceError{Entity: "user", ID: req.AssigneeID}
		}
		assignee = &u
	}

	now := s.now()
	task := models.Task{
		ID:            s.newID(),
		Title:         req.Title,
		Description:   req.Description,
		Status:        status,
		Priority:      priority,
		Assignee:      assignee,
		DueDate:       req.DueDate,
		ProjectID:     req.ProjectID,
		CreatedAt:     now,
		UpdatedAt:     now,
		Tags:          req.Tags,
		EstimateHours: req.EstimateHours,
		ActualHours:   0,
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	s.tasks = append(s.tasks, task)
	s.persist()
	return &task, nil
}

// UpdateTask merges the non-nil fields of a partial update into an
// existing task. UpdatedAt is refreshed regardless of which fields
// changed.
func (s *Store) UpdateTask(id string, req UpdateTaskRequest) (*models.Task, error) {
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotFoundError{Entity: "task", ID: id}
	}

	t := s.tasks[idx]
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, &ValidationError{Field: "title", Reason: "required"}
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, &ValidationError{Field: "status", Reason: "must be backlog, in-progress, review or done"}
		}
		t.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, &ValidationError{Field: "priority", Reason: "must be low, medium, high or urgent"}
		}
		t.Priority = *req.Priority
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == "" {
			t.Assignee = nil
		} else {
			u, ok := s.userByID(*req.AssigneeID)
			if !ok {
				return nil, &ReferenceError{Entity: "user", ID: *req.AssigneeID}
			}
			t.Assignee = &u
		}
	}
	if req.ClearDueDate {
		t.DueDate = nil
	} else if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.Tags != nil {
		t.Tags = *req.Tags
	}
	if req.EstimateHours != nil {
		t.EstimateHours = *req.EstimateHours
	}
	t.UpdatedAt = s.now()

	s.tasks[idx] = t
	s.persist()
	return &t, nil
}

// DeleteTask removes a task and cascades the delete to its time
// entries within the same state transition
func (s *Store) DeleteTask(id string) error {
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Entity: "task", ID: id}
	}

	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)

	kept := s.timeEntries[:0]
	for _, e := range s.timeEntries {
		if e.TaskID == id {
			continue
		}
		kept = append(kept, e)
	}
	s.timeEntries = kept

	s.persist()
	return nil
}

// projectByID resolves a project id, erroring with a ReferenceError
func (s *Store) projectByID(id string) (models.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, &ReferenceError{Entity: "project", ID: id}
}
