package store

import (
	"strings"
	"time"

	"github.com/almasgali/planhub/internal/models"
)

// CreateProjectRequest holds the data needed to create a new project
type CreateProjectRequest struct {
	Title         string
	Description   string
	Status        models.ProjectStatus // defaults to active
	Priority      models.Priority      // defaults to medium
	StartDate     time.Time
	EndDate       time.Time
	OwnerID       string
	TeamIDs       []string
	Color         string
	EstimateHours float64
}

// UpdateProjectRequest is a partial update; nil fields are left as-is
type UpdateProjectRequest struct {
	Title         *string
	Description   *string
	Status        *models.ProjectStatus
	Priority      *models.Priority
	StartDate     *time.Time
	EndDate       *time.Time
	Progress      *int
	OwnerID       *string
	TeamIDs       *[]string
	Color         *string
	EstimateHours *float64
}

// CreateProject appends a new project after resolving its owner and
// team against the user collection. An unresolved owner or team member
// fails loudly with a ReferenceError; nothing partially-formed is ever
// added.
func (s *Store) CreateProject(req CreateProjectRequest) (*models.Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}

	status := req.Status
	if status == "" {
		status = models.ProjectActive
	}
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: "must be active, on-hold or completed"}
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, &ValidationError{Field: "priority", Reason: "must be low, medium, high or urgent"}
	}

	owner, ok := s.userByID(req.OwnerID)
	if !ok {
		return nil, &ReferenceError{Entity: "user", ID: req.OwnerID}
	}

	team, err := s.resolveTeam(req.TeamIDs)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		ID:            s.newID(),
		Title:         req.Title,
		Description:   req.Description,
		Status:        status,
		Priority:      priority,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Progress:      0,
		Owner:         owner,
		Team:          team,
		Color:         req.Color,
		EstimateHours: req.EstimateHours,
		ActualHours:   0,
	}

	s.projects = append(s.projects, project)
	s.persist()
	return &project, nil
}

// UpdateProject merges the non-nil fields of a partial update into an
// existing project
func (s *Store) UpdateProject(id string, req UpdateProjectRequest) (*models.Project, error) {
	idx := -1
	for i := range s.projects {
		if s.projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotFoundError{Entity: "project", ID: id}
	}

	p := s.projects[idx]
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, &ValidationError{Field: "title", Reason: "required"}
		}
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, &ValidationError{Field: "status", Reason: "must be active, on-hold or completed"}
		}
		p.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, &ValidationError{Field: "priority", Reason: "must be low, medium, high or urgent"}
		}
		p.Priority = *req.Priority
	}
	if req.StartDate != nil {
		p.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		p.EndDate = *req.EndDate
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return nil, &ValidationError{Field: "progress", Reason: "must be between 0 and 100"}
		}
		p.Progress = *req.Progress
	}
	if req.OwnerID != nil {
		owner, ok := s.userByID(*req.OwnerID)
		if !ok {
			return nil, &ReferenceError{Entity: "user", ID: *req.OwnerID}
		}
		p.Owner = owner
	}
	if req.TeamIDs != nil {
		team, err := s.resolveTeam(*req.TeamIDs)
		if err != nil {
			return nil, err
		}
		p.Team = team
	}
	if req.Color != nil {
		p.Color = *req.Color
	}
	if req.EstimateHours != nil {
		p.EstimateHours = *req.EstimateHours
	}

	s.projects[idx] = p
	s.persist()
	return &p, nil
}

// DeleteProject removes a project and cascades the delete to its tasks
// and their time entries. The cascade is applied within one state
// transition, so no intermediate orphaned state is ever observable.
func (s *Store) DeleteProject(id string) error {
	idx := -1
	for i := range s.projects {
		if s.projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Entity: "project", ID: id}
	}

	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)

	removedTasks := make(map[string]bool)
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ProjectID == id {
			removedTasks[t.ID] = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept

	keptEntries := s.timeEntries[:0]
	for _, e := range s.timeEntries {
		if removedTasks[e.TaskID] {
			continue
		}
		keptEntries = append(keptEntries, e)
	}
	s.timeEntries = keptEntries

	s.persist()
	return nil
}

// resolveTeam maps team member ids to users, failing on the first
// unknown id
func (s *Store) resolveTeam(ids []string) ([]models.User, error) {
	team := make([]models.User, 0, len(ids))
	for _, id := range ids {
		u, ok := s.userByID(id)
		if !ok {
			return nil, &ReferenceError{Entity: "user", ID: id}
		}
		team = append(team, u)
	}
	return team, nil
}
