package store

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/almasgali/planhub/internal/models"
)

// Persister stores and recalls the serialized snapshot. Load returns
// (nil, nil) when no snapshot has been written yet.
type Persister interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Store is the single authoritative in-memory representation of all
// collections. Every mutation preserves the derived-field and cascade
// invariants, then writes the full snapshot through the persister.
type Store struct {
	projects    []models.Project
	tasks       []models.Task
	timeEntries []models.TimeEntry
	users       []models.User
	currentUser *models.User

	persister Persister
	log       logrus.FieldLogger

	// overridable in tests
	now   func() time.Time
	newID func() string
}

// New creates a store and loads the persisted snapshot if one exists.
// A missing or unreadable snapshot falls back to the default seed data.
func New(p Persister, log logrus.FieldLogger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Store{
		persister: p,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}

	if p != nil {
		data, err := p.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		if data != nil {
			var snap models.Snapshot
			if err := json.Unmarshal(data, &snap); err != nil {
				// A corrupt snapshot should not brick the app
				log.WithError(err).Warn("stored snapshot is unreadable, starting from defaults")
			} else {
				s.apply(snap)
				return s, nil
			}
		}
	}

	s.seedDefaults()
	s.persist()
	return s, nil
}

// Projects returns a copy of the project collection
func (s *Store) Projects() []models.Project {
	return slices.Clone(s.projects)
}

// Tasks returns a copy of the task collection
func (s *Store) Tasks() []models.Task {
	return slices.Clone(s.tasks)
}

// TimeEntries returns a copy of the time entry collection
func (s *Store) TimeEntries() []models.TimeEntry {
	return slices.Clone(s.timeEntries)
}

// Users returns a copy of the user collection
func (s *Store) Users() []models.User {
	return slices.Clone(s.users)
}

// CurrentUser returns the acting user, or nil if none is set. The
// current user is the default actor for new time entries.
func (s *Store) CurrentUser() *models.User {
	if s.currentUser == nil {
		return nil
	}
	u := *s.currentUser
	return &u
}

// SetCurrentUser switches the acting user
func (s *Store) SetCurrentUser(id string) error {
	u, ok := s.userByID(id)
	if !ok {
		return &NotFoundError{Entity: "user", ID: id}
	}
	s.currentUser = &u
	s.persist()
	return nil
}

// userByID resolves a user id against the collection
func (s *Store) userByID(id string) (models.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// LookupUser resolves a user from a CLI selector: exact id, unique id
// prefix, exact email, or case-insensitive exact name.
func (s *Store) LookupUser(selector string) (*models.User, error) {
	sel := strings.TrimSpace(selector)
	var match *models.User
	for i := range s.users {
		u := s.users[i]
		if u.ID == sel || strings.EqualFold(u.Email, sel) || strings.EqualFold(u.Name, sel) {
			return &u, nil
		}
		if strings.HasPrefix(u.ID, sel) {
			if match != nil {
				return nil, &ValidationError{Field: "user", Reason: fmt.Sprintf("selector %q is ambiguous", sel)}
			}
			match = &u
		}
	}
	if match == nil {
		return nil, &NotFoundError{Entity: "user", ID: sel}
	}
	return match, nil
}

// LookupProject resolves a project from a CLI selector: exact id,
// unique id prefix, or case-insensitive exact title.
func (s *Store) LookupProject(selector string) (*models.Project, error) {
	sel := strings.TrimSpace(selector)
	var match *models.Project
	for i := range s.projects {
		p := s.projects[i]
		if p.ID == sel || strings.EqualFold(p.Title, sel) {
			return &p, nil
		}
		if strings.HasPrefix(p.ID, sel) {
			if match != nil {
				return nil, &ValidationError{Field: "project", Reason: fmt.Sprintf("selector %q is ambiguous", sel)}
			}
			match = &p
		}
	}
	if match == nil {
		return nil, &NotFoundError{Entity: "project", ID: sel}
	}
	return match, nil
}

// LookupTask resolves a task from a CLI selector: exact id, unique id
// prefix, or case-insensitive exact title.
func (s *Store) LookupTask(selector string) (*models.Task, error) {
	sel := strings.TrimSpace(selector)
	var match *models.Task
	for i := range s.tasks {
		t := s.tasks[i]
		if t.ID == sel || strings.EqualFold(t.Title, sel) {
			return &t, nil
		}
		if strings.HasPrefix(t.ID, sel) {
			if match != nil {
				return nil, &ValidationError{Field: "task", Reason: fmt.Sprintf("selector %q is ambiguous", sel)}
			}
			match = &t
		}
	}
	if match == nil {
		return nil, &NotFoundError{Entity: "task", ID: sel}
	}
	return match, nil
}

// snapshot assembles the full serializable state
func (s *Store) snapshot() models.Snapshot {
	return models.Snapshot{
		Projects:    slices.Clone(s.projects),
		Tasks:       slices.Clone(s.tasks),
		TimeEntries: slices.Clone(s.timeEntries),
		Users:       slices.Clone(s.users),
		CurrentUser: s.CurrentUser(),
	}
}

// apply wholesale-replaces in-memory state with a parsed snapshot
func (s *Store) apply(snap models.Snapshot) {
	s.projects = snap.Projects
	s.tasks = snap.Tasks
	s.timeEntries = snap.TimeEntries
	s.users = snap.Users
	s.currentUser = snap.CurrentUser
}

// persist writes the snapshot through after a state transition. A
// storage failure is reported as a warning, never fatal to the
// in-memory operation.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	data, err := json.Marshal(s.snapshot())
	if err == nil {
		err = s.persister.Save(data)
	}
	if err != nil {
		s.log.WithError(err).Warn("failed to persist snapshot")
	}
}
