package store

import (
	"encoding/json"

	"github.com/almasgali/planhub/internal/models"
)

// ExportSnapshot serializes the entire state as an indented JSON
// document
func (s *Store) ExportSnapshot() ([]byte, error) {
	return json.MarshalIndent(s.snapshot(), "", "  ")
}

// ImportSnapshot parses a snapshot document and wholesale-replaces the
// in-memory state with it. On a parse failure the state is left
// untouched and a ParseError is returned. No field-level validation is
// performed on the imported collections.
func (s *Store) ImportSnapshot(data []byte) error {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return &ParseError{Err: err}
	}
	s.apply(snap)
	s.persist()
	return nil
}

// ResetToDefaults clears all collections and reseeds the default user
// set. Destructive; callers are expected to confirm before invoking.
func (s *Store) ResetToDefaults() {
	s.seedDefaults()
	s.persist()
}

// seedDefaults installs the initial user roster with the first user as
// the acting one
func (s *Store) seedDefaults() {
	users := []models.User{
		{
			ID:    s.newID(),
			Name:  "Alex Morgan",
			Email: "alex@planhub.local",
			Role:  models.RoleAdmin,
		},
		{
			ID:    s.newID(),
			Name:  "Maria Chen",
			Email: "maria@planhub.local",
			Role:  models.RoleManager,
		},
		{
			ID:    s.newID(),
			Name:  "Dmitry Orlov",
			Email: "dmitry@planhub.local",
			Role:  models.RoleMember,
		},
	}

	s.projects = []models.Project{}
	s.tasks = []models.Task{}
	s.timeEntries = []models.TimeEntry{}
	s.users = users
	s.currentUser = &users[0]
}
