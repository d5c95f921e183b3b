package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almasgali/planhub/internal/models"
)

// memoryPersister captures snapshot writes for assertions
type memoryPersister struct {
	data    []byte
	saves   int
	failing bool
}

func (m *memoryPersister) Load() ([]byte, error) {
	return m.data, nil
}

func (m *memoryPersister) Save(data []byte) error {
	if m.failing {
		return errors.New("disk full")
	}
	m.saves++
	m.data = data
	return nil
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(nil, nil)
	require.NoError(t, err)
	return s
}

func seedProject(t *testing.T, s *Store) *models.Project {
	t.Helper()
	owner := s.Users()[0]
	p, err := s.CreateProject(CreateProjectRequest{
		Title:   "Website redesign",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)
	return p
}

func seedTask(t *testing.T, s *Store, projectID, title string) *models.Task {
	t.Helper()
	task, err := s.CreateTask(CreateTaskRequest{Title: title, ProjectID: projectID})
	require.NoError(t, err)
	return task
}

func TestNewSeedsDefaults(t *testing.T) {
	s := newTestStore(t)

	users := s.Users()
	require.Len(t, users, 3)
	assert.Equal(t, models.RoleAdmin, users[0].Role)

	current := s.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, users[0].ID, current.ID)

	assert.Empty(t, s.Projects())
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.TimeEntries())
}

func TestNewLoadsStoredSnapshot(t *testing.T) {
	first, err := New(&memoryPersister{}, nil)
	require.NoError(t, err)
	p := seedProject(t, first)

	data, err := first.ExportSnapshot()
	require.NoError(t, err)

	second, err := New(&memoryPersister{data: data}, nil)
	require.NoError(t, err)

	require.Len(t, second.Projects(), 1)
	assert.Equal(t, p.ID, second.Projects()[0].ID)
}

func TestNewRecoversFromCorruptSnapshot(t *testing.T) {
	s, err := New(&memoryPersister{data: []byte("{not json")}, nil)
	require.NoError(t, err)
	assert.Len(t, s.Users(), 3)
}

func TestCreateProject(t *testing.T) {
	t.Run("initializes derived fields", func(t *testing.T) {
		s := newTestStore(t)
		users := s.Users()

		p, err := s.CreateProject(CreateProjectRequest{
			Title:   "API v2",
			OwnerID: users[0].ID,
			TeamIDs: []string{users[1].ID, users[2].ID},
		})
		require.NoError(t, err)

		assert.Equal(t, 0, p.Progress)
		assert.Equal(t, 0.0, p.ActualHours)
		assert.Equal(t, models.ProjectActive, p.Status)
		assert.Equal(t, models.PriorityMedium, p.Priority)
		assert.Equal(t, users[0].ID, p.Owner.ID)
		assert.Len(t, p.Team, 2)
		assert.NotEmpty(t, p.ID)
	})

	t.Run("unknown owner fails loudly and adds nothing", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.CreateProject(CreateProjectRequest{Title: "Ghost", OwnerID: "nope"})
		var refErr *ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, "user", refErr.Entity)

		assert.Empty(t, s.Projects(), "no partially-formed project may be added")
	})

	t.Run("unknown team member fails loudly", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.CreateProject(CreateProjectRequest{
			Title:   "Ghost",
			OwnerID: s.Users()[0].ID,
			TeamIDs: []string{"nope"},
		})
		var refErr *ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Empty(t, s.Projects())
	})

	t.Run("missing title is a validation error", func(t *testing.T) {
		s := newTestStore(t)

		_, err := s.CreateProject(CreateProjectRequest{Title: "  ", OwnerID: s.Users()[0].ID})
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "title", valErr.Field)
	})
}

func TestUpdateProject(t *testing.T) {
	t.Run("partial merge leaves other fields alone", func(t *testing.T) {
		s := newTestStore(t)
		p := seedProject(t, s)

		progress := 40
		updated, err := s.UpdateProject(p.ID, UpdateProjectRequest{Progress: &progress})
		require.NoError(t, err)

		assert.Equal(t, 40, updated.Progress)
		assert.Equal(t, p.Title, updated.Title)
		assert.Equal(t, p.Owner.ID, updated.Owner.ID)
	})

	t.Run("progress out of range is rejected", func(t *testing.T) {
		s := newTestStore(t)
		p := seedProject(t, s)

		progress := 120
		_, err := s.UpdateProject(p.ID, UpdateProjectRequest{Progress: &progress})
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("unknown id is NotFound", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.UpdateProject("missing", UpdateProjectRequest{})
		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
	})
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestStore(t)
	doomed := seedProject(t, s)
	survivor, err := s.CreateProject(CreateProjectRequest{Title: "Survivor", OwnerID: s.Users()[0].ID})
	require.NoError(t, err)

	t1 := seedTask(t, s, doomed.ID, "doomed task 1")
	t2 := seedTask(t, s, doomed.ID, "doomed task 2")
	keep := seedTask(t, s, survivor.ID, "kept task")

	for _, taskID := range []string{t1.ID, t2.ID, keep.ID} {
		_, err := s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: taskID, Hours: 1})
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteProject(doomed.ID))

	require.Len(t, s.Projects(), 1)
	require.Len(t, s.Tasks(), 1)
	assert.Equal(t, keep.ID, s.Tasks()[0].ID)

	entries := s.TimeEntries()
	require.Len(t, entries, 1, "entries of cascaded tasks must be removed")
	assert.Equal(t, keep.ID, entries[0].TaskID)

	var nfErr *NotFoundError
	require.ErrorAs(t, s.DeleteProject(doomed.ID), &nfErr)
}

func TestCreateTask(t *testing.T) {
	t.Run("assigns id and timestamps", func(t *testing.T) {
		s := newTestStore(t)
		p := seedProject(t, s)

		now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }

		task, err := s.CreateTask(CreateTaskRequest{Title: "Fix login", ProjectID: p.ID})
		require.NoError(t, err)

		assert.NotEmpty(t, task.ID)
		assert.Equal(t, now, task.CreatedAt)
		assert.Equal(t, now, task.UpdatedAt)
		assert.Equal(t, models.StatusBacklog, task.Status)
		assert.Equal(t, models.PriorityMedium, task.Priority)
		assert.Equal(t, 0.0, task.ActualHours)
	})

	t.Run("unknown project is a reference error", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.CreateTask(CreateTaskRequest{Title: "orphan", ProjectID: "nope"})
		var refErr *ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Equal(t, "project", refErr.Entity)
	})

	t.Run("unknown assignee is a reference error", func(t *testing.T) {
		s := newTestStore(t)
		p := seedProject(t, s)
		_, err := s.CreateTask(CreateTaskRequest{Title: "x", ProjectID: p.ID, AssigneeID: "nope"})
		var refErr *ReferenceError
		require.ErrorAs(t, err, &refErr)
		assert.Empty(t, s.Tasks())
	})
}

func TestUpdateTaskRefreshesUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)

	created := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }
	task := seedTask(t, s, p.ID, "timestamped")

	later := created.Add(2 * time.Hour)
	s.now = func() time.Time { return later }

	// No fields set: UpdatedAt is refreshed regardless
	updated, err := s.UpdateTask(task.ID, UpdateTaskRequest{})
	require.NoError(t, err)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, created, updated.CreatedAt)
}

func TestDeleteTaskCascadesEntries(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)
	task := seedTask(t, s, p.ID, "tracked")
	other := seedTask(t, s, p.ID, "other")

	_, err := s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: task.ID, Hours: 2})
	require.NoError(t, err)
	_, err = s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: other.ID, Hours: 1})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(task.ID))

	entries := s.TimeEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, other.ID, entries[0].TaskID)
}

func TestActualHoursInvariant(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)
	task := seedTask(t, s, p.ID, "tracked")

	taskHours := func() float64 {
		got, err := s.LookupTask(task.ID)
		require.NoError(t, err)
		return got.ActualHours
	}

	e1, err := s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: task.ID, Hours: 2})
	require.NoError(t, err)
	_, err = s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: task.ID, Hours: 3})
	require.NoError(t, err)
	assert.Equal(t, 5.0, taskHours())

	require.NoError(t, s.DeleteTimeEntry(e1.ID))
	assert.Equal(t, 3.0, taskHours())

	t.Run("update recomputes uniformly", func(t *testing.T) {
		entries := s.TaskEntries(task.ID)
		require.Len(t, entries, 1)

		hours := 7.5
		_, err := s.UpdateTimeEntry(entries[0].ID, UpdateTimeEntryRequest{Hours: &hours})
		require.NoError(t, err)
		assert.Equal(t, 7.5, taskHours())
	})

	t.Run("moving an entry recomputes both tasks", func(t *testing.T) {
		other := seedTask(t, s, p.ID, "receiver")
		entries := s.TaskEntries(task.ID)
		require.Len(t, entries, 1)

		_, err := s.UpdateTimeEntry(entries[0].ID, UpdateTimeEntryRequest{TaskID: &other.ID})
		require.NoError(t, err)

		assert.Equal(t, 0.0, taskHours())
		moved, err := s.LookupTask(other.ID)
		require.NoError(t, err)
		assert.Equal(t, 7.5, moved.ActualHours)
	})
}

func TestCreateTimeEntry(t *testing.T) {
	t.Run("requires positive hours", func(t *testing.T) {
		s := newTestStore(t)
		p := seedProject(t, s)
		task := seedTask(t, s, p.ID, "x")

		for _, hours := range []float64{0, -1} {
			_, err := s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: task.ID, Hours: hours})
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr, "hours=%v", hours)
		}
		assert.Empty(t, s.TimeEntries())
	})

	t.Run("defaults to the current user and today", func(t *testing.T) {
		s := newTestStore(t)
		p := seedProject(t, s)
		task := seedTask(t, s, p.ID, "x")

		now := time.Date(2026, 3, 4, 16, 30, 0, 0, time.UTC)
		s.now = func() time.Time { return now }

		entry, err := s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: task.ID, Hours: 1.5})
		require.NoError(t, err)

		assert.Equal(t, s.CurrentUser().ID, entry.UserID)
		assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), entry.Date, "date carries no time-of-day component")
	})

	t.Run("unknown task is a reference error", func(t *testing.T) {
		s := newTestStore(t)
		_, err := s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: "nope", Hours: 1})
		var refErr *ReferenceError
		require.ErrorAs(t, err, &refErr)
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)
	task := seedTask(t, s, p.ID, "round trip")
	_, err := s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: task.ID, Hours: 4, Comment: "works"})
	require.NoError(t, err)

	exported, err := s.ExportSnapshot()
	require.NoError(t, err)

	other := newTestStore(t)
	require.NoError(t, other.ImportSnapshot(exported))

	reExported, err := other.ExportSnapshot()
	require.NoError(t, err)
	assert.Equal(t, string(exported), string(reExported), "import of an export must reproduce identical state")
}

func TestImportParseErrorLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)

	err := s.ImportSnapshot([]byte("{broken"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)

	require.Len(t, s.Projects(), 1)
	assert.Equal(t, p.ID, s.Projects()[0].ID)
	assert.Len(t, s.Users(), 3)
}

func TestResetToDefaults(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)
	seedTask(t, s, p.ID, "gone soon")

	s.ResetToDefaults()

	assert.Empty(t, s.Projects())
	assert.Empty(t, s.Tasks())
	assert.Empty(t, s.TimeEntries())
	assert.Len(t, s.Users(), 3)
	require.NotNil(t, s.CurrentUser())
}

func TestSetCurrentUser(t *testing.T) {
	s := newTestStore(t)
	second := s.Users()[1]

	require.NoError(t, s.SetCurrentUser(second.ID))
	assert.Equal(t, second.ID, s.CurrentUser().ID)

	var nfErr *NotFoundError
	require.ErrorAs(t, s.SetCurrentUser("nope"), &nfErr)
}

func TestWriteThroughPersistence(t *testing.T) {
	t.Run("every mutation saves one snapshot", func(t *testing.T) {
		p := &memoryPersister{}
		s, err := New(p, nil)
		require.NoError(t, err)

		before := p.saves
		project := seedProject(t, s)
		task := seedTask(t, s, project.ID, "persisted")
		_, err = s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: task.ID, Hours: 1})
		require.NoError(t, err)
		require.NoError(t, s.DeleteProject(project.ID))

		assert.Equal(t, before+4, p.saves, "cascade deletes persist exactly one snapshot")
	})

	t.Run("storage failure is not fatal", func(t *testing.T) {
		p := &memoryPersister{failing: true}
		s, err := New(p, nil)
		require.NoError(t, err)

		project, err := s.CreateProject(CreateProjectRequest{Title: "still works", OwnerID: s.Users()[0].ID})
		require.NoError(t, err)
		assert.Len(t, s.Projects(), 1)
		assert.Equal(t, "still works", project.Title)
	})
}

func TestLookupHelpers(t *testing.T) {
	s := newTestStore(t)
	s.newID = sequentialIDs()

	p := seedProject(t, s)
	task := seedTask(t, s, p.ID, "Fix login flow")

	t.Run("by unique id prefix", func(t *testing.T) {
		got, err := s.LookupTask(task.ID[:8])
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("by exact title", func(t *testing.T) {
		got, err := s.LookupTask("fix login flow")
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("ambiguous prefix is rejected", func(t *testing.T) {
		seedTask(t, s, p.ID, "another")
		_, err := s.LookupTask("task-")
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("unknown selector is NotFound", func(t *testing.T) {
		_, err := s.LookupUser("nobody@nowhere")
		var nfErr *NotFoundError
		require.ErrorAs(t, err, &nfErr)
	})
}

// sequentialIDs yields task-0001, task-0002, ... for stable prefixes
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%04d-%d", n, n)
	}
}
