package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almasgali/planhub/internal/models"
)

func TestOverdueTasks(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	past := now.AddDate(0, 0, -2)
	future := now.AddDate(0, 0, 2)

	late, err := s.CreateTask(CreateTaskRequest{Title: "late", ProjectID: p.ID, DueDate: &past})
	require.NoError(t, err)

	_, err = s.CreateTask(CreateTaskRequest{Title: "on time", ProjectID: p.ID, DueDate: &future})
	require.NoError(t, err)

	_, err = s.CreateTask(CreateTaskRequest{Title: "undated", ProjectID: p.ID})
	require.NoError(t, err)

	_, err = s.CreateTask(CreateTaskRequest{Title: "done late", ProjectID: p.ID, DueDate: &past, Status: models.StatusDone})
	require.NoError(t, err)

	overdue := s.OverdueTasks()
	require.Len(t, overdue, 1, "only past-due unfinished tasks with a due date are overdue")
	assert.Equal(t, late.ID, overdue[0].ID)
}

func TestAverageDailyHours(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)
	task := seedTask(t, s, p.ID, "tracked")

	t.Run("zero entries yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, s.AverageDailyHours())
	})

	t.Run("divides by distinct days", func(t *testing.T) {
		day1 := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
		day2 := time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)

		// 9 hours over 2 distinct days, one day split in two entries
		for _, e := range []struct {
			date  time.Time
			hours float64
		}{
			{day1, 2},
			{day1, 3},
			{day2, 4},
		} {
			_, err := s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: task.ID, Date: e.date, Hours: e.hours})
			require.NoError(t, err)
		}

		assert.Equal(t, 4.5, s.AverageDailyHours())
		assert.Equal(t, 9.0, s.TotalHoursLogged())
	})
}

func TestCompletedLastWeek(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return now.AddDate(0, 0, -10) }
	old := seedTask(t, s, p.ID, "long done")
	done := models.StatusDone
	_, err := s.UpdateTask(old.ID, UpdateTaskRequest{Status: &done})
	require.NoError(t, err)

	s.now = func() time.Time { return now.AddDate(0, 0, -2) }
	fresh := seedTask(t, s, p.ID, "just done")
	_, err = s.UpdateTask(fresh.ID, UpdateTaskRequest{Status: &done})
	require.NoError(t, err)

	s.now = func() time.Time { return now }
	seedTask(t, s, p.ID, "not done")

	completed := s.CompletedLastWeek()
	require.Len(t, completed, 1)
	assert.Equal(t, fresh.ID, completed[0].ID)
}

func TestRecentTasksOrdering(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)

	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 4; i++ {
		tick := base.Add(time.Duration(i) * time.Hour)
		s.now = func() time.Time { return tick }
		task := seedTask(t, s, p.ID, "task")
		ids = append(ids, task.ID)
	}

	recent := s.RecentTasks(2)
	require.Len(t, recent, 2)
	assert.Equal(t, ids[3], recent[0].ID)
	assert.Equal(t, ids[2], recent[1].ID)
}

func TestTasksByStatus(t *testing.T) {
	s := newTestStore(t)
	p := seedProject(t, s)

	seedTask(t, s, p.ID, "one")
	seedTask(t, s, p.ID, "two")
	review, err := s.CreateTask(CreateTaskRequest{Title: "rv", ProjectID: p.ID, Status: models.StatusReview})
	require.NoError(t, err)

	grouped := s.TasksByStatus()
	assert.Len(t, grouped[models.StatusBacklog], 2)
	require.Len(t, grouped[models.StatusReview], 1)
	assert.Equal(t, review.ID, grouped[models.StatusReview][0].ID)
	assert.Empty(t, grouped[models.StatusDone])
}

func TestHoursBreakdowns(t *testing.T) {
	s := newTestStore(t)
	users := s.Users()

	p1 := seedProject(t, s)
	p2, err := s.CreateProject(CreateProjectRequest{Title: "Second", OwnerID: users[0].ID})
	require.NoError(t, err)

	t1 := seedTask(t, s, p1.ID, "a")
	t2 := seedTask(t, s, p2.ID, "b")

	_, err = s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: t1.ID, UserID: users[0].ID, Hours: 2})
	require.NoError(t, err)
	_, err = s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: t1.ID, UserID: users[1].ID, Hours: 1})
	require.NoError(t, err)
	_, err = s.CreateTimeEntry(CreateTimeEntryRequest{TaskID: t2.ID, UserID: users[1].ID, Hours: 4})
	require.NoError(t, err)

	byProject := s.HoursByProject()
	assert.Equal(t, 3.0, byProject[p1.ID])
	assert.Equal(t, 4.0, byProject[p2.ID])

	byUser := s.HoursByUser()
	assert.Equal(t, 2.0, byUser[users[0].ID])
	assert.Equal(t, 5.0, byUser[users[1].ID])
}

func TestActiveProjectCount(t *testing.T) {
	s := newTestStore(t)
	users := s.Users()

	seedProject(t, s)
	_, err := s.CreateProject(CreateProjectRequest{Title: "paused", OwnerID: users[0].ID, Status: models.ProjectOnHold})
	require.NoError(t, err)

	assert.Equal(t, 1, s.ActiveProjectCount())
}

func TestOpenTaskCountsByAssignee(t *testing.T) {
	s := newTestStore(t)
	users := s.Users()
	p := seedProject(t, s)

	_, err := s.CreateTask(CreateTaskRequest{Title: "open", ProjectID: p.ID, AssigneeID: users[1].ID})
	require.NoError(t, err)
	_, err = s.CreateTask(CreateTaskRequest{Title: "done", ProjectID: p.ID, AssigneeID: users[1].ID, Status: models.StatusDone})
	require.NoError(t, err)
	seedTask(t, s, p.ID, "unassigned")

	counts := s.OpenTaskCountsByAssignee()
	assert.Equal(t, 1, counts[users[1].ID])
	assert.Len(t, counts, 1)
}
