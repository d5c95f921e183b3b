package store

import (
	"sort"

	"github.com/almasgali/planhub/internal/models"
)

// Derived read queries. All of them are pure: they never mutate the
// collections and never trigger persistence.

// ActiveProjectCount returns the number of projects in active status
func (s *Store) ActiveProjectCount() int {
	count := 0
	for _, p := range s.projects {
		if p.Status == models.ProjectActive {
			count++
		}
	}
	return count
}

// OverdueTasks returns tasks whose due date is strictly in the past
// and whose status is not done
func (s *Store) OverdueTasks() []models.Task {
	now := s.now()
	var overdue []models.Task
	for _, t := range s.tasks {
		if t.Overdue(now) {
			overdue = append(overdue, t)
		}
	}
	return overdue
}

// CompletedLastWeek returns done tasks last touched within the past
// seven days
func (s *Store) CompletedLastWeek() []models.Task {
	cutoff := s.now().AddDate(0, 0, -7)
	var completed []models.Task
	for _, t := range s.tasks {
		if t.Status == models.StatusDone && t.UpdatedAt.After(cutoff) {
			completed = append(completed, t)
		}
	}
	return completed
}

// RecentTasks returns up to limit tasks ordered by most recently
// updated first
func (s *Store) RecentTasks(limit int) []models.Task {
	tasks := s.Tasks()
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].UpdatedAt.After(tasks[j].UpdatedAt)
	})
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks
}

// TotalHoursLogged sums the hours across all time entries
func (s *Store) TotalHoursLogged() float64 {
	var total float64
	for _, e := range s.timeEntries {
		total += e.Hours
	}
	return total
}

// AverageDailyHours divides the total logged hours by the number of
// distinct calendar days present in the entries. Zero entries yield 0.
func (s *Store) AverageDailyHours() float64 {
	days := make(map[string]bool)
	var total float64
	for _, e := range s.timeEntries {
		days[e.Date.Format("2006-01-02")] = true
		total += e.Hours
	}
	if len(days) == 0 {
		return 0
	}
	return total / float64(len(days))
}

// TasksByStatus groups tasks into kanban columns
func (s *Store) TasksByStatus() map[models.TaskStatus][]models.Task {
	grouped := make(map[models.TaskStatus][]models.Task)
	for _, t := range s.tasks {
		grouped[t.Status] = append(grouped[t.Status], t)
	}
	return grouped
}

// ProjectTasks returns the tasks belonging to a project
func (s *Store) ProjectTasks(projectID string) []models.Task {
	var tasks []models.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// TaskEntries returns the time entries logged against a task
func (s *Store) TaskEntries(taskID string) []models.TimeEntry {
	var entries []models.TimeEntry
	for _, e := range s.timeEntries {
		if e.TaskID == taskID {
			entries = append(entries, e)
		}
	}
	return entries
}

// ProjectStatusCounts tallies projects per status for the analytics
// distribution chart
func (s *Store) ProjectStatusCounts() map[models.ProjectStatus]int {
	counts := make(map[models.ProjectStatus]int)
	for _, p := range s.projects {
		counts[p.Status]++
	}
	return counts
}

// HoursByProject sums logged hours per project id, resolved through
// each entry's task
func (s *Store) HoursByProject() map[string]float64 {
	taskProject := make(map[string]string, len(s.tasks))
	for _, t := range s.tasks {
		taskProject[t.ID] = t.ProjectID
	}
	hours := make(map[string]float64)
	for _, e := range s.timeEntries {
		if projectID, ok := taskProject[e.TaskID]; ok {
			hours[projectID] += e.Hours
		}
	}
	return hours
}

// HoursByUser sums logged hours per user id
func (s *Store) HoursByUser() map[string]float64 {
	hours := make(map[string]float64)
	for _, e := range s.timeEntries {
		hours[e.UserID] += e.Hours
	}
	return hours
}

// OpenTaskCountsByAssignee tallies not-done tasks per assignee id for
// the team roster
func (s *Store) OpenTaskCountsByAssignee() map[string]int {
	counts := make(map[string]int)
	for _, t := range s.tasks {
		if t.Assignee == nil || t.Status == models.StatusDone {
			continue
		}
		counts[t.Assignee.ID]++
	}
	return counts
}
