package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/almasgali/planhub/internal/models"
	"github.com/almasgali/planhub/internal/parser"
	"github.com/almasgali/planhub/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log and review time entries",
}

var logAddCmd = &cobra.Command{
	Use:   "add <task> <hours>",
	Short: "Log hours against a task",
	Long: `Log hours against a task for one calendar day. The actor defaults to
the current user and the date to today.

Examples:
  planhub log add "Fix login flow" 2.5
  planhub log add a1b2c3d4 3 --date yesterday --comment "code review"`,
	Args: cobra.ExactArgs(2),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		task, err := s.LookupTask(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		hours, err := parser.ParseHours(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		req := store.CreateTimeEntryRequest{TaskID: task.ID, Hours: hours}
		req.Comment, _ = cmd.Flags().GetString("comment")

		if date, _ := cmd.Flags().GetString("date"); date != "" {
			d, err := parser.ParseDate(date)
			if err != nil {
				fmt.Printf("Error parsing date: %v\n", err)
				return
			}
			req.Date = *d
		}
		if userSel, _ := cmd.Flags().GetString("user"); userSel != "" {
			u, err := s.LookupUser(userSel)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.UserID = u.ID
		}

		entry, err := s.CreateTimeEntry(req)
		if err != nil {
			fmt.Printf("Error logging time: %v\n", err)
			return
		}

		updated, _ := s.LookupTask(task.ID)
		fmt.Printf("⏱️  Logged %.1fh on %q (%s)\n", entry.Hours, task.Title, entry.Date.Format("02/01/2006"))
		if updated != nil {
			fmt.Printf("  Task total: %.1fh\n", updated.ActualHours)
		}
	}),
}

var logListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List time entries",
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		entries := s.TimeEntries()

		if taskSel, _ := cmd.Flags().GetString("task"); taskSel != "" {
			task, err := s.LookupTask(taskSel)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			entries = s.TaskEntries(task.ID)
		}

		if len(entries) == 0 {
			fmt.Println("No time logged yet. Use 'planhub log add <task> <hours>' to start.")
			return
		}

		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Date.Before(entries[j].Date)
		})

		taskTitles := make(map[string]string)
		for _, t := range s.Tasks() {
			taskTitles[t.ID] = t.Title
		}
		userNames := make(map[string]string)
		for _, u := range s.Users() {
			userNames[u.ID] = u.Name
		}

		fmt.Printf("%-10s %-12s %-34s %-18s %-7s %s\n", "ID", "DATE", "TASK", "USER", "HOURS", "COMMENT")
		fmt.Println(strings.Repeat("-", 100))

		var total float64
		for _, e := range entries {
			total += e.Hours
			fmt.Printf("%-10s %-12s %-34s %-18s %6.1f %s\n",
				shortID(e.ID),
				e.Date.Format("02/01/2006"),
				truncate(titleOr(taskTitles, e.TaskID), 32),
				truncate(titleOr(userNames, e.UserID), 16),
				e.Hours,
				truncate(e.Comment, 30))
		}
		fmt.Println(strings.Repeat("-", 100))
		fmt.Printf("Total: %.1fh across %d entries, %.1fh per active day\n", total, len(entries), s.AverageDailyHours())
	}),
}

var logEditCmd = &cobra.Command{
	Use:   "edit <entry-id>",
	Short: "Update a time entry",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		entry := findEntry(s, args[0])
		if entry == nil {
			fmt.Printf("Error: time entry %q not found\n", args[0])
			return
		}

		var req store.UpdateTimeEntryRequest

		if cmd.Flags().Changed("hours") {
			v, _ := cmd.Flags().GetString("hours")
			hours, err := parser.ParseHours(v)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.Hours = &hours
		}
		if cmd.Flags().Changed("date") {
			v, _ := cmd.Flags().GetString("date")
			d, err := parser.ParseDate(v)
			if err != nil {
				fmt.Printf("Error parsing date: %v\n", err)
				return
			}
			req.Date = d
		}
		if cmd.Flags().Changed("comment") {
			v, _ := cmd.Flags().GetString("comment")
			req.Comment = &v
		}
		if cmd.Flags().Changed("task") {
			v, _ := cmd.Flags().GetString("task")
			task, err := s.LookupTask(v)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.TaskID = &task.ID
		}
		if cmd.Flags().Changed("user") {
			v, _ := cmd.Flags().GetString("user")
			u, err := s.LookupUser(v)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.UserID = &u.ID
		}

		updated, err := s.UpdateTimeEntry(entry.ID, req)
		if err != nil {
			fmt.Printf("Error updating entry: %v\n", err)
			return
		}
		fmt.Printf("Updated entry %s: %.1fh on %s\n", shortID(updated.ID), updated.Hours, updated.Date.Format("02/01/2006"))
	}),
}

var logRemoveCmd = &cobra.Command{
	Use:     "rm <entry-id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a time entry",
	Args:    cobra.ExactArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		entry := findEntry(s, args[0])
		if entry == nil {
			fmt.Printf("Error: time entry %q not found\n", args[0])
			return
		}

		if err := s.DeleteTimeEntry(entry.ID); err != nil {
			fmt.Printf("Error deleting entry: %v\n", err)
			return
		}

		fmt.Printf("🗑️  Deleted %.1fh entry\n", entry.Hours)
		if task, err := s.LookupTask(entry.TaskID); err == nil {
			fmt.Printf("  Task total: %.1fh\n", task.ActualHours)
		}
	}),
}

// findEntry resolves an entry by exact id or unique id prefix
func findEntry(s *store.Store, selector string) *models.TimeEntry {
	var match *models.TimeEntry
	for _, e := range s.TimeEntries() {
		if e.ID == selector {
			e := e
			return &e
		}
		if strings.HasPrefix(e.ID, selector) {
			if match != nil {
				return nil // ambiguous
			}
			e := e
			match = &e
		}
	}
	return match
}

func titleOr(m map[string]string, id string) string {
	if title, ok := m[id]; ok {
		return title
	}
	return shortID(id)
}

func init() {
	logAddCmd.Flags().StringP("date", "d", "", "Date the hours were worked (defaults to today)")
	logAddCmd.Flags().StringP("user", "u", "", "Acting user (defaults to current user)")
	logAddCmd.Flags().StringP("comment", "c", "", "Free-text comment")

	logListCmd.Flags().StringP("task", "t", "", "Filter by task")

	logEditCmd.Flags().String("hours", "", "New hours value")
	logEditCmd.Flags().StringP("date", "d", "", "New date")
	logEditCmd.Flags().StringP("comment", "c", "", "New comment")
	logEditCmd.Flags().StringP("task", "t", "", "Move the entry to another task")
	logEditCmd.Flags().StringP("user", "u", "", "Reassign the entry to another user")

	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logEditCmd)
	logCmd.AddCommand(logRemoveCmd)
}
