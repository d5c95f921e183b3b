package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/almasgali/planhub/internal/models"
	"github.com/almasgali/planhub/internal/parser"
	"github.com/almasgali/planhub/internal/store"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task to a project",
	Long: `Add a new task with optional metadata.

Smart parsing syntax:
  #tag1,tag2  - Tags (comma-separated or individual)
  @assignee   - Assignee (name or email)
  +priority   - Priority (low/medium/high/urgent)
  due:3days   - Due date (dd/mm/yyyy, today, X days, X weeks)

Examples:
  planhub task add "Fix login flow #auth +high due:3days" -p "Website redesign"
  planhub task add "Draft release notes @maria" -p api-v2`,
	Args: cobra.MinimumNArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		parsed := parser.ParseTitle(strings.Join(args, " "))
		if len(parsed.Errors) > 0 {
			fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			return
		}

		projectSel, _ := cmd.Flags().GetString("project")
		if projectSel == "" {
			fmt.Println("Error: a project is required. Pass one with --project.")
			return
		}
		project, err := s.LookupProject(projectSel)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		req := store.CreateTaskRequest{
			Title:     parsed.Title,
			ProjectID: project.ID,
			Tags:      parsed.Tags,
			DueDate:   parsed.DueDate,
			Priority:  models.Priority(parsed.Priority),
		}

		req.Description, _ = cmd.Flags().GetString("desc")
		req.EstimateHours, _ = cmd.Flags().GetFloat64("estimate")

		if status, _ := cmd.Flags().GetString("status"); status != "" {
			req.Status = models.TaskStatus(status)
		}
		// Flags take precedence over smart parsing
		if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
			req.Priority = models.Priority(priority)
		}
		if tags, _ := cmd.Flags().GetStringSlice("tags"); len(tags) > 0 {
			req.Tags = tags
		}
		if due, _ := cmd.Flags().GetString("due"); due != "" {
			d, err := parser.ParseDate(due)
			if err != nil {
				fmt.Printf("Error parsing due date: %v\n", err)
				return
			}
			req.DueDate = d
		}

		assigneeSel := parsed.Assignee
		if flagAssignee, _ := cmd.Flags().GetString("assignee"); flagAssignee != "" {
			assigneeSel = flagAssignee
		}
		if assigneeSel != "" {
			u, err := s.LookupUser(assigneeSel)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.AssigneeID = u.ID
		}

		task, err := s.CreateTask(req)
		if err != nil {
			fmt.Printf("Error creating task: %v\n", err)
			return
		}

		fmt.Printf("Created task %s: %s\n", shortID(task.ID), task.Title)
		fmt.Printf("  Project: %s\n", project.Title)
		if task.Assignee != nil {
			fmt.Printf("  Assignee: %s\n", task.Assignee.Name)
		}
		if len(task.Tags) > 0 {
			fmt.Printf("  Tags: %s\n", strings.Join(task.Tags, ", "))
		}
		if task.DueDate != nil {
			fmt.Printf("  Due: %s\n", parser.FormatDate(task.DueDate))
		}
	}),
}

var taskListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks with optional filters for status, project and assignee",
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		tasks := s.Tasks()

		if status, _ := cmd.Flags().GetString("status"); status != "" {
			tasks = filterTasks(tasks, func(t models.Task) bool {
				return t.Status == models.TaskStatus(status)
			})
		}
		if projectSel, _ := cmd.Flags().GetString("project"); projectSel != "" {
			project, err := s.LookupProject(projectSel)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			tasks = filterTasks(tasks, func(t models.Task) bool {
				return t.ProjectID == project.ID
			})
		}
		if assigneeSel, _ := cmd.Flags().GetString("assignee"); assigneeSel != "" {
			assignee, err := s.LookupUser(assigneeSel)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			tasks = filterTasks(tasks, func(t models.Task) bool {
				return t.Assignee != nil && t.Assignee.ID == assignee.ID
			})
		}
		if overdue, _ := cmd.Flags().GetBool("overdue"); overdue {
			byID := make(map[string]bool)
			for _, t := range s.OverdueTasks() {
				byID[t.ID] = true
			}
			tasks = filterTasks(tasks, func(t models.Task) bool { return byID[t.ID] })
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found. Use 'planhub task add \"title\" -p <project>' to create one.")
			return
		}

		fmt.Printf("%-10s %-12s %-36s %-16s %-8s %-7s %s\n", "ID", "STATUS", "TITLE", "ASSIGNEE", "PRIORITY", "HOURS", "DUE")
		fmt.Println(strings.Repeat("-", 104))

		for _, t := range tasks {
			assignee := "-"
			if t.Assignee != nil {
				assignee = truncate(t.Assignee.Name, 14)
			}
			fmt.Printf("%-10s %-12s %-36s %-16s %-8s %6.1f %s\n",
				shortID(t.ID),
				t.Status,
				truncate(t.Title, 34),
				assignee,
				t.Priority,
				t.ActualHours,
				parser.FormatDate(t.DueDate))
		}
	}),
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <task>",
	Short: "Update task fields",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		task, err := s.LookupTask(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		var req store.UpdateTaskRequest

		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			req.Title = &v
		}
		if cmd.Flags().Changed("desc") {
			v, _ := cmd.Flags().GetString("desc")
			req.Description = &v
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			status := models.TaskStatus(v)
			req.Status = &status
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			priority := models.Priority(v)
			req.Priority = &priority
		}
		if cmd.Flags().Changed("assignee") {
			v, _ := cmd.Flags().GetString("assignee")
			if v == "" || v == "none" {
				empty := ""
				req.AssigneeID = &empty
			} else {
				u, err := s.LookupUser(v)
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					return
				}
				req.AssigneeID = &u.ID
			}
		}
		if cmd.Flags().Changed("tags") {
			v, _ := cmd.Flags().GetStringSlice("tags")
			req.Tags = &v
		}
		if cmd.Flags().Changed("estimate") {
			v, _ := cmd.Flags().GetFloat64("estimate")
			req.EstimateHours = &v
		}
		if cmd.Flags().Changed("due") {
			v, _ := cmd.Flags().GetString("due")
			if v == "" || v == "none" {
				req.ClearDueDate = true
			} else {
				d, err := parser.ParseDate(v)
				if err != nil {
					fmt.Printf("Error parsing due date: %v\n", err)
					return
				}
				req.DueDate = d
			}
		}

		updated, err := s.UpdateTask(task.ID, req)
		if err != nil {
			fmt.Printf("Error updating task: %v\n", err)
			return
		}
		fmt.Printf("Updated task %s: %s\n", shortID(updated.ID), updated.Title)
	}),
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <task> <status>",
	Short: "Move a task to another kanban column",
	Long:  "Move a task to one of: backlog, in-progress, review, done. Any transition is allowed.",
	Args:  cobra.ExactArgs(2),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		task, err := s.LookupTask(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		status := models.TaskStatus(args[1])
		updated, err := s.UpdateTask(task.ID, store.UpdateTaskRequest{Status: &status})
		if err != nil {
			fmt.Printf("Error moving task: %v\n", err)
			return
		}

		if updated.Status == models.StatusDone {
			fmt.Printf("✅ Task %q is done\n", updated.Title)
		} else {
			fmt.Printf("Moved task %q to %s\n", updated.Title, updated.Status)
		}
	}),
}

var taskRemoveCmd = &cobra.Command{
	Use:     "rm <task>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a task and its logged time",
	Args:    cobra.ExactArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		task, err := s.LookupTask(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		entryCount := len(s.TaskEntries(task.ID))
		if err := s.DeleteTask(task.ID); err != nil {
			fmt.Printf("Error deleting task: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted task %q and %d time entr%s\n", task.Title, entryCount, pluralY(entryCount))
	}),
}

// filterTasks keeps the tasks matching the predicate
func filterTasks(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func init() {
	taskAddCmd.Flags().StringP("project", "p", "", "Project (id or title)")
	taskAddCmd.Flags().StringP("desc", "d", "", "Task description")
	taskAddCmd.Flags().StringP("status", "s", "", "Status: backlog, in-progress, review, done")
	taskAddCmd.Flags().StringP("priority", "", "", "Priority: low, medium, high, urgent")
	taskAddCmd.Flags().StringP("assignee", "a", "", "Assignee (id, email or name)")
	taskAddCmd.Flags().StringSliceP("tags", "t", []string{}, "Comma-separated tags")
	taskAddCmd.Flags().StringP("due", "", "", "Due date: dd/mm/yyyy, today, X days, X weeks")
	taskAddCmd.Flags().Float64P("estimate", "e", 0, "Estimated hours")

	taskListCmd.Flags().StringP("status", "s", "", "Filter by status")
	taskListCmd.Flags().StringP("project", "p", "", "Filter by project")
	taskListCmd.Flags().StringP("assignee", "a", "", "Filter by assignee")
	taskListCmd.Flags().Bool("overdue", false, "Show only overdue tasks")

	taskEditCmd.Flags().String("title", "", "New title")
	taskEditCmd.Flags().StringP("desc", "d", "", "New description")
	taskEditCmd.Flags().StringP("status", "s", "", "New status")
	taskEditCmd.Flags().String("priority", "", "New priority")
	taskEditCmd.Flags().StringP("assignee", "a", "", "New assignee ('none' clears)")
	taskEditCmd.Flags().StringSliceP("tags", "t", []string{}, "New tags (replaces the set)")
	taskEditCmd.Flags().StringP("due", "", "", "New due date ('none' clears)")
	taskEditCmd.Flags().Float64P("estimate", "e", 0, "New estimated hours")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskRemoveCmd)
}
