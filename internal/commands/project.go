package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/almasgali/planhub/internal/models"
	"github.com/almasgali/planhub/internal/parser"
	"github.com/almasgali/planhub/internal/store"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new project",
	Long: `Create a new project. The owner defaults to the current user.

Examples:
  planhub project add "Website redesign" --end "2 weeks"
  planhub project add "API v2" --owner maria@planhub.local --team alex@planhub.local --priority high`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		req := store.CreateProjectRequest{Title: args[0]}

		req.Description, _ = cmd.Flags().GetString("desc")
		req.Color, _ = cmd.Flags().GetString("color")
		req.EstimateHours, _ = cmd.Flags().GetFloat64("estimate")

		if status, _ := cmd.Flags().GetString("status"); status != "" {
			req.Status = models.ProjectStatus(status)
		}
		if priority, _ := cmd.Flags().GetString("priority"); priority != "" {
			req.Priority = models.Priority(priority)
		}

		if start, _ := cmd.Flags().GetString("start"); start != "" {
			d, err := parser.ParseDate(start)
			if err != nil {
				fmt.Printf("Error parsing start date: %v\n", err)
				return
			}
			req.StartDate = *d
		} else {
			req.StartDate = time.Now()
		}
		if end, _ := cmd.Flags().GetString("end"); end != "" {
			d, err := parser.ParseDate(end)
			if err != nil {
				fmt.Printf("Error parsing end date: %v\n", err)
				return
			}
			req.EndDate = *d
		}

		if owner, _ := cmd.Flags().GetString("owner"); owner != "" {
			u, err := s.LookupUser(owner)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.OwnerID = u.ID
		} else if current := s.CurrentUser(); current != nil {
			req.OwnerID = current.ID
		}

		if team, _ := cmd.Flags().GetStringSlice("team"); len(team) > 0 {
			for _, sel := range team {
				u, err := s.LookupUser(sel)
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					return
				}
				req.TeamIDs = append(req.TeamIDs, u.ID)
			}
		}

		project, err := s.CreateProject(req)
		if err != nil {
			fmt.Printf("Error creating project: %v\n", err)
			return
		}

		fmt.Printf("Created project %s: %s\n", shortID(project.ID), project.Title)
		fmt.Printf("  Owner: %s\n", project.Owner.Name)
		if len(project.Team) > 0 {
			var names []string
			for _, u := range project.Team {
				names = append(names, u.Name)
			}
			fmt.Printf("  Team: %s\n", strings.Join(names, ", "))
		}
		if !project.EndDate.IsZero() {
			fmt.Printf("  Due: %s\n", parser.FormatDate(&project.EndDate))
		}
	}),
}

var projectListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List projects",
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		projects := s.Projects()

		if status, _ := cmd.Flags().GetString("status"); status != "" {
			var filtered []models.Project
			for _, p := range projects {
				if p.Status == models.ProjectStatus(status) {
					filtered = append(filtered, p)
				}
			}
			projects = filtered
		}

		if len(projects) == 0 {
			fmt.Println("No projects found. Use 'planhub project add \"title\"' to create your first project.")
			return
		}

		fmt.Printf("%-10s %-32s %-10s %-8s %-9s %-18s %s\n", "ID", "TITLE", "STATUS", "PRIORITY", "PROGRESS", "OWNER", "DUE")
		fmt.Println(strings.Repeat("-", 100))

		for _, p := range projects {
			fmt.Printf("%-10s %-32s %-10s %-8s %8d%% %-18s %s\n",
				shortID(p.ID),
				truncate(p.Title, 30),
				p.Status,
				p.Priority,
				p.Progress,
				truncate(p.Owner.Name, 16),
				parser.FormatDate(&p.EndDate))
		}
	}),
}

var projectEditCmd = &cobra.Command{
	Use:   "edit <project>",
	Short: "Update project fields",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		project, err := s.LookupProject(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		var req store.UpdateProjectRequest

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
			status := models.ProjectStatus(v)
			req.Status = &status
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			priority := models.Priority(v)
			req.Priority = &priority
		}
		if cmd.Flags().Changed("progress") {
			v, _ := cmd.Flags().GetInt("progress")
			req.Progress = &v
		}
		if cmd.Flags().Changed("color") {
			v, _ := cmd.Flags().GetString("color")
			req.Color = &v
		}
		if cmd.Flags().Changed("estimate") {
			v, _ := cmd.Flags().GetFloat64("estimate")
			req.EstimateHours = &v
		}
		if cmd.Flags().Changed("start") {
			v, _ := cmd.Flags().GetString("start")
			d, err := parser.ParseDate(v)
			if err != nil {
				fmt.Printf("Error parsing start date: %v\n", err)
				return
			}
			req.StartDate = d
		}
		if cmd.Flags().Changed("end") {
			v, _ := cmd.Flags().GetString("end")
			d, err := parser.ParseDate(v)
			if err != nil {
				fmt.Printf("Error parsing end date: %v\n", err)
				return
			}
			req.EndDate = d
		}
		if cmd.Flags().Changed("owner") {
			v, _ := cmd.Flags().GetString("owner")
			u, err := s.LookupUser(v)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			req.OwnerID = &u.ID
		}
		if cmd.Flags().Changed("team") {
			sels, _ := cmd.Flags().GetStringSlice("team")
			ids := make([]string, 0, len(sels))
			for _, sel := range sels {
				u, err := s.LookupUser(sel)
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					return
				}
				ids = append(ids, u.ID)
			}
			req.TeamIDs = &ids
		}

		updated, err := s.UpdateProject(project.ID, req)
		if err != nil {
			fmt.Printf("Error updating project: %v\n", err)
			return
		}
		fmt.Printf("Updated project %s: %s\n", shortID(updated.ID), updated.Title)
	}),
}

var projectRemoveCmd = &cobra.Command{
	Use:     "rm <project>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a project and all of its tasks and logged time",
	Args:    cobra.ExactArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		project, err := s.LookupProject(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		taskCount := len(s.ProjectTasks(project.ID))
		if force, _ := cmd.Flags().GetBool("force"); !force && taskCount > 0 {
			fmt.Printf("Project %q has %d task(s); deleting removes them and their logged time.\n", project.Title, taskCount)
			fmt.Println("Re-run with --force to confirm.")
			return
		}

		if err := s.DeleteProject(project.ID); err != nil {
			fmt.Printf("Error deleting project: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Deleted project %q and %d task(s)\n", project.Title, taskCount)
	}),
}

func init() {
	projectAddCmd.Flags().StringP("desc", "d", "", "Project description")
	projectAddCmd.Flags().StringP("status", "s", "", "Status: active, on-hold, completed")
	projectAddCmd.Flags().StringP("priority", "", "", "Priority: low, medium, high, urgent")
	projectAddCmd.Flags().StringP("start", "", "", "Start date: dd/mm/yyyy, today, X days")
	projectAddCmd.Flags().StringP("end", "", "", "End date: dd/mm/yyyy, X days, X weeks")
	projectAddCmd.Flags().StringP("owner", "o", "", "Owner (id, email or name), defaults to current user")
	projectAddCmd.Flags().StringSliceP("team", "t", []string{}, "Team members (ids, emails or names)")
	projectAddCmd.Flags().StringP("color", "c", "#7C3AED", "Display color")
	projectAddCmd.Flags().Float64P("estimate", "e", 0, "Estimated hours")

	projectListCmd.Flags().StringP("status", "s", "", "Filter by status: active, on-hold, completed")

	projectEditCmd.Flags().String("title", "", "New title")
	projectEditCmd.Flags().StringP("desc", "d", "", "New description")
	projectEditCmd.Flags().StringP("status", "s", "", "New status")
	projectEditCmd.Flags().String("priority", "", "New priority")
	projectEditCmd.Flags().Int("progress", 0, "Progress percentage (0-100)")
	projectEditCmd.Flags().String("start", "", "New start date")
	projectEditCmd.Flags().String("end", "", "New end date")
	projectEditCmd.Flags().StringP("owner", "o", "", "New owner")
	projectEditCmd.Flags().StringSliceP("team", "t", []string{}, "New team members (replaces the set)")
	projectEditCmd.Flags().StringP("color", "c", "", "New display color")
	projectEditCmd.Flags().Float64P("estimate", "e", 0, "New estimated hours")

	projectRemoveCmd.Flags().BoolP("force", "f", false, "Skip the cascade confirmation")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectRemoveCmd)
}

// truncate shortens a string for table display
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// shortID renders the first UUID segment, enough to select with
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
