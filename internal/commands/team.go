package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/almasgali/planhub/internal/store"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show the team roster",
	Long:  "Show the team roster with roles, open task counts and logged hours.",
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		users := s.Users()
		if len(users) == 0 {
			fmt.Println("No users found. Run 'planhub reset --force' to reseed the default roster.")
			return
		}

		current := s.CurrentUser()
		openTasks := s.OpenTaskCountsByAssignee()
		hours := s.HoursByUser()

		fmt.Printf("%-10s %-22s %-28s %-8s %-10s %s\n", "ID", "NAME", "EMAIL", "ROLE", "OPEN", "LOGGED")
		fmt.Println(strings.Repeat("-", 92))

		for _, u := range users {
			marker := "  "
			if current != nil && current.ID == u.ID {
				marker = "* "
			}
			fmt.Printf("%-10s %s%-20s %-28s %-8s %10d %7.1fh\n",
				shortID(u.ID),
				marker,
				truncate(u.Name, 18),
				truncate(u.Email, 26),
				u.Role,
				openTasks[u.ID],
				hours[u.ID])
		}

		if current != nil {
			fmt.Printf("\n* current user: %s\n", current.Name)
		}
	}),
}

var teamSwitchCmd = &cobra.Command{
	Use:   "switch <user>",
	Short: "Switch the current user",
	Long:  "Switch the acting user. New time entries default to this user.",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		u, err := s.LookupUser(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := s.SetCurrentUser(u.ID); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("👤 Now acting as %s <%s>\n", u.Name, u.Email)
	}),
}

func init() {
	teamCmd.AddCommand(teamSwitchCmd)
}
