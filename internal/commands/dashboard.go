package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/almasgali/planhub/internal/models"
	"github.com/almasgali/planhub/internal/parser"
	"github.com/almasgali/planhub/internal/store"
	"github.com/almasgali/planhub/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Show the project dashboard",
	Long:    "Show metric cards, active projects with progress, recent tasks and overdue alerts.",
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorAccentBright))
		muted := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))
		alert := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorError))

		overdue := s.OverdueTasks()

		fmt.Println(header.Render("📊 Dashboard"))
		fmt.Println()
		fmt.Printf("  Projects:        %d total, %d active\n", len(s.Projects()), s.ActiveProjectCount())
		fmt.Printf("  Overdue tasks:   %d\n", len(overdue))
		fmt.Printf("  Done this week:  %d\n", len(s.CompletedLastWeek()))
		fmt.Printf("  Hours logged:    %.1fh total, %.1fh per active day\n", s.TotalHoursLogged(), s.AverageDailyHours())
		fmt.Println()

		var active []models.Project
		for _, p := range s.Projects() {
			if p.Status == models.ProjectActive {
				active = append(active, p)
			}
		}
		if len(active) > 0 {
			fmt.Println(header.Render("Active projects"))
			for _, p := range active {
				bar := progressBar(p.Progress, 24, p.Color)
				fmt.Printf("  %-30s %s %3d%%  %s\n",
					truncate(p.Title, 28), bar, p.Progress, muted.Render(parser.FormatDate(&p.EndDate)))
			}
			fmt.Println()
		}

		recent := s.RecentTasks(5)
		if len(recent) > 0 {
			fmt.Println(header.Render("Recent tasks"))
			for _, t := range recent {
				statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.StatusColor(string(t.Status))))
				fmt.Printf("  %-12s %s\n", statusStyle.Render(string(t.Status)), truncate(t.Title, 60))
			}
			fmt.Println()
		}

		if len(overdue) > 0 {
			fmt.Println(alert.Render(fmt.Sprintf("⚠️  %d overdue task(s) need attention", len(overdue))))
			for _, t := range overdue {
				fmt.Printf("  %s (due %s)\n", truncate(t.Title, 50), parser.FormatDate(t.DueDate))
			}
		}
	}),
}

// progressBar renders a fixed-width bar, filled proportionally
func progressBar(percent, width int, color string) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100

	if color == "" {
		color = tui.ColorAccentMain
	}
	filledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorBorder))

	return filledStyle.Render(strings.Repeat("█", filled)) + emptyStyle.Render(strings.Repeat("░", width-filled))
}
