package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/almasgali/planhub/internal/models"
	"github.com/almasgali/planhub/internal/store"
	"github.com/almasgali/planhub/internal/tui"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show project and team analytics",
	Long:  "Show the project status distribution and logged hours broken down by project and team member.",
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorAccentBright))

		fmt.Println(header.Render("📈 Analytics"))
		fmt.Println()

		fmt.Println(header.Render("Project status"))
		counts := s.ProjectStatusCounts()
		statusColors := map[models.ProjectStatus]string{
			models.ProjectActive:    tui.ColorInfo,
			models.ProjectOnHold:    tui.ColorWarning,
			models.ProjectCompleted: tui.ColorSuccess,
		}
		for _, status := range []models.ProjectStatus{models.ProjectActive, models.ProjectOnHold, models.ProjectCompleted} {
			printBar(string(status), float64(counts[status]), maxStatusCount(counts), statusColors[status], fmt.Sprintf("%d", counts[status]))
		}
		fmt.Println()

		fmt.Println(header.Render("Hours by project"))
		projectTitles := make(map[string]string)
		for _, p := range s.Projects() {
			projectTitles[p.ID] = p.Title
		}
		printHourBars(s.HoursByProject(), projectTitles)
		fmt.Println()

		fmt.Println(header.Render("Hours by team member"))
		userNames := make(map[string]string)
		for _, u := range s.Users() {
			userNames[u.ID] = u.Name
		}
		printHourBars(s.HoursByUser(), userNames)
		fmt.Println()

		fmt.Printf("Average per active day: %.1fh\n", s.AverageDailyHours())
	}),
}

// printHourBars renders one labelled bar per id, highest first
func printHourBars(hours map[string]float64, labels map[string]string) {
	if len(hours) == 0 {
		fmt.Println("  (no hours logged)")
		return
	}

	ids := make([]string, 0, len(hours))
	var max float64
	for id, h := range hours {
		ids = append(ids, id)
		if h > max {
			max = h
		}
	}
	sort.Slice(ids, func(i, j int) bool { return hours[ids[i]] > hours[ids[j]] })

	for _, id := range ids {
		label := labels[id]
		if label == "" {
			label = shortID(id)
		}
		printBar(label, hours[id], max, tui.ColorAccentMain, fmt.Sprintf("%.1fh", hours[id]))
	}
}

// printBar renders a single horizontal bar scaled against max
func printBar(label string, value, max float64, color, suffix string) {
	const width = 30
	filled := 0
	if max > 0 {
		filled = int(value / max * width)
	}
	if filled > width {
		filled = width
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	fmt.Printf("  %-22s %s%s %s\n",
		truncate(label, 20),
		barStyle.Render(strings.Repeat("█", filled)),
		strings.Repeat(" ", width-filled),
		suffix)
}

func maxStatusCount(counts map[models.ProjectStatus]int) float64 {
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	return float64(max)
}
