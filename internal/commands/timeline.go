package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/almasgali/planhub/internal/models"
	"github.com/almasgali/planhub/internal/store"
	"github.com/almasgali/planhub/internal/tui"
)

var timelineCmd = &cobra.Command{
	Use:     "timeline",
	Aliases: []string{"gantt"},
	Short:   "Show a Gantt-style project timeline",
	Long:    "Render each project as a bar across the combined date range of all projects.",
	Run: withStore(func(s *store.Store, cmd *cobra.Command, args []string) {
		projects := s.Projects()

		var dated []models.Project
		for _, p := range projects {
			if !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.EndDate.After(p.StartDate) {
				dated = append(dated, p)
			}
		}
		if len(dated) == 0 {
			fmt.Println("No projects with a start and end date to draw.")
			return
		}

		sort.Slice(dated, func(i, j int) bool {
			return dated[i].StartDate.Before(dated[j].StartDate)
		})

		rangeStart := dated[0].StartDate
		rangeEnd := dated[0].EndDate
		for _, p := range dated[1:] {
			if p.StartDate.Before(rangeStart) {
				rangeStart = p.StartDate
			}
			if p.EndDate.After(rangeEnd) {
				rangeEnd = p.EndDate
			}
		}

		const width = 60
		total := rangeEnd.Sub(rangeStart)

		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(tui.ColorAccentBright))
		muted := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))

		fmt.Println(header.Render("🗓  Timeline"))
		fmt.Printf("%-26s %s — %s\n", "", rangeStart.Format("02 Jan 2006"), rangeEnd.Format("02 Jan 2006"))
		fmt.Println()

		today := time.Now()
		for _, p := range dated {
			offset := scale(p.StartDate.Sub(rangeStart), total, width)
			length := scale(p.EndDate.Sub(p.StartDate), total, width)
			if length < 1 {
				length = 1
			}
			if offset+length > width {
				length = width - offset
			}

			color := p.Color
			if color == "" {
				color = tui.ColorAccentMain
			}
			barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))

			bar := strings.Repeat(" ", offset) +
				barStyle.Render(strings.Repeat("█", length)) +
				strings.Repeat(" ", width-offset-length)

			marker := " "
			if p.Status == models.ProjectCompleted {
				marker = "✓"
			} else if p.EndDate.Before(today) {
				marker = "!"
			}

			fmt.Printf("%-24s %s %s %s\n",
				truncate(p.Title, 22),
				marker,
				bar,
				muted.Render(fmt.Sprintf("%d%%", p.Progress)))
		}
	}),
}

// scale maps a duration within the total range onto the bar width
func scale(d, total time.Duration, width int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(d) / float64(total) * float64(width))
}
