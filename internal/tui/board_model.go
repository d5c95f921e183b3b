package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/almasgali/planhub/internal/models"
	"github.com/almasgali/planhub/internal/store"
)

// Focus represents what UI element has focus
type Focus int

const (
	FocusBoard Focus = iota
	FocusSearch
)

// BoardModel represents the TUI model for the kanban board
type BoardModel struct {
	width  int
	height int

	store    *store.Store
	statuses []models.TaskStatus
	columns  [][]models.Task

	// Cursor position: column index and row within it
	col int
	row int

	// UI state
	focus       Focus
	search      textinput.Model
	searchQuery string
	statusMsg   string
}

// NewBoardModel creates a new kanban board TUI model
func NewBoardModel(s *store.Store) BoardModel {
	search := textinput.New()
	search.Placeholder = "search tasks..."
	search.CharLimit = 64
	search.Width = 30

	m := BoardModel{
		store:    s,
		statuses: models.TaskStatuses(),
		search:   search,
		focus:    FocusBoard,
	}
	m.reload()
	return m
}

// reload rebuilds the columns from the store, applying the search
// filter
func (m *BoardModel) reload() {
	grouped := m.store.TasksByStatus()
	m.columns = make([][]models.Task, len(m.statuses))
	query := strings.ToLower(m.searchQuery)

	for i, status := range m.statuses {
		for _, t := range grouped[status] {
			if query != "" && !taskMatches(t, query) {
				continue
			}
			m.columns[i] = append(m.columns[i], t)
		}
	}

	m.clampCursor()
}

func taskMatches(t models.Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (m *BoardModel) clampCursor() {
	if m.col >= len(m.columns) {
		m.col = len(m.columns) - 1
	}
	if m.col < 0 {
		m.col = 0
	}
	if m.row >= len(m.columns[m.col]) {
		m.row = len(m.columns[m.col]) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// selected returns the task under the cursor, if any
func (m *BoardModel) selected() *models.Task {
	if m.col < 0 || m.col >= len(m.columns) {
		return nil
	}
	column := m.columns[m.col]
	if m.row < 0 || m.row >= len(column) {
		return nil
	}
	return &column[m.row]
}

// Init initializes the model
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusSearch {
			return m.handleSearchKeys(msg)
		}
		return m.handleBoardKeys(msg)
	}

	return m, nil
}

func (m BoardModel) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.focus = FocusBoard
		m.searchQuery = m.search.Value()
		m.reload()
		return m, nil
	case "esc":
		m.focus = FocusBoard
		m.search.SetValue("")
		m.searchQuery = ""
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m BoardModel) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.search.SetValue("")
			m.reload()
			return m, nil
		}
		return m, tea.Quit

	case "/":
		m.focus = FocusSearch
		m.search.Focus()
		return m, textinput.Blink

	case "left", "h":
		if m.col > 0 {
			m.col--
			m.clampCursor()
		}
		return m, nil

	case "right", "l":
		if m.col < len(m.columns)-1 {
			m.col++
			m.clampCursor()
		}
		return m, nil

	case "up", "k":
		if m.row > 0 {
			m.row--
		}
		return m, nil

	case "down", "j":
		if m.row < len(m.columns[m.col])-1 {
			m.row++
		}
		return m, nil

	case "H", "shift+left":
		return m.moveSelected(-1), nil

	case "L", "shift+right":
		return m.moveSelected(1), nil

	case "d":
		task := m.selected()
		if task == nil {
			return m, nil
		}
		done := models.StatusDone
		if _, err := m.store.UpdateTask(task.ID, store.UpdateTaskRequest{Status: &done}); err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", err)
		} else {
			m.statusMsg = fmt.Sprintf("✅ %q is done", task.Title)
		}
		m.reload()
		return m, nil
	}

	return m, nil
}

// moveSelected shifts the task under the cursor one column left or
// right, writing the transition through the store
func (m BoardModel) moveSelected(dir int) BoardModel {
	task := m.selected()
	if task == nil {
		return m
	}

	target := m.col + dir
	if target < 0 || target >= len(m.statuses) {
		return m
	}

	status := m.statuses[target]
	if _, err := m.store.UpdateTask(task.ID, store.UpdateTaskRequest{Status: &status}); err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m
	}

	m.statusMsg = fmt.Sprintf("Moved %q to %s", task.Title, status)
	m.col = target
	m.reload()

	// Follow the moved task into its new column
	for i, t := range m.columns[m.col] {
		if t.ID == task.ID {
			m.row = i
			break
		}
	}
	return m
}

// View renders the board
func (m BoardModel) View() string {
	colWidth := 28
	if m.width > 0 {
		if w := m.width/len(m.statuses) - 3; w > 20 && w < 44 {
			colWidth = w
		}
	}

	var columns []string
	for i, status := range m.statuses {
		columns = append(columns, m.renderColumn(i, status, colWidth))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Render("📋 Kanban board")

	var footer string
	if m.focus == FocusSearch {
		footer = "Search: " + m.search.View()
	} else {
		help := "←/→ column · ↑/↓ task · H/L move task · d done · / search · q quit"
		if m.searchQuery != "" {
			help = fmt.Sprintf("filter: %q (esc clears) · %s", m.searchQuery, help)
		}
		footer = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Render(help)
	}

	status := ""
	if m.statusMsg != "" {
		status = "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(m.statusMsg)
	}

	return fmt.Sprintf("%s\n\n%s\n%s%s\n", title, board, footer, status)
}

// renderColumn renders one kanban column with its header and cards
func (m BoardModel) renderColumn(idx int, status models.TaskStatus, width int) string {
	accent := lipgloss.Color(StatusColor(string(status)))

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Width(width).
		Align(lipgloss.Center)

	borderColor := lipgloss.Color(ColorBorder)
	if idx == m.col {
		borderColor = lipgloss.Color(ColorAccentBright)
	}

	columnStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Padding(0, 1)

	tasks := m.columns[idx]
	header := headerStyle.Render(fmt.Sprintf("%s (%d)", status, len(tasks)))

	var cards []string
	for i, t := range tasks {
		cards = append(cards, m.renderCard(t, idx == m.col && i == m.row, width-2))
	}
	if len(cards) == 0 {
		cards = append(cards, lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Render("(empty)"))
	}

	return columnStyle.Render(header + "\n\n" + strings.Join(cards, "\n"))
}

// renderCard renders a single task line inside a column
func (m BoardModel) renderCard(t models.Task, selected bool, width int) string {
	title := t.Title
	if len(title) > width-4 && width > 7 {
		title = title[:width-7] + "..."
	}

	marker := lipgloss.NewStyle().
		Foreground(lipgloss.Color(PriorityColor(string(t.Priority)))).
		Render("●")

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	if selected {
		style = style.Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	}

	line := fmt.Sprintf("%s %s", marker, style.Render(title))
	if t.ActualHours > 0 {
		line += lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Render(fmt.Sprintf(" %.1fh", t.ActualHours))
	}
	return line
}
