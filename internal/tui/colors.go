package tui

// Color constants for the planhub TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (titles, user input)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Accent elements, active borders
	ColorAccentBright = "#A78BFA" // Hover, highlights, selected column

	// State Colors
	ColorError   = "#EF4444" // Overdue markers, validation errors
	ColorSuccess = "#22C55E" // Done column, confirmations
	ColorWarning = "#F59E0B" // On-hold, review column
	ColorInfo    = "#3B82F6" // Active, in-progress column
)

// StatusColor maps a kanban column to its accent color
func StatusColor(status string) string {
	switch status {
	case "backlog":
		return ColorSecondaryText
	case "in-progress":
		return ColorInfo
	case "review":
		return ColorWarning
	case "done":
		return ColorSuccess
	}
	return ColorPrimaryText
}

// PriorityColor maps a priority to its display color
func PriorityColor(priority string) string {
	switch priority {
	case "low":
		return ColorSecondaryText
	case "medium":
		return ColorInfo
	case "high":
		return ColorWarning
	case "urgent":
		return ColorError
	}
	return ColorPrimaryText
}
