package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses the date formats accepted on the command line
// Supported formats:
// - dd/mm/yyyy (e.g., "15/12/2026")
// - yyyy-mm-dd (e.g., "2026-12-15")
// - "today", "tomorrow", "yesterday"
// - X days / X weeks (e.g., "3 days", "2 weeks")
func ParseDate(input string) (*time.Time, error) {
	if input == "" {
		return nil, nil
	}

	input = strings.TrimSpace(input)

	switch strings.ToLower(input) {
	case "today":
		d := endOfDay(time.Now())
		return &d, nil
	case "tomorrow":
		d := endOfDay(time.Now().AddDate(0, 0, 1))
		return &d, nil
	case "yesterday":
		d := endOfDay(time.Now().AddDate(0, 0, -1))
		return &d, nil
	}

	if d, err := parseAbsolute(input); err == nil {
		return d, nil
	}

	if d, err := parseRelative(input); err == nil {
		return d, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, yyyy-mm-dd, today, X days, or X weeks")
}

// parseAbsolute parses dd/mm/yyyy and yyyy-mm-dd formats
func parseAbsolute(input string) (*time.Time, error) {
	var day, month, year int

	if m := regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`).FindStringSubmatch(input); len(m) == 4 {
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
	} else if m := regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`).FindStringSubmatch(input); len(m) == 4 {
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
	} else {
		return nil, fmt.Errorf("invalid date format")
	}

	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	date := time.Date(year, time.Month(month), day, 23, 59, 59, 0, time.Local)

	// Catches impossible dates like 31/02 that roll over
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &date, nil
}

// parseRelative parses "X days" / "X weeks" style offsets from now
func parseRelative(input string) (*time.Time, error) {
	input = strings.ToLower(input)

	m := regexp.MustCompile(`^(\d+)\s*(day|days|week|weeks)$`).FindStringSubmatch(input)
	if len(m) != 3 {
		return nil, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}

	days := amount
	if strings.HasPrefix(m[2], "week") {
		days = amount * 7
	}

	date := endOfDay(time.Now().AddDate(0, 0, days))
	return &date, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.Local)
}

// FormatDate renders a date for display, relative when close to today
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}

	today := time.Now().Truncate(24 * time.Hour)
	target := t.Truncate(24 * time.Hour)
	days := int(target.Sub(today).Hours() / 24)

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1 && days <= 7:
		return fmt.Sprintf("in %d days", days)
	case days < -1 && days >= -7:
		return fmt.Sprintf("%d days ago", -days)
	}
	return t.Format("02/01/2006")
}

// ParseHours parses a logged-hours value like "2", "2.5" or "2.5h"
func ParseHours(input string) (float64, error) {
	input = strings.TrimSuffix(strings.TrimSpace(strings.ToLower(input)), "h")
	hours, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours value %q", input)
	}
	if hours <= 0 {
		return 0, fmt.Errorf("hours must be greater than zero")
	}
	return hours, nil
}
