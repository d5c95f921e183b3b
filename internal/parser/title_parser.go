package parser

import (
	"regexp"
	"strings"
	"time"
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title    string
	Tags     []string
	Priority string
	Assignee string
	DueDate  *time.Time
	Errors   []string
}

// ParseTitle extracts metadata from a task title using natural syntax
// Syntax: "Task title #tag1,tag2 @assignee +priority due:3days"
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Title:  input,
		Tags:   []string{},
		Errors: []string{},
	}

	// Extract tags (#tag1,tag2 or #tag1 #tag2)
	tagRegex := regexp.MustCompile(`#([a-zA-Z0-9_,-]+)`)
	for _, match := range tagRegex.FindAllStringSubmatch(input, -1) {
		if len(match) > 1 {
			for _, tag := range strings.Split(match[1], ",") {
				tag = strings.TrimSpace(tag)
				if tag != "" {
					result.Tags = append(result.Tags, tag)
				}
			}
		}
	}
	input = tagRegex.ReplaceAllString(input, "")

	// Extract assignee (@name, matched against the roster by the caller)
	assigneeRegex := regexp.MustCompile(`@([a-zA-Z0-9._@-]+)`)
	if m := assigneeRegex.FindStringSubmatch(input); len(m) > 1 {
		result.Assignee = m[1]
		input = assigneeRegex.ReplaceAllString(input, "")
	}

	// Extract priority (+low, +medium, +high, +urgent)
	priorityRegex := regexp.MustCompile(`\+([a-zA-Z]+)`)
	if m := priorityRegex.FindStringSubmatch(input); len(m) > 1 {
		priority := strings.ToLower(m[1])
		if isValidPriority(priority) {
			result.Priority = priority
		} else {
			result.Errors = append(result.Errors, "Invalid priority '"+m[1]+"'. Use: low, medium, high, or urgent")
		}
		input = priorityRegex.ReplaceAllString(input, "")
	}

	// Extract due date (due:3days, due:15/12/2026, etc.)
	dueRegex := regexp.MustCompile(`due:([^\s]+)`)
	if m := dueRegex.FindStringSubmatch(input); len(m) > 1 {
		dueDate, err := ParseDate(m[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+m[1]+"'")
		} else {
			result.DueDate = dueDate
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	// Whatever is left is the title
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}

func isValidPriority(p string) bool {
	switch p {
	case "low", "medium", "high", "urgent":
		return true
	}
	return false
}
