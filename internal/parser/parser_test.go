package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateAbsolute(t *testing.T) {
	tests := []struct {
		input string
		day   int
		month time.Month
		year  int
	}{
		{"15/12/2026", 15, time.December, 2026},
		{"1/1/2027", 1, time.January, 2027},
		{"2026-12-15", 15, time.December, 2026},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			require.NoError(t, err)
			require.NotNil(t, d)
			assert.Equal(t, tt.day, d.Day())
			assert.Equal(t, tt.month, d.Month())
			assert.Equal(t, tt.year, d.Year())
		})
	}
}

func TestParseDateRejectsInvalid(t *testing.T) {
	for _, input := range []string{"31/02/2026", "99/01/2026", "15/13/2026", "not-a-date", "3 fortnights"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			assert.Error(t, err)
		})
	}
}

func TestParseDateRelative(t *testing.T) {
	t.Run("today", func(t *testing.T) {
		d, err := ParseDate("today")
		require.NoError(t, err)
		assert.Equal(t, time.Now().Day(), d.Day())
	})

	t.Run("3 days", func(t *testing.T) {
		d, err := ParseDate("3 days")
		require.NoError(t, err)
		expected := time.Now().AddDate(0, 0, 3)
		assert.Equal(t, expected.Day(), d.Day())
	})

	t.Run("2 weeks", func(t *testing.T) {
		d, err := ParseDate("2 weeks")
		require.NoError(t, err)
		expected := time.Now().AddDate(0, 0, 14)
		assert.Equal(t, expected.Day(), d.Day())
	})
}

func TestParseDateEmpty(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2", 2},
		{"2.5", 2.5},
		{"2.5h", 2.5},
		{" 8H ", 8},
	}
	for _, tt := range tests {
		got, err := ParseHours(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	for _, input := range []string{"0", "-2", "abc", ""} {
		_, err := ParseHours(input)
		assert.Error(t, err, input)
	}
}

func TestParseTitle(t *testing.T) {
	t.Run("full syntax", func(t *testing.T) {
		parsed := ParseTitle("Fix login flow #auth,backend @maria +high due:15/12/2026")

		assert.Equal(t, "Fix login flow", parsed.Title)
		assert.Equal(t, []string{"auth", "backend"}, parsed.Tags)
		assert.Equal(t, "maria", parsed.Assignee)
		assert.Equal(t, "high", parsed.Priority)
		require.NotNil(t, parsed.DueDate)
		assert.Equal(t, 15, parsed.DueDate.Day())
		assert.Empty(t, parsed.Errors)
	})

	t.Run("plain title passes through", func(t *testing.T) {
		parsed := ParseTitle("Draft release notes")
		assert.Equal(t, "Draft release notes", parsed.Title)
		assert.Empty(t, parsed.Tags)
		assert.Empty(t, parsed.Assignee)
	})

	t.Run("invalid priority is reported", func(t *testing.T) {
		parsed := ParseTitle("Ship it +critical")
		assert.Empty(t, parsed.Priority)
		assert.Len(t, parsed.Errors, 1)
	})

	t.Run("separate hash tags accumulate", func(t *testing.T) {
		parsed := ParseTitle("Tune queries #db #performance")
		assert.Equal(t, []string{"db", "performance"}, parsed.Tags)
	})
}
