package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color roles.
var (
	accent = lipgloss.Color("#FF5C00")
	muted  = lipgloss.Color("#777777")
	good   = lipgloss.Color("#5FAF5F")
	bad    = lipgloss.Color("#D70000")
)

// Styles.
var (
	heading = lipgloss.NewStyle().Foreground(accent).Bold(true)
	label   = lipgloss.NewStyle().Foreground(accent).Width(12)
	faint   = lipgloss.NewStyle().Foreground(muted)
	success = lipgloss.NewStyle().Foreground(good).Bold(true)
	failure = lipgloss.NewStyle().Foreground(bad).Bold(true)
)

// divider is a horizontal rule under headings.
var divider = faint.Render(strings.Repeat("─", 40))

// field renders one "key  value" line. Empty values are shown faint.
func field(key, value string) string {
	if value == "" {
		value = faint.Render("-")
	}
	return label.Render(key) + " " + value
}
