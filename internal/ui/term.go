package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/weekview/internal/calendar"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: green for positive metrics
	colorStats = color.New(color.FgGreen)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Task bars cycle through these by project.
	projectColors = []*color.Color{
		color.New(color.FgCyan, color.Bold),
		color.New(color.FgMagenta),
		color.New(color.FgYellow),
		color.New(color.FgBlue, color.Bold),
		color.New(color.FgGreen),
		color.New(color.FgRed),
	}
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatBar colors a task bar by its project.
func formatBar(p calendar.PlacedTask, s string) string {
	return projectColor(p.Task.ProjectID).Sprint(s)
}

func projectColor(projectID int64) *color.Color {
	n := int64(len(projectColors))
	return projectColors[((projectID%n)+n)%n]
}
