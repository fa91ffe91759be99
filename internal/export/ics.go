// Package export renders tasks and week layouts into interchange formats
// and reads task lists back in.
package export

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/javiermolinar/weekview/internal/task"
)

const (
	icsDateLayout = "20060102"
	icsLineLimit  = 75 // octets per content line, excluding CRLF
)

// ICS builds an iCalendar document with one all-day event per task.
// DTEND is exclusive, so a task ending on the 12th ends on the 13th in the file.
func ICS(tasks []*task.Task, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//weekview//Week Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	stamp := now.UTC().Format("20060102T150405Z")

	for _, t := range tasks {
		if t == nil {
			continue
		}
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+escapeICSText(eventUID(t)),
			"DTSTAMP:"+stamp,
			"SUMMARY:"+escapeICSText(summaryFor(t)),
			"DTSTART;VALUE=DATE:"+t.Start.Time().Format(icsDateLayout),
			"DTEND;VALUE=DATE:"+t.End.AddDays(1).Time().Format(icsDateLayout),
		)
		if t.ProjectID != 0 {
			lines = append(lines, fmt.Sprintf("CATEGORIES:project-%d", t.ProjectID))
		}
		lines = append(lines, "END:VEVENT")
	}
	lines = append(lines, "END:VCALENDAR", "")
	for i, line := range lines {
		lines[i] = foldICSLine(line)
	}

	return strings.Join(lines, "\r\n")
}

func eventUID(t *task.Task) string {
	if t.ID == 0 {
		return "task-" + uuid.NewString() + "@weekview"
	}
	return fmt.Sprintf("task-%d@weekview", t.ID)
}

func summaryFor(t *task.Task) string {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return "weekview task"
	}
	return title
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}

// foldICSLine splits a content line into pieces of at most 75 octets without
// cutting a UTF-8 sequence. Continuation lines start with a single space.
func foldICSLine(line string) string {
	if len(line) <= icsLineLimit {
		return line
	}
	var b strings.Builder
	limit := icsLineLimit
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		limit = icsLineLimit - 1
	}
	b.WriteString(line)
	return b.String()
}
