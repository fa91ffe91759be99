// Package input parses and completes the board's command prompt.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Usage       string
	Description string
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// SplitCommand splits "/name rest of line" into its lower-cased name and the
// trimmed remainder. Input without a leading slash has an empty name.
func SplitCommand(input string) (name, rest string) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", input
	}
	name, rest, _ = strings.Cut(input, " ")
	return strings.ToLower(name), strings.TrimSpace(rest)
}

// LeadingDates splits up to limit leading date tokens off s. A token counts as a
// date when isDate accepts it; the rest of s is returned untouched.
func LeadingDates(s string, limit int, isDate func(string) bool) (dates []string, rest string) {
	rest = strings.TrimSpace(s)
	for len(dates) < limit && rest != "" {
		tok, tail, _ := strings.Cut(rest, " ")
		if !isDate(tok) {
			break
		}
		dates = append(dates, tok)
		rest = strings.TrimSpace(tail)
	}
	return dates, rest
}
