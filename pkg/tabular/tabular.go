package tabular

import (
	"strings"
	"unicode"
)

// Columns holding time values are right-aligned in the toggl output, so
// their boundary sits at the end of the header word instead of the start
// of the next one.
var rightAligned = map[string]bool{
	"start":    true,
	"stop":     true,
	"duration": true,
}

// Offsets scans a header line and returns the rune offsets at which
// each column after the first begins. Left-aligned columns contribute
// the index of their first character, right-aligned columns the index
// just past their last character. Offsets are counted in runes, not
// bytes: the tool aligns its columns by characters.
func Offsets(header string) []int {
	var offsets []int
	var current []rune

	for i, letter := range []rune(header) {
		right := rightAligned[strings.ToLower(strings.TrimSpace(string(current)))]

		switch {
		case !right && len(current) > 0 && current[len(current)-1] == ' ' && letter != ' ' && hasAlpha(string(current)):
			current = current[:0]
			offsets = append(offsets, i)
		case right && len(current) > 0 && current[len(current)-1] != ' ' && letter == ' ':
			current = current[:0]
			offsets = append(offsets, i)
		}

		current = append(current, letter)
	}

	return offsets
}

// SplitLine slices a data line at the given rune offsets, yielding one
// trimmed field per column plus the trailing remainder. Lines shorter
// than the offsets produce empty trailing fields.
//
// When seen is non-nil and the first field is already present in it,
// the line is a wrapped or repeated row and nil is returned.
func SplitLine(offsets []int, line string, seen map[string]bool) []string {
	runes := []rune(line)
	fields := make([]string, 0, len(offsets)+1)
	prev := 0

	for _, off := range offsets {
		fields = append(fields, slice(runes, prev, off))
		prev = off
	}
	fields = append(fields, slice(runes, prev, len(runes)))

	if seen != nil && seen[fields[0]] {
		return nil
	}
	return fields
}

func slice(runes []rune, start, end int) string {
	if start > len(runes) {
		start = len(runes)
	}
	if end > len(runes) {
		end = len(runes)
	}
	return strings.TrimSpace(string(runes[start:end]))
}

func hasAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
