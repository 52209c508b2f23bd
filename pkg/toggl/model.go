package toggl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StopRunning marks a tracker that is still being tracked; the toggl
// output has no stop time for it.
const StopRunning = "running"

// Tracker is a single remote time entry. A fresh list is built on every
// refresh; records are never mutated in place.
type Tracker struct {
	Description string   `json:"description"`
	EntryID     string   `json:"entry_id"`
	Stop        string   `json:"stop"`
	Project     string   `json:"project,omitempty"`
	Start       string   `json:"start,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (t Tracker) Running() bool {
	return t.Stop == StopRunning
}

// Project is a categorization entity trackers may reference.
type Project struct {
	Name   string `json:"name"`
	ID     int    `json:"project_id"`
	Client string `json:"client"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
}

// DayTotal is one row of the weekly summary.
type DayTotal struct {
	Day   string
	Total string
}

var projectRefPattern = regexp.MustCompile(`^(.*)\(#?(\d+)\)\s*$`)

// ParseProjectRef extracts the name and numeric id from a display
// reference of the form "Name (#123)".
func ParseProjectRef(ref string) (string, int, error) {
	m := projectRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", 0, fmt.Errorf("not a project reference: %q", ref)
	}
	id, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, fmt.Errorf("bad project id in %q: %w", ref, err)
	}
	return strings.TrimSpace(m[1]), id, nil
}

// ResolveProjectID turns either a raw numeric id or a "Name (#123)"
// display reference into the id the toggl CLI expects.
func ResolveProjectID(ref string, id int) (int, bool) {
	if id != 0 {
		return id, true
	}
	if ref == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(ref); err == nil {
		return n, true
	}
	if _, n, err := ParseProjectRef(ref); err == nil {
		return n, true
	}
	return 0, false
}
