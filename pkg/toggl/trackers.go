package toggl

import (
	"context"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"togglaunch/pkg/cache"
	"togglaunch/pkg/tabular"
)

const noEntryRunning = "There is no time entry running!"

// TrackerClient drives the tracker subcommands of the toggl CLI and owns
// the tracker cache. Mutating operations return the tool's confirmation
// text, or a fallback message when the tool fails; list operations fall
// back to the last known records.
type TrackerClient struct {
	runner Runner
	store  *cache.Store[Tracker]
	max    int

	latest []Tracker
}

func NewTrackerClient(runner Runner, store *cache.Store[Tracker], maxResults int) *TrackerClient {
	return &TrackerClient{runner: runner, store: store, max: maxResults}
}

// List returns the most recent trackers. Served from memory or the
// on-disk cache unless refresh is set or a time filter is present; a
// time-filtered listing always hits the tool and is never cached.
func (c *TrackerClient) List(ctx context.Context, refresh bool, start, stop string) []Tracker {
	filtered := start != "" || stop != ""

	if !refresh && !filtered {
		if len(c.latest) > 0 {
			return c.latest
		}
		if records, err := c.store.Load(); err == nil {
			c.latest = records
			return records
		}
		refresh = true
	}

	log.Info("refreshing Toggl tracker list")
	args := []string{"ls", "--fields", "+project,+id,+tags"}
	if start != "" {
		args = append(args, "--start", start)
	}
	if stop != "" {
		args = append(args, "--stop", stop)
	}

	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		log.Errorf("failed to retrieve tracker list, returning last cache: %v", err)
		return c.latest
	}

	trackers := c.parseList(out)
	if filtered {
		return trackers
	}

	c.latest = trackers
	if refresh {
		if err := c.store.Save(trackers); err != nil {
			log.Warnf("could not cache trackers: %v", err)
		}
	}
	return c.latest
}

func (c *TrackerClient) parseList(out string) []Tracker {
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		return nil
	}

	offsets := tabular.Offsets(lines[0])
	seen := make(map[string]bool)
	trackers := make([]Tracker, 0, len(lines)-1)

	for _, line := range lines[1:] {
		fields := tabular.SplitLine(offsets, line, seen)
		if fields == nil || len(fields) < 7 || fields[0] == "" {
			continue
		}
		seen[fields[0]] = true

		trackers = append(trackers, Tracker{
			Description: fields[0],
			Duration:    fields[1],
			Start:       fields[2],
			Stop:        fields[3],
			Project:     fields[4],
			EntryID:     fields[5],
			Tags:        splitTags(fields[6]),
		})
		if len(trackers) >= c.max {
			break
		}
	}

	return trackers
}

// CheckRunning returns the currently running tracker, or nil when none
// is active or the tool cannot be reached.
func (c *TrackerClient) CheckRunning(ctx context.Context) *Tracker {
	out, err := c.runner.Run(ctx, "now")
	if err != nil {
		return nil
	}
	if out == noEntryRunning {
		return nil
	}

	lines := strings.Split(out, "\n")
	desc, id, _ := strings.Cut(lines[0], "#")

	tracker := Tracker{
		Description: strings.TrimSpace(desc),
		EntryID:     strings.TrimSpace(id),
		Stop:        StopRunning,
	}
	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Duration":
			tracker.Duration = value
		case "Project":
			tracker.Project = value
		case "Start":
			tracker.Start = value
		case "Tags":
			tracker.Tags = splitTags(value)
		}
	}

	return &tracker
}

// Continue resumes the latest tracker, or the named one when a
// description is given.
func (c *TrackerClient) Continue(ctx context.Context, description, start string) string {
	args := []string{"continue"}
	if description != "" {
		args = append(args, description)
	}
	if start != "" {
		args = append(args, "--start", start)
	}

	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		log.Errorf("continuing tracker unsuccessful: %v", err)
		return "Could not continue the last tracker!"
	}
	return out
}

func (c *TrackerClient) Stop(ctx context.Context) string {
	out, err := c.runner.Run(ctx, "stop")
	if err != nil {
		log.Errorf("stopping tracker unsuccessful: %v", err)
		return "Toggl tracker not running!"
	}
	return out
}

// Start begins a new tracker built from an existing record's
// description, tags and project reference.
func (c *TrackerClient) Start(ctx context.Context, tracker Tracker) string {
	args := []string{"start", tracker.Description}
	if len(tracker.Tags) > 0 {
		args = append(args, "--tags", strings.Join(tracker.Tags, ","))
	}
	if id, ok := ResolveProjectID(tracker.Project, 0); ok {
		args = append(args, "--project", strconv.Itoa(id))
	}

	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		log.Errorf("starting tracker %q unsuccessful: %v", tracker.Description, err)
		return "Could not start tracker " + tracker.Description + "!"
	}
	return out
}

// Add records a finished entry between start and stop.
func (c *TrackerClient) Add(ctx context.Context, start, stop, description string, tags []string, projectRef string, projectID int) string {
	if start == "" {
		return "Missing start date/time."
	}
	if stop == "" {
		return "Missing stop time."
	}
	if description == "" {
		return "No tracker description given."
	}

	args := []string{"add", start, stop, description}
	if len(tags) > 0 {
		args = append(args, "--tags", strings.Join(tags, ","))
	}
	if id, ok := ResolveProjectID(projectRef, projectID); ok {
		args = append(args, "--project", strconv.Itoa(id))
	}

	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		log.Errorf("adding tracker %q unsuccessful: %v", description, err)
		return "Adding tracker with name " + description + " was unsuccessful."
	}
	return out
}

// Edit amends the running tracker. A call with no fields set is a no-op
// and returns an empty string.
func (c *TrackerClient) Edit(ctx context.Context, description, projectRef, start string, tags []string) string {
	args := []string{"now"}
	if description != "" {
		args = append(args, "--description", description)
	}
	if id, ok := ResolveProjectID(projectRef, 0); ok {
		args = append(args, "--project", strconv.Itoa(id))
	}
	if start != "" {
		args = append(args, "--start", start)
	}
	if len(tags) > 0 {
		args = append(args, "--tags", strings.Join(tags, ","))
	}

	if len(args) == 1 {
		return ""
	}

	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		log.Errorf("editing tracker unsuccessful: %v", err)
		return "Tracker is currently not running."
	}
	return out
}

func (c *TrackerClient) Remove(ctx context.Context, id int) string {
	out, err := c.runner.Run(ctx, "rm", strconv.Itoa(id))
	if err != nil {
		log.Errorf("tracker deletion unsuccessful: %v", err)
		return "Tracker with id " + strconv.Itoa(id) + " does not exist!"
	}
	return out
}

// Summary returns the weekly per-day totals. The sum output uses a
// fixed twelve-column day field.
func (c *TrackerClient) Summary(ctx context.Context) []DayTotal {
	out, err := c.runner.Run(ctx, "sum", "-st")
	if err != nil {
		log.Errorf("could not summarize trackers: %v", err)
		return nil
	}

	var days []DayTotal
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			continue
		}
		if len(days) >= c.max {
			break
		}
		day, total := line, ""
		if len(line) > 12 {
			day, total = line[:12], line[12:]
		}
		days = append(days, DayTotal{
			Day:   strings.TrimSpace(day),
			Total: strings.TrimSpace(total),
		})
	}
	return days
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
