package viewer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"togglaunch/pkg/query"
	"togglaunch/pkg/result"
	"togglaunch/pkg/toggl"
)

// StartTracker offers starting a fresh tracker from the typed
// description, plus one entry per recent tracker to restart.
func (v *Viewer) StartTracker(ctx context.Context, args []string, q query.Arguments) []result.Item {
	desc := plainDescription(args, q)
	ref, id := v.projectRef(q)

	fresh := toggl.Tracker{Description: desc, Tags: q.Tags, Project: ref}
	if ref == "" && id != 0 {
		fresh.Project = strconv.Itoa(id)
	}

	items := []result.Item{{
		Icon:        startIcon,
		Label:       "Start",
		Description: "Start a new tracker.",
		OnEnter: result.Invoke{Name: "start", Fn: func() result.Outcome {
			return v.startNow(ctx, fresh)
		}},
		OnAltEnter: result.SetQuery{Query: v.kw("start")},
	}}

	items = append(items, v.trackerItems(ctx, startIcon, q,
		func(t toggl.Tracker) string {
			return fmt.Sprintf("Start %s @%s", t.Description, t.Project)
		},
		func(t toggl.Tracker) result.Action {
			return result.Invoke{Name: "start", Fn: func() result.Outcome {
				return v.startNow(ctx, t)
			}}
		},
	)...)
	return items
}

func (v *Viewer) startNow(ctx context.Context, tracker toggl.Tracker) result.Outcome {
	if tracker.Description == "" {
		return result.Outcome{Query: v.kw("start")}
	}
	v.showNotification(v.trackers.Start(ctx, tracker))
	return result.Outcome{Done: true}
}

// AddTracker records a finished entry; start, stop and description are
// all required, and the invoked add reports which one is missing.
func (v *Viewer) AddTracker(ctx context.Context, args []string, q query.Arguments) []result.Item {
	desc := plainDescription(args, q)

	label := "Add a new tracker."
	if desc != "" {
		label = fmt.Sprintf("Add a new tracker with description %s.", desc)
	}

	items := []result.Item{{
		Icon:        addIcon,
		Label:       "Add",
		Description: label,
		OnEnter: result.Invoke{Name: "add", Fn: func() result.Outcome {
			return v.addNow(ctx, desc, q)
		}},
		OnAltEnter: result.SetQuery{Query: v.kw("add")},
	}}
	return append(items, v.basicHints(3, result.DoNothing{})...)
}

func (v *Viewer) addNow(ctx context.Context, desc string, q query.Arguments) result.Outcome {
	ref, id := v.projectRef(q)
	v.showNotification(v.trackers.Add(ctx, q.Start, q.Stop, desc, q.Tags, ref, id))
	return result.Outcome{Done: true}
}

// ContinueTracker resumes the latest tracker, or any of the recent ones.
func (v *Viewer) ContinueTracker(ctx context.Context, args []string, q query.Arguments) []result.Item {
	items := []result.Item{{
		Icon:        continueIcon,
		Label:       "Continue",
		Description: "Continue the latest Toggl time tracker",
		OnEnter: result.Invoke{Name: "continue", Fn: func() result.Outcome {
			return v.continueNow(ctx, "", q.Start)
		}},
		OnAltEnter: result.SetQuery{Query: v.kw("continue")},
	}}

	items = append(items, v.trackerItems(ctx, continueIcon, q,
		func(t toggl.Tracker) string {
			return fmt.Sprintf("Continue %s @%s", t.Description, t.Project)
		},
		func(t toggl.Tracker) result.Action {
			return result.Invoke{Name: "continue", Fn: func() result.Outcome {
				return v.continueNow(ctx, t.Description, q.Start)
			}}
		},
	)...)
	return items
}

func (v *Viewer) continueNow(ctx context.Context, description, start string) result.Outcome {
	v.showNotification(v.trackers.Continue(ctx, description, start))
	return result.Outcome{Done: true}
}

// StopTracker stops the running tracker; without one it renders an
// error hint instead.
func (v *Viewer) StopTracker(ctx context.Context, args []string, q query.Arguments) []result.Item {
	if v.current == nil {
		return []result.Item{
			hintItem(sevError, "No active tracker is running.", result.SetQuery{Query: v.kw("")}, false),
		}
	}

	items := []result.Item{{
		Icon:        stopIcon,
		Label:       "Stop",
		Description: fmt.Sprintf("Stop tracking %s.", v.current.Description),
		OnEnter: result.Invoke{Name: "stop", Fn: func() result.Outcome {
			v.showNotification(v.trackers.Stop(ctx))
			return result.Outcome{Done: true}
		}},
		OnAltEnter: result.SetQuery{Query: v.kw("stop")},
	}}
	return append(items, v.runningDetails()...)
}

// EditTracker amends the running tracker with whatever sigil arguments
// were typed.
func (v *Viewer) EditTracker(ctx context.Context, args []string, q query.Arguments) []result.Item {
	if v.current == nil {
		return []result.Item{
			hintItem(sevError, "No active tracker is running.", result.SetQuery{Query: v.kw("")}, false),
		}
	}

	desc := plainDescription(args, q)
	items := []result.Item{{
		Icon:        editIcon,
		Label:       v.current.Description,
		Description: "Edit the running tracker.",
		OnEnter: result.Invoke{Name: "edit", Fn: func() result.Outcome {
			return v.editNow(ctx, desc, q)
		}},
		OnAltEnter: result.SetQuery{Query: v.kw("edit")},
	}}
	items = append(items, v.runningDetails()...)
	return append(items, v.basicHints(3, result.DoNothing{})...)
}

func (v *Viewer) editNow(ctx context.Context, desc string, q query.Arguments) result.Outcome {
	ref, id := v.projectRef(q)
	if ref == "" && id != 0 {
		ref = strconv.Itoa(id)
	}

	msg := v.trackers.Edit(ctx, desc, ref, q.Start, q.Tags)
	if msg == "" {
		// nothing to change; hand the query line back
		return result.Outcome{Query: v.kw("")}
	}
	v.showNotification(msg)
	return result.Outcome{Done: true}
}

// RemoveTracker deletes by id when one was typed, otherwise offers the
// recent trackers for selection.
func (v *Viewer) RemoveTracker(ctx context.Context, args []string, q query.Arguments) []result.Item {
	typedID := 0
	for _, a := range args {
		if id, err := strconv.Atoi(a); err == nil {
			typedID = id
			break
		}
	}

	primary := result.Item{
		Icon:        deleteIcon,
		Label:       "Delete",
		Description: "Delete tracker.",
		OnAltEnter:  result.SetQuery{Query: v.kw("delete")},
	}
	if typedID != 0 {
		primary.OnEnter = result.Invoke{Name: "delete", Fn: func() result.Outcome {
			return v.removeNow(ctx, typedID)
		}}
	} else {
		primary.OnEnter = result.SetQuery{Query: v.kw("delete")}
	}

	items := []result.Item{primary}
	items = append(items, v.trackerItems(ctx, deleteIcon, q,
		func(t toggl.Tracker) string {
			return fmt.Sprintf("Delete tracker %s", t.Description)
		},
		func(t toggl.Tracker) result.Action {
			return result.Invoke{Name: "delete", Fn: func() result.Outcome {
				id, err := strconv.Atoi(t.EntryID)
				if err != nil {
					log.Warnf("tracker %q carries a malformed id %q", t.Description, t.EntryID)
					return result.Outcome{Done: true}
				}
				return v.removeNow(ctx, id)
			}}
		},
	)...)
	return items
}

func (v *Viewer) removeNow(ctx context.Context, id int) result.Outcome {
	v.showNotification(v.trackers.Remove(ctx, id))
	return result.Outcome{Done: true}
}

// TotalTrackers renders the weekly per-day totals on demand.
func (v *Viewer) TotalTrackers(ctx context.Context, args []string, q query.Arguments) []result.Item {
	return []result.Item{{
		Icon:        reportIcon,
		Label:       "Generate Report",
		Description: "View a weekly total of your trackers.",
		OnEnter: result.Invoke{Name: "report", Fn: func() result.Outcome {
			var items []result.Item
			for _, day := range v.trackers.Summary(ctx) {
				items = append(items, result.Item{
					Icon:        reportIcon,
					Label:       day.Day,
					Description: day.Total,
					OnEnter:     result.DoNothing{},
				})
			}
			return result.Outcome{Items: items}
		}},
		OnAltEnter: result.SetQuery{Query: v.kw("report")},
	}}
}

// ListTrackers renders the recent trackers as a browsable list.
func (v *Viewer) ListTrackers(ctx context.Context, args []string, q query.Arguments) []result.Item {
	return []result.Item{{
		Icon:        browserIcon,
		Label:       "List",
		Description: fmt.Sprintf("View the last %d trackers.", v.cfg.MaxResults),
		OnEnter: result.Invoke{Name: "list", Fn: func() result.Outcome {
			items := v.trackerItems(ctx, reportIcon, q,
				func(t toggl.Tracker) string { return "Stopped: " + t.Stop },
				func(t toggl.Tracker) result.Action { return result.DoNothing{} },
			)
			return result.Outcome{Items: items}
		}},
		OnAltEnter: result.SetQuery{Query: v.kw("list")},
	}}
}

// ListProjects renders the active projects.
func (v *Viewer) ListProjects(ctx context.Context, args []string, q query.Arguments) []result.Item {
	return []result.Item{{
		Icon:        appIcon,
		Label:       "Projects",
		Description: "View all your projects.",
		OnEnter: result.Invoke{Name: "project", Fn: func() result.Outcome {
			var items []result.Item
			for _, p := range v.projects.List(ctx, true, q.Refresh) {
				items = append(items, result.Item{
					Icon:        appIcon,
					Label:       p.Name,
					Description: "Client: " + p.Client,
					OnEnter:     result.DoNothing{},
				})
			}
			return result.Outcome{Items: items}
		}},
		OnAltEnter: result.SetQuery{Query: v.kw("project")},
	}}
}

// Help lists the sigil usage tips.
func (v *Viewer) Help(ctx context.Context, args []string, q query.Arguments) []result.Item {
	return v.basicHints(len(hintMessages), result.SetQuery{Query: v.kw("")})
}

// trackerItems maps the recent trackers (running entry excluded) onto
// result items via the given text and action builders.
func (v *Viewer) trackerItems(ctx context.Context, icon string, q query.Arguments, text func(toggl.Tracker) string, action func(toggl.Tracker) result.Action) []result.Item {
	var items []result.Item
	for _, t := range v.trackers.List(ctx, q.Refresh, q.Start, q.Stop) {
		if t.Running() {
			continue
		}
		items = append(items, result.Item{
			Icon:        icon,
			Label:       t.Description,
			Description: text(t),
			OnEnter:     action(t),
		})
		if len(items) >= v.cfg.MaxResults {
			break
		}
	}
	return items
}

// runningDetails renders the running tracker's start time, project and
// tags as informational lines.
func (v *Viewer) runningDetails() []result.Item {
	lines := []string{"Started " + v.current.Start}
	if v.current.Project != "" {
		lines = append(lines, v.current.Project)
	}
	if len(v.current.Tags) > 0 {
		lines = append(lines, strings.Join(v.current.Tags, ", "))
	}

	items := make([]result.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, hintItem(sevInfo, line, result.DoNothing{}, true))
	}
	return items
}

func (v *Viewer) showNotification(body string) {
	if body == "" {
		return
	}
	if err := v.notifier.Notify(notificationTitle, body); err != nil {
		log.Warnf("could not display notification: %v", err)
	}
}
