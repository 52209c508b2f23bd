// Package viewer builds the result lists for every launcher command and
// owns the executing side of their actions.
package viewer

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"togglaunch/pkg/config"
	"togglaunch/pkg/dispatch"
	"togglaunch/pkg/notify"
	"togglaunch/pkg/query"
	"togglaunch/pkg/result"
	"togglaunch/pkg/toggl"
)

// Icon references resolved by the launcher host.
const (
	appIcon      = "images/icon.svg"
	startIcon    = "images/start.svg"
	editIcon     = "images/edit.svg"
	addIcon      = "images/add.svg"
	stopIcon     = "images/stop.svg"
	deleteIcon   = "images/delete.svg"
	continueIcon = "images/continue.svg"
	reportIcon   = "images/reports.svg"
	browserIcon  = "images/browser.svg"
)

const notificationTitle = "Toggl Time Tracking"

// Viewer wires the query pipeline together. One Viewer serves one host;
// the only state crossing queries lives in the adapters' caches.
type Viewer struct {
	cfg      *config.Config
	trackers *toggl.TrackerClient
	projects *toggl.ProjectClient
	notifier notify.Notifier
	registry *dispatch.Registry

	// current is the running tracker captured at the start of the
	// in-flight query, nil when idle.
	current *toggl.Tracker
}

func New(cfg *config.Config, trackers *toggl.TrackerClient, projects *toggl.ProjectClient, notifier notify.Notifier) *Viewer {
	v := &Viewer{
		cfg:      cfg,
		trackers: trackers,
		projects: projects,
		notifier: notifier,
	}
	v.registry = v.buildRegistry()
	return v
}

func (v *Viewer) buildRegistry() *dispatch.Registry {
	commands := []*dispatch.Command{
		{Name: "start", Bare: true, Handler: v.StartTracker},
		{Name: "add", Bare: true, Handler: v.AddTracker},
		{Name: "continue", Aliases: []string{"cont", "cnt"}, Bare: true, Handler: v.ContinueTracker},
		{Name: "stop", Aliases: []string{"end"}, Bare: true, Handler: v.StopTracker},
		{Name: "edit", Aliases: []string{"now"}, Bare: true, Handler: v.EditTracker},
		{Name: "delete", Aliases: []string{"del", "remove"}, Bare: true, Handler: v.RemoveTracker},
		{Name: "report", Aliases: []string{"sum"}, Bare: true, Handler: v.TotalTrackers},
		{Name: "list", Bare: true, Handler: v.ListTrackers},
		{Name: "project", Bare: true, Handler: v.ListProjects},
		{Name: "help", Bare: true, Handler: v.Help},
	}

	byName := make(map[string]*dispatch.Command, len(commands))
	for _, c := range commands {
		byName[c.Name] = c
	}
	for alias, canonical := range v.cfg.Synonyms {
		if c, ok := byName[canonical]; ok {
			c.Aliases = append(c.Aliases, alias)
		} else {
			log.Warnf("synonym %q points at unknown command %q", alias, canonical)
		}
	}

	r := dispatch.NewRegistry(v.cfg.Threshold)
	for _, c := range commands {
		r.Register(c)
	}
	return r
}

// Process runs the full pipeline for one raw query string and returns
// the items to render.
func (v *Viewer) Process(ctx context.Context, raw string) []result.Item {
	if warning := v.PreCheck(); warning != nil {
		return warning
	}

	v.current = v.trackers.CheckRunning(ctx)

	tokens, args := query.Parse(raw)
	if len(tokens) == 0 {
		return v.DefaultOptions(ctx, args)
	}

	items := v.registry.Dispatch(ctx, tokens, args)
	if len(items) == 0 {
		return v.DefaultOptions(ctx, args)
	}

	// A trailing bare @ keeps the first result and offers the project
	// list as query continuations, so a project can be picked inline.
	rest := tokens[1:]
	if len(rest) > 0 && rest[len(rest)-1] == "@" {
		items = items[:1]
		items = append(items, v.projectPicker(ctx, raw, args)...)
	}

	return items
}

// PreCheck returns a standing warning when the external tool path does
// not exist; all commands are blocked until the config is fixed.
func (v *Viewer) PreCheck() []result.Item {
	if _, err := os.Stat(v.cfg.TogglPath); err == nil {
		return nil
	}
	return []result.Item{
		hintItem(sevError, "TogglCli is not properly configured.", result.SetQuery{Query: ""}, false),
		hintItem(sevInfo, "Check your Toggl executable path in the config.", result.DoNothing{}, true),
	}
}

// DefaultOptions is the home result set: the running tracker (or a
// continue shortcut) followed by the basic commands.
func (v *Viewer) DefaultOptions(ctx context.Context, q query.Arguments) []result.Item {
	var items []result.Item

	if v.current == nil {
		items = append(items, result.Item{
			Icon:        continueIcon,
			Label:       "Continue",
			Description: "Continue the latest Toggl time tracker",
			OnEnter: result.Invoke{Name: "continue", Fn: func() result.Outcome {
				return v.continueNow(ctx, "", q.Start)
			}},
			OnAltEnter: result.SetQuery{Query: v.kw("continue")},
		})
	} else {
		current := *v.current
		items = append(items,
			result.Item{
				Icon:        appIcon,
				Label:       "Currently Running: " + current.Description,
				Description: fmt.Sprintf("Since: %s @%s", current.Start, current.Project),
				OnEnter: result.Invoke{Name: "edit", Fn: func() result.Outcome {
					return result.Outcome{Items: v.EditTracker(ctx, nil, q)}
				}},
			},
			v.StopTracker(ctx, nil, q)[0],
		)
	}

	items = append(items,
		result.Item{
			Icon: startIcon, Label: "Start", Description: "Start a Toggl tracker",
			OnEnter: result.SetQuery{Query: v.kw("start")},
		},
		result.Item{
			Icon: addIcon, Label: "Add", Description: "Add a Toggl time tracker.",
			OnEnter: result.SetQuery{Query: v.kw("add")},
		},
		result.Item{
			Icon: deleteIcon, Label: "Delete", Description: "Delete a Toggl time tracker",
			OnEnter: result.SetQuery{Query: v.kw("delete")},
		},
		v.TotalTrackers(ctx, nil, q)[0],
		v.ListTrackers(ctx, nil, q)[0],
		v.ListProjects(ctx, nil, q)[0],
	)

	return items
}

// projectPicker renders the project list as query continuations for the
// trailing-@ augmentation.
func (v *Viewer) projectPicker(ctx context.Context, raw string, q query.Arguments) []result.Item {
	base := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "@"))

	var items []result.Item
	for _, p := range v.projects.List(ctx, true, q.Refresh) {
		items = append(items, result.Item{
			Icon:        appIcon,
			Label:       p.Name,
			Description: "Client: " + p.Client,
			OnEnter:     result.SetQuery{Query: fmt.Sprintf("%s %s @%d", v.cfg.Keyword, base, p.ID)},
		})
	}
	return items
}

// kw prefixes a query continuation with the launcher keyword.
func (v *Viewer) kw(s string) string {
	if s == "" {
		return v.cfg.Keyword + " "
	}
	return v.cfg.Keyword + " " + s
}

// plainDescription extracts the free-text description: the quoted one
// when present, otherwise the positional tokens minus sigils and flags.
func plainDescription(args []string, q query.Arguments) string {
	if q.Description != "" {
		return q.Description
	}
	var words []string
	for _, a := range args {
		if a == "refresh" || a == "AM" || a == "PM" {
			continue
		}
		if strings.ContainsAny(a[:1], `#@><"`) {
			continue
		}
		words = append(words, a)
	}
	return strings.Join(words, " ")
}

// projectRef picks the query's project reference, falling back to the
// configured default project.
func (v *Viewer) projectRef(q query.Arguments) (string, int) {
	if q.ProjectID != 0 {
		return "", q.ProjectID
	}
	if q.Project != "" {
		return q.Project, 0
	}
	if v.cfg.DefaultProject != 0 {
		return "", v.cfg.DefaultProject
	}
	return "", 0
}
