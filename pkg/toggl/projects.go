package toggl

import (
	"context"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"togglaunch/pkg/cache"
	"togglaunch/pkg/tabular"
)

// ProjectClient drives the "projects" supercommand and owns the project
// cache. The full parsed list is cached; the active filter is applied on
// the way out.
type ProjectClient struct {
	runner Runner
	store  *cache.Store[Project]

	latest []Project
}

func NewProjectClient(runner Runner, store *cache.Store[Project]) *ProjectClient {
	return &ProjectClient{runner: projectRunner{inner: runner}, store: store}
}

// List returns the known projects, consulting the cache unless refresh
// is set. A fresh cache is written only after a real external call.
func (p *ProjectClient) List(ctx context.Context, activeOnly, refresh bool) []Project {
	if !refresh {
		if len(p.latest) > 0 {
			return filterActive(p.latest, activeOnly)
		}
		if records, err := p.store.Load(); err == nil {
			p.latest = records
			return filterActive(records, activeOnly)
		}
	}

	log.Info("refreshing Toggl project list")
	out, err := p.runner.Run(ctx, "ls", "-f", "+hex_color,+active")
	if err != nil {
		log.Errorf("failed to retrieve project list, returning last cache: %v", err)
		return filterActive(p.latest, activeOnly)
	}

	p.latest = parseProjects(out)
	if err := p.store.Save(p.latest); err != nil {
		log.Warnf("could not cache projects: %v", err)
	}
	return filterActive(p.latest, activeOnly)
}

func parseProjects(out string) []Project {
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		return nil
	}

	offsets := tabular.Offsets(lines[0])
	seen := make(map[string]bool)
	projects := make([]Project, 0, len(lines)-1)

	for _, line := range lines[1:] {
		fields := tabular.SplitLine(offsets, line, seen)
		if fields == nil || len(fields) < 5 || fields[0] == "" {
			continue
		}
		seen[fields[0]] = true

		id, err := strconv.Atoi(fields[3])
		if err != nil {
			continue
		}
		projects = append(projects, Project{
			Name:   fields[0],
			Client: fields[1],
			Active: strings.EqualFold(fields[2], "true"),
			ID:     id,
			Color:  fields[4],
		})
	}

	return projects
}

func filterActive(projects []Project, activeOnly bool) []Project {
	if !activeOnly {
		return projects
	}
	active := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}
