// Package dispatch maps the first query token to a command handler,
// falling back to fuzzy matching across every registered keyword when
// the token is not an exact command name.
package dispatch

import (
	"context"
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	log "github.com/sirupsen/logrus"

	"togglaunch/pkg/query"
	"togglaunch/pkg/result"
)

// DefaultThreshold is the minimum 0-100 similarity for a fuzzy keyword
// match.
const DefaultThreshold = 50

// Handler produces the result items for one command. args holds the
// query tokens after the command keyword; in fuzzy fallback mode it is
// nil.
type Handler func(ctx context.Context, args []string, q query.Arguments) []result.Item

// Command is one registry entry. Aliases share the handler; a command
// that cannot run without positional arguments sets Bare to false and
// is skipped during fuzzy fallback.
type Command struct {
	Name    string
	Aliases []string
	Bare    bool
	Handler Handler
}

// Registry holds the fixed command table for one query pipeline. It
// keeps no state across queries.
type Registry struct {
	byName    map[string]*Command
	threshold int
}

func NewRegistry(threshold int) *Registry {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Registry{
		byName:    make(map[string]*Command),
		threshold: threshold,
	}
}

func (r *Registry) Register(cmd *Command) {
	r.byName[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.byName[alias] = cmd
	}
}

// Dispatch routes the query tokens. An exact first-token match invokes
// its handler with the remaining tokens. Otherwise every keyword is
// fuzzy-scored against the token and each matching command contributes
// the first item it produces; synonym keywords sharing one command
// contribute only once. An empty return means the caller should fall
// back to its default result set.
func (r *Registry) Dispatch(ctx context.Context, tokens []string, q query.Arguments) []result.Item {
	if len(tokens) == 0 {
		return nil
	}

	head, rest := tokens[0], tokens[1:]
	if cmd, ok := r.byName[head]; ok {
		log.Debugf("query action: %s", cmd.Name)
		return cmd.Handler(ctx, rest, q)
	}

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	matched := make(map[*Command]bool)
	var items []result.Item
	for _, name := range names {
		cmd := r.byName[name]
		if matched[cmd] || !cmd.Bare {
			continue
		}
		if fuzzy.Ratio(head, name) < r.threshold {
			continue
		}
		matched[cmd] = true
		log.Debugf("fuzzy match: %q -> %s", head, cmd.Name)
		if out := cmd.Handler(ctx, nil, q); len(out) > 0 {
			items = append(items, out[0])
		}
	}

	return items
}
