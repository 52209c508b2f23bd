package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"togglaunch/pkg/query"
	"togglaunch/pkg/result"
)

func item(label string) []result.Item {
	return []result.Item{{Label: label, OnEnter: result.DoNothing{}}}
}

func newTestRegistry(counts map[string]int) *Registry {
	handler := func(name string, out []result.Item) Handler {
		return func(ctx context.Context, args []string, q query.Arguments) []result.Item {
			counts[name]++
			return out
		}
	}

	r := NewRegistry(DefaultThreshold)
	r.Register(&Command{Name: "stop", Aliases: []string{"end"}, Bare: true, Handler: handler("stop", item("Stop"))})
	r.Register(&Command{Name: "start", Bare: true, Handler: handler("start", item("Start"))})
	r.Register(&Command{Name: "report", Aliases: []string{"sum"}, Bare: true, Handler: handler("report", item("Report"))})
	return r
}

func TestDispatchExact(t *testing.T) {
	counts := map[string]int{}
	r := newTestRegistry(counts)

	items := r.Dispatch(context.Background(), []string{"stop"}, query.Arguments{})
	require.Len(t, items, 1)
	assert.Equal(t, "Stop", items[0].Label)
	assert.Equal(t, 1, counts["stop"])
}

func TestDispatchAlias(t *testing.T) {
	counts := map[string]int{}
	r := newTestRegistry(counts)

	items := r.Dispatch(context.Background(), []string{"end"}, query.Arguments{})
	require.Len(t, items, 1)
	assert.Equal(t, "Stop", items[0].Label)
}

func TestDispatchFuzzyDedupesSynonyms(t *testing.T) {
	counts := map[string]int{}
	r := newTestRegistry(counts)

	items := r.Dispatch(context.Background(), []string{"stp"}, query.Arguments{})

	assert.Equal(t, 1, counts["stop"], "stop handler must run exactly once despite the end synonym")
	found := false
	for _, it := range items {
		if it.Label == "Stop" {
			found = true
		}
	}
	assert.True(t, found, "fuzzy dispatch must surface the stop result")
}

func TestDispatchFuzzySkipsNonBare(t *testing.T) {
	counts := map[string]int{}
	r := newTestRegistry(counts)
	r.Register(&Command{Name: "stow", Bare: false, Handler: func(ctx context.Context, args []string, q query.Arguments) []result.Item {
		counts["stow"]++
		return item("Stow")
	}})

	r.Dispatch(context.Background(), []string{"stp"}, query.Arguments{})
	assert.Zero(t, counts["stow"], "commands needing positional args are skipped in fallback mode")
}

func TestDispatchNoMatch(t *testing.T) {
	counts := map[string]int{}
	r := newTestRegistry(counts)

	items := r.Dispatch(context.Background(), []string{"zzzzzz"}, query.Arguments{})
	assert.Empty(t, items)
}

func TestDispatchEmptyTokens(t *testing.T) {
	counts := map[string]int{}
	r := newTestRegistry(counts)
	assert.Nil(t, r.Dispatch(context.Background(), nil, query.Arguments{}))
}

func TestDispatchFuzzyTakesFirstItemOnly(t *testing.T) {
	counts := map[string]int{}
	r := NewRegistry(DefaultThreshold)
	r.Register(&Command{Name: "stop", Bare: true, Handler: func(ctx context.Context, args []string, q query.Arguments) []result.Item {
		counts["stop"]++
		return []result.Item{{Label: "first"}, {Label: "second"}}
	}})

	items := r.Dispatch(context.Background(), []string{"stp"}, query.Arguments{})
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0].Label)
}
