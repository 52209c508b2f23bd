package result

import (
	"encoding/json"
	"fmt"
	"io"
)

type wireItem struct {
	Icon        string `json:"icon"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Compact     bool   `json:"compact,omitempty"`
}

// Render writes items to w, truncated to max (no truncation when max
// is zero or negative). Plain output is one line per item; JSON output
// is an array the host can map onto its own widgets.
func Render(w io.Writer, items []Item, max int, asJSON bool) error {
	items = Truncate(items, max)

	if asJSON {
		wire := make([]wireItem, 0, len(items))
		for _, it := range items {
			wire = append(wire, wireItem{
				Icon:        it.Icon,
				Label:       it.Label,
				Description: it.Description,
				Compact:     it.Compact,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(wire)
	}

	for _, it := range items {
		var err error
		if it.Compact {
			_, err = fmt.Fprintf(w, "%s: %s\n", it.Label, it.Description)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", it.Label, it.Description)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Truncate caps the item list at the host's configured maximum.
func Truncate(items []Item, max int) []Item {
	if max > 0 && len(items) > max {
		return items[:max]
	}
	return items
}
