package viewer

import (
	"togglaunch/pkg/result"
)

type severity string

const (
	sevTip   severity = "Tip"
	sevInfo  severity = "Info"
	sevError severity = "Error"
)

// hintMessages in display order; basicHints takes a prefix of these.
var hintMessages = []string{
	"Set a project with the @ symbol",
	"Add tags with the # symbol.",
	"Set the start and end time with > & < respectively and the duration with both.",
	"If using spaces in your trackers or projects use quotation marks.",
	"Time formatting expects default TogglCli formatting.",
}

func hintItem(sev severity, msg string, action result.Action, compact bool) result.Item {
	return result.Item{
		Icon:        appIcon,
		Label:       string(sev),
		Description: msg,
		OnEnter:     action,
		Compact:     compact,
	}
}

// basicHints returns up to max usage tips, or nothing when hints are
// disabled in the config.
func (v *Viewer) basicHints(max int, action result.Action) []result.Item {
	if !v.cfg.Hints {
		return nil
	}
	if max <= 0 || max > len(hintMessages) {
		max = len(hintMessages)
	}

	items := make([]result.Item, 0, max)
	for _, msg := range hintMessages[:max] {
		items = append(items, hintItem(sevTip, msg, action, true))
	}
	return items
}
