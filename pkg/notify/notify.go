// Package notify delivers the external tool's confirmation text to the
// desktop after a mutating operation.
package notify

import (
	"github.com/gen2brain/beeep"
)

// Notifier shows a short user-facing notification.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop posts notifications through the desktop notification daemon.
// The backend has no update call, so every Notify posts a fresh popup;
// grouping is left to the daemon.
type Desktop struct {
	appName string
	icon    string
}

func NewDesktop(appName, icon string) *Desktop {
	return &Desktop{appName: appName, icon: icon}
}

func (d *Desktop) Notify(title, body string) error {
	if title == "" {
		title = d.appName
	}
	return beeep.Notify(title, body, d.icon)
}

// Discard drops notifications; used when the host disables them.
type Discard struct{}

func (Discard) Notify(title, body string) error { return nil }
