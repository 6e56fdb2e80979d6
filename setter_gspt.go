//go:build cgo && (darwin || freebsd || netbsd || openbsd || dragonfly)

package proctitle

import (
	"github.com/erikdubbelboer/gspt"
)

func newPlatformSetter() Setter {
	return gsptSetter{}
}

// gsptSetter uses the native setproctitle where libc has one and gspt's
// argv replacement otherwise. These platforms have no separate short name.
type gsptSetter struct{}

func (gsptSetter) Name() string {
	return "gspt"
}

func (gsptSetter) SetTitle(t Title) {
	if t.Text == "" {
		return
	}
	gspt.SetProcTitle(t.Text)
}
