//go:build !(linux && !android) && !(cgo && (darwin || freebsd || netbsd || openbsd || dragonfly))

package proctitle

func newPlatformSetter() Setter {
	return noopSetter{}
}

// noopSetter is used where there is no way to relabel a process.
type noopSetter struct{}

func (noopSetter) Name() string {
	return "noop"
}

func (noopSetter) SetTitle(Title) {}
