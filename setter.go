package proctitle

// Setter applies a title through a platform's process-naming facility.
// Implementations never fail loudly: errors from the platform are dropped.
type Setter interface {
	// SetTitle changes what process listings display for this process.
	SetTitle(t Title)
	// Name identifies the implementation, e.g. "argv", "gspt" or "noop".
	Name() string
}

// ShortNamer is implemented by setters for platforms that keep a separate,
// shorter process name.
type ShortNamer interface {
	SetShortName(name string)
}

// Initializer is implemented by setters that need the original argument
// vector before they can change the title.
type Initializer interface {
	Init(argv []string)
}

var platform = newPlatformSetter()

// Platform returns the Setter selected for this build target.
func Platform() Setter {
	return platform
}

// Init records the original argument vector so the title can later be
// rewritten in place. Call it with os.Args before anything else retains
// references into the arguments. Any other slice is ignored. Only the
// first call has an effect; on platforms that need no initialization it
// does nothing.
func Init(argv []string) {
	if i, ok := platform.(Initializer); ok {
		i.Init(argv)
	}
}
