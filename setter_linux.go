//go:build linux && !android

package proctitle

import (
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// maxShortName is TASK_COMM_LEN without the terminator.
const maxShortName = 15

// commPath targets the thread-group leader, which is what ps -o comm shows.
var commPath = "/proc/self/comm"

// startArgs and startArgv0 record os.Args as the runtime built it, pointing
// into the kernel's argv block. Only that vector may be captured.
var (
	startArgs  = os.Args
	startArgv0 = argv0Data(os.Args)
)

func argv0Data(argv []string) *byte {
	if len(argv) == 0 || argv[0] == "" {
		return nil
	}
	return unsafe.StringData(argv[0])
}

// isProcessArgv reports whether argv is the untouched startup os.Args.
// Any other slice points at Go-owned memory (string literals, heap
// buffers) that must never be overwritten.
func isProcessArgv(argv []string) bool {
	if len(argv) == 0 || len(startArgs) == 0 || startArgv0 == nil {
		return false
	}
	return &argv[0] == &startArgs[0] && argv0Data(argv) == startArgv0
}

func newPlatformSetter() Setter {
	return &argvSetter{}
}

// argvSetter rewrites the original argv block in place.
type argvSetter struct {
	once sync.Once
	area *argvArea
}

func (s *argvSetter) Name() string {
	return "argv"
}

// Init captures the argv block behind os.Args. Slices other than the
// startup os.Args are ignored, as are calls after the first capture.
func (s *argvSetter) Init(argv []string) {
	if !isProcessArgv(argv) {
		return
	}
	s.once.Do(func() {
		s.area = captureArgv(argv)
	})
}

// SetTitle does nothing until Init has captured an argv block.
func (s *argvSetter) SetTitle(t Title) {
	if s.area == nil {
		return
	}
	s.area.write(displayText(t, s.area.argv0))
}

// SetShortName sets the name shown by top and ps -o comm. PR_SET_NAME only
// renames the calling thread, so off the main thread the name is written
// to /proc/self/comm instead. Errors are ignored.
func (s *argvSetter) SetShortName(name string) {
	if name == "" {
		return
	}
	if len(name) > maxShortName {
		name = name[:maxShortName]
	}

	if unix.Gettid() == unix.Getpid() {
		if p, err := unix.BytePtrFromString(name); err == nil {
			if unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(p)), 0, 0, 0) == nil {
				return
			}
		}
	}
	_ = os.WriteFile(commPath, []byte(name), 0) //nolint:errcheck // Best-effort, kernel may refuse
}
