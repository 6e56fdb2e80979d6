package proctitle

import (
	"strings"
	"sync"
	"unsafe"
)

// argvArea is the memory block the kernel reports as the process command
// line. The Go runtime builds os.Args without copying, so the strings point
// straight into it.
type argvArea struct {
	mu    sync.Mutex
	buf   []byte
	argv0 string
}

// captureArgv locates the contiguous block spanning argv[0] through the last
// argument that directly follows its predecessor's NUL terminator. Every
// argv element is replaced by a private copy so that overwriting the block
// later cannot change strings the program still holds. It returns nil when
// there is nothing usable.
func captureArgv(argv []string) *argvArea {
	if len(argv) == 0 || argv[0] == "" {
		return nil
	}

	start := unsafe.StringData(argv[0])
	base := uintptr(unsafe.Pointer(start))
	end := base + uintptr(len(argv[0]))
	for _, arg := range argv[1:] {
		p := unsafe.StringData(arg)
		if p == nil || uintptr(unsafe.Pointer(p)) != end+1 {
			break
		}
		end = uintptr(unsafe.Pointer(p)) + uintptr(len(arg))
	}

	area := &argvArea{
		buf:   unsafe.Slice(start, end-base),
		argv0: strings.Clone(argv[0]),
	}
	for i := range argv {
		argv[i] = strings.Clone(argv[i])
	}
	return area
}

// write copies s into the block, truncating to its size and NUL-filling the
// remainder. The terminator after the block is never touched.
func (a *argvArea) write(s string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := copy(a.buf, s)
	clear(a.buf[n:])
}

// displayText renders t the way setproctitle does: a title that carries its
// own program is shown as is, otherwise the original argv[0] leads.
func displayText(t Title, argv0 string) string {
	if t.HasProgram() {
		return t.Text
	}
	if t.Text == "" {
		return argv0
	}
	return argv0 + " " + t.Text
}
