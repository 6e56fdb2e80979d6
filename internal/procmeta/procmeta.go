package procmeta

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DeletedSuffix is appended by Linux to /proc/<pid>/exe targets whose
// binary has been unlinked.
const DeletedSuffix = " (deleted)"

// ProcessMetadata holds structured process information read from /proc.
type ProcessMetadata struct {
	Pid         int
	Environ     map[string]string // Parsed environment variables
	Args        []string          // Command-line arguments as the kernel reports them
	CmdlineFull string            // Full command line as single string
	Comm        string            // Short name (PR_SET_NAME)
	Exe         string            // Resolved executable, deleted suffix stripped
}

// Root is the procfs mount point. Tests point it at a fixture tree.
var Root = "/proc"

// ReadSelf reads metadata for the calling process.
func ReadSelf() (*ProcessMetadata, error) {
	return Read(os.Getpid())
}

// Read reads metadata for pid. The command line is required; comm, exe and
// environ are best-effort since they may be unreadable for other users'
// processes.
func Read(pid int) (*ProcessMetadata, error) {
	dir := Root + "/" + strconv.Itoa(pid)

	raw, err := os.ReadFile(dir + "/cmdline")
	if err != nil {
		return nil, fmt.Errorf("reading cmdline for pid %d: %w", pid, err)
	}

	args, full := parseCmdline(splitNul(raw))
	md := &ProcessMetadata{
		Pid:         pid,
		Args:        args,
		CmdlineFull: full,
		Environ:     map[string]string{},
	}

	if comm, err := os.ReadFile(dir + "/comm"); err == nil {
		md.Comm = strings.TrimRight(string(comm), "\n")
	}
	if exe, err := os.Readlink(dir + "/exe"); err == nil {
		md.Exe = StripDeleted(exe)
	}
	if environ, err := os.ReadFile(dir + "/environ"); err == nil {
		md.Environ = parseEnviron(splitNul(environ))
	}

	return md, nil
}

// StripDeleted removes a trailing " (deleted)" marker from an exe link target.
func StripDeleted(path string) string {
	return strings.TrimSuffix(path, DeletedSuffix)
}

// ParseEnviron parses KEY=VALUE entries such as os.Environ() output.
func ParseEnviron(raw []string) map[string]string {
	return parseEnviron(raw)
}

// splitNul splits a NUL-separated /proc buffer. Trailing NULs left behind by
// an overwritten argv area are dropped.
func splitNul(raw []byte) []string {
	raw = bytes.TrimRight(raw, "\x00")
	if len(raw) == 0 {
		return nil
	}
	parts := bytes.Split(raw, []byte{0})
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

// parseCmdline returns the arguments and their space-joined form.
func parseCmdline(raw []string) ([]string, string) {
	if len(raw) == 0 {
		return []string{}, ""
	}
	args := make([]string, len(raw))
	copy(args, raw)
	return args, strings.Join(args, " ")
}

// parseEnviron parses KEY=VALUE pairs. The last duplicate wins; entries
// without '=' or with an empty key are skipped.
func parseEnviron(raw []string) map[string]string {
	environ := make(map[string]string, len(raw))
	for _, entry := range raw {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		environ[key] = value
	}
	return environ
}
