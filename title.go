package proctitle

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mrzor/proctitle/internal/procmeta"
)

// Title is a process title ready to hand to a Setter.
type Title struct {
	// Text is the full title.
	Text string
	// Program is the resolved executable that replaced argv[0], or "" when
	// resolution was unavailable.
	Program string
}

// HasProgram reports whether argv[0] was replaced by the resolved executable.
func (t Title) HasProgram() bool {
	return t.Program != ""
}

// ShortName is the basename of Program, or "" without one.
func (t Title) ShortName() string {
	if t.Program == "" {
		return ""
	}
	return filepath.Base(t.Program)
}

func (t Title) String() string {
	return t.Text
}

// BuildTitle joins args[1:] with single spaces, prefixed by exe when it is
// non-empty. A trailing " (deleted)" on exe is stripped. args[0] never
// appears in the result.
func BuildTitle(args []string, exe string) Title {
	exe = procmeta.StripDeleted(exe)

	var tail []string
	if len(args) > 1 {
		tail = args[1:]
	}

	parts := make([]string, 0, len(tail)+1)
	if exe != "" {
		parts = append(parts, exe)
	}
	parts = append(parts, tail...)

	return Title{
		Text:    strings.Join(parts, " "),
		Program: exe,
	}
}

// ResolveExecutable reads the symlink at link and returns its target with
// any " (deleted)" suffix removed. It returns false when link is empty or
// cannot be read; that means the feature is unavailable, not an error.
func ResolveExecutable(link string) (string, bool) {
	if link == "" {
		return "", false
	}
	target, err := os.Readlink(link)
	if err != nil {
		return "", false
	}
	target = procmeta.StripDeleted(target)
	if target == "" {
		return "", false
	}
	return target, true
}
