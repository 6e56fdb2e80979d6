package procmeta

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnviron_Basic(t *testing.T) {
	raw := []string{
		"PATH=/usr/bin:/bin",
		"HOME=/home/user",
	}

	expected := map[string]string{
		"PATH": "/usr/bin:/bin",
		"HOME": "/home/user",
	}

	assert.Equal(t, expected, parseEnviron(raw))
}

func TestParseEnviron_MultipleEquals(t *testing.T) {
	result := parseEnviron([]string{"EQUATION=x=y=z", "EMPTY="})

	assert.Len(t, result, 2)
	assert.Equal(t, "x=y=z", result["EQUATION"])
	assert.Equal(t, "", result["EMPTY"])
}

func TestParseEnviron_DuplicateKeysLastWins(t *testing.T) {
	result := parseEnviron([]string{"KEY=value1", "KEY=value2"})

	assert.Len(t, result, 1)
	assert.Equal(t, "value2", result["KEY"])
}

func TestParseEnviron_MalformedEntries(t *testing.T) {
	result := ParseEnviron([]string{"NOEQUALS", "=VALUE", "", "VALID=value"})

	assert.Equal(t, map[string]string{"VALID": "value"}, result)
}

func TestParseCmdline_Basic(t *testing.T) {
	args, fullCmd := parseCmdline([]string{"/usr/bin/app", "--flag", "value"})

	assert.Equal(t, []string{"/usr/bin/app", "--flag", "value"}, args)
	assert.Equal(t, "/usr/bin/app --flag value", fullCmd)
}

func TestParseCmdline_Empty(t *testing.T) {
	args, fullCmd := parseCmdline(nil)

	assert.Empty(t, args)
	assert.Empty(t, fullCmd)
}

func TestParseCmdline_EmptyArgs(t *testing.T) {
	args, fullCmd := parseCmdline([]string{"cmd", "", "arg"})

	require.Len(t, args, 3)
	assert.Equal(t, "cmd  arg", fullCmd)
}

func TestSplitNul(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "regular cmdline", raw: "app\x00--flag\x00value\x00", want: []string{"app", "--flag", "value"}},
		{name: "overwritten area padding", raw: "/usr/bin/app --flag\x00\x00\x00\x00", want: []string{"/usr/bin/app --flag"}},
		{name: "no terminator", raw: "app", want: []string{"app"}},
		{name: "empty", raw: "", want: nil},
		{name: "only padding", raw: "\x00\x00", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitNul([]byte(tt.raw)))
		})
	}
}

func TestStripDeleted(t *testing.T) {
	assert.Equal(t, "/usr/bin/app", StripDeleted("/usr/bin/app (deleted)"))
	assert.Equal(t, "/usr/bin/app", StripDeleted("/usr/bin/app"))
	assert.Equal(t, "/opt/x (deleted) y", StripDeleted("/opt/x (deleted) y"))
}

func TestRead_Fixture(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "4242")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte("/usr/bin/app --flag value\x00\x00\x00"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comm"), []byte("app\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "environ"), []byte("A=1\x00B=2\x00"), 0o644))
	require.NoError(t, os.Symlink("/usr/bin/app (deleted)", filepath.Join(dir, "exe")))

	old := Root
	Root = root
	t.Cleanup(func() { Root = old })

	md, err := Read(4242)
	require.NoError(t, err)

	assert.Equal(t, 4242, md.Pid)
	assert.Equal(t, []string{"/usr/bin/app --flag value"}, md.Args)
	assert.Equal(t, "/usr/bin/app --flag value", md.CmdlineFull)
	assert.Equal(t, "app", md.Comm)
	assert.Equal(t, "/usr/bin/app", md.Exe)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, md.Environ)
}

func TestRead_OptionalFilesMissing(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "7")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte("sh\x00"), 0o644))

	old := Root
	Root = root
	t.Cleanup(func() { Root = old })

	md, err := Read(7)
	require.NoError(t, err)
	assert.Equal(t, []string{"sh"}, md.Args)
	assert.Empty(t, md.Comm)
	assert.Empty(t, md.Exe)
	assert.NotNil(t, md.Environ)
}

func TestRead_MissingProcess(t *testing.T) {
	old := Root
	Root = t.TempDir()
	t.Cleanup(func() { Root = old })

	_, err := Read(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pid 1")
}

func TestReadSelf_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("Linux-specific test")
	}

	md, err := ReadSelf()
	require.NoError(t, err)

	assert.Equal(t, os.Getpid(), md.Pid)
	assert.NotEmpty(t, md.Args)
	assert.NotEmpty(t, md.Comm)

	exe, err := os.Executable()
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(exe), filepath.Base(md.Exe), "exe for pid "+strconv.Itoa(md.Pid))
}
