package main

import (
	"bytes"
	"context"
	"os"
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heapArgv lays out args NUL-separated in a writable buffer, the way the
// kernel lays out a real argv block.
func heapArgv(args ...string) ([]byte, []string) {
	size := 0
	for _, a := range args {
		size += len(a) + 1
	}
	block := make([]byte, size)
	argv := make([]string, len(args))
	off := 0
	for i, a := range args {
		copy(block[off:], a)
		argv[i] = unsafe.String(&block[off], len(a))
		off += len(a) + 1
	}
	return block, argv
}

func cleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PROCTITLE_DISABLE", "PROCTITLE_EXE_LINK", "PROCTITLE_FORMAT", "PROCTITLE_DEBUG",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestRootCmd_Version(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd([]string{"proctitle"})
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "dev (commit: unknown")
}

func TestRootCmd_UnknownFlag(t *testing.T) {
	cmd := newRootCmd([]string{"proctitle"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--nope"})

	assert.Error(t, cmd.Execute())
}

func TestRun_Disabled(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PROCTITLE_DISABLE", "true")

	var out bytes.Buffer
	err := run(context.Background(), &out, []string{"proctitle", "--hold"}, &options{})
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRun_BadFormat(t *testing.T) {
	cleanEnv(t)

	err := run(context.Background(), &bytes.Buffer{}, []string{"proctitle"}, &options{format: "title +"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROCTITLE_FORMAT")
}

func TestRun_HoldReturnsOnCancel(t *testing.T) {
	cleanEnv(t)
	t.Setenv("PROCTITLE_DISABLE", "true")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, run(ctx, &out, []string{"proctitle"}, &options{hold: true}))
	assert.Contains(t, out.String(), "Holding as PID")
}

func TestRun_ShowLeavesForeignArgvAlone(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("Linux-specific test")
	}
	cleanEnv(t)

	block, argv := heapArgv("proctitle", "--show", "--format", "title")
	before := string(block)

	var out bytes.Buffer
	err := run(context.Background(), &out, argv, &options{show: true, format: `"relabeled " + args[1]`})
	require.NoError(t, err)

	assert.Equal(t, before, string(block), "only the process argv block may be rewritten")
	assert.Equal(t, []string{"proctitle", "--show", "--format", "title"}, argv)
	assert.Contains(t, out.String(), "cmdline: ")
	assert.Contains(t, out.String(), "comm:    ")
}
