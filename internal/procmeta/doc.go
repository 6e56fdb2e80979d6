// Package procmeta reads what the kernel reports about a process from the
// /proc filesystem.
//
// ProcessMetadata holds the command line as seen by ps (/proc/<pid>/cmdline),
// the short name (/proc/<pid>/comm), the resolved executable
// (/proc/<pid>/exe) and the parsed environment.
//
// After a process title is set, cmdline and comm reflect the new title, so
// this package is how callers verify what process listings will display.
package procmeta
