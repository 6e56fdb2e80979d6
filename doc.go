// Package proctitle sets the process title shown by ps, top and htop from
// the process's own command line.
//
// On Linux the title is written over the original argv memory block, with
// argv[0] replaced by the resolved /proc/self/exe target. This keeps the
// listing readable when a program re-executes itself through
// /proc/self/exe, which would otherwise show up as "exe". The short name
// (/proc/<pid>/comm) is set to the executable's basename.
//
// On darwin and the BSDs, with cgo, the title is applied through gspt.
// Everywhere else setting a title is a no-op.
//
// Typical use, first thing in main:
//
//	proctitle.Init(os.Args)
//	proctitle.SetFromCommandLine(os.Args)
//
// Failures are never reported: a title is a best-effort label.
package proctitle
