// Package titleexpr compiles and evaluates process title expressions.
//
// Expressions use the expr language and are evaluated against the values
// available when a title is built:
//
//	args     []string           original command line, argv[0] included
//	exe      string             resolved executable ("" when unavailable)
//	title    string             title built from args and exe
//	cmdline  string             args joined with spaces
//	env      map[string]string  process environment
//	pid      int                process id
//
// Example: `exe == "" ? title : exe + " [" + env["ROLE"] + "]"`.
package titleexpr
