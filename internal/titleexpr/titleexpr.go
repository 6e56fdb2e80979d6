package titleexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the evaluation environment for a title expression.
type Env struct {
	Args    []string
	Exe     string
	Title   string
	Environ map[string]string
	Pid     int
}

func (e Env) toMap() map[string]interface{} {
	environ := e.Environ
	if environ == nil {
		environ = map[string]string{}
	}
	args := e.Args
	if args == nil {
		args = []string{}
	}
	return map[string]interface{}{
		"args":    args,
		"exe":     e.Exe,
		"title":   e.Title,
		"cmdline": strings.Join(args, " "),
		"env":     environ,
		"pid":     e.Pid,
	}
}

// Program is a pre-compiled title expression.
type Program struct {
	source  string
	program *vm.Program
}

// Compile type-checks src against the title environment.
// An empty (or blank) source returns a nil Program and no error.
func Compile(src string) (*Program, error) {
	if strings.TrimSpace(src) == "" {
		return nil, nil
	}

	program, err := expr.Compile(src, expr.Env(Env{}.toMap()))
	if err != nil {
		return nil, fmt.Errorf("failed to compile title expression %q: %w", src, err)
	}

	return &Program{source: src, program: program}, nil
}

// Source returns the expression text.
func (p *Program) Source() string {
	return p.source
}

// Eval runs the program. Non-string results are formatted with fmt.Sprint;
// a nil result is an error.
func (p *Program) Eval(env Env) (string, error) {
	output, err := expr.Run(p.program, env.toMap())
	if err != nil {
		return "", fmt.Errorf("failed to evaluate title expression %q: %w", p.source, err)
	}
	if output == nil {
		return "", errors.New("title expression returned nil")
	}
	if s, ok := output.(string); ok {
		return s, nil
	}
	return fmt.Sprint(output), nil
}
