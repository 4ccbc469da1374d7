// Package maincmd implements loxen's two entry points, a REPL and a
// file-runner, over the shared compiler/vm pipeline. Both are driven
// through mainer.Stdio so they're testable without touching the real
// process stdio.
package maincmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mna/mainer"

	"github.com/loxenlang/loxen/internal/config"
	"github.com/loxenlang/loxen/lang/vm"
)

const binName = "loxen"

// Exit codes per the external-interface contract: 0 success, 65 compile
// error, 70 runtime error, 74 I/O failure, 64 CLI usage error (sysexits
// EX_USAGE, chosen for the ">1 args" case spec.md's own exit-code table
// leaves unnamed — see DESIGN.md).
const (
	exitOK           = mainer.ExitCode(0)
	exitCompileError = mainer.ExitCode(65)
	exitRuntimeError = mainer.ExitCode(70)
	exitIOError      = mainer.ExitCode(74)
	exitUsage        = mainer.ExitCode(64)
)

var shortUsage = fmt.Sprintf("usage: %s [script]\nRun '%[1]s --help' for details.\n", binName)

var longUsage = fmt.Sprintf(`usage: %s [script]
       %[1]s -h|--help
       %[1]s -v|--version

With no arguments, starts an interactive REPL. With one argument, runs the
given script file and exits.
`, binName)

// Cmd is loxen's top-level command, parsed and run by mainer.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args []string
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) > 1 {
		return fmt.Errorf("expected at most one script argument, got %d", len(c.args))
	}
	return nil
}

// Main parses args and dispatches to the REPL or the file runner.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: strings.ToUpper(binName) + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return exitOK
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return exitOK
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "loading configuration: %s\n", err)
		return exitIOError
	}
	machine := vm.New(cfg)
	defer machine.Free()

	if len(c.args) == 0 {
		return runREPL(machine, cfg, stdio)
	}
	return runFile(machine, stdio, c.args[0])
}

func runFile(machine *vm.VM, stdio mainer.Stdio, path string) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return exitIOError
	}

	switch machine.Interpret(src, stdio.Stdout, stdio.Stderr) {
	case vm.InterpretCompileError:
		return exitCompileError
	case vm.InterpretRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}

const prompt = "> "

func runREPL(machine *vm.VM, cfg config.Config, stdio mainer.Stdio) mainer.ExitCode {
	repl := newREPL(machine)
	scanner := bufio.NewScanner(stdio.Stdin)
	scanner.Buffer(make([]byte, 0, cfg.ReplLineBytes), cfg.ReplLineBytes)

	for {
		fmt.Fprint(stdio.Stdout, prompt)
		if !scanner.Scan() {
			break
		}
		repl.evalLine(stdio.Stdout, stdio.Stderr, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return exitIOError
	}
	fmt.Fprintln(stdio.Stdout)
	return exitOK
}
