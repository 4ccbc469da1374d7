package maincmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dolthub/swiss"

	"github.com/loxenlang/loxen/lang/compiler"
	"github.com/loxenlang/loxen/lang/value"
	"github.com/loxenlang/loxen/lang/vm"
)

// repl wraps a VM with session-scoped affordances: a :globals introspection
// command and a compile cache keyed by the exact source line, so re-running
// an already-seen one-liner skips recompilation. Caching never changes
// observable behaviour — the cached Function's side effects still run on
// every invocation, only the compile step is memoized.
type repl struct {
	machine *vm.VM
	cache   *swiss.Map[string, *value.ObjFunction]
}

func newREPL(machine *vm.VM) *repl {
	return &repl{
		machine: machine,
		cache:   swiss.NewMap[string, *value.ObjFunction](8),
	}
}

func (r *repl) evalLine(stdout, stderr io.Writer, line string) {
	if trimmed := strings.TrimSpace(line); trimmed == ":globals" {
		r.printGlobals(stdout)
		return
	}

	if fn, ok := r.cache.Get(line); ok {
		r.machine.Run(fn, stdout, stderr)
		return
	}

	fn, ok := compiler.Compile([]byte(line), r.machine, stderr, false)
	if !ok {
		return
	}
	r.cache.Put(line, fn)
	r.machine.Run(fn, stdout, stderr)
}

func (r *repl) printGlobals(w io.Writer) {
	globals := r.machine.Globals()
	for _, name := range globals.Keys() {
		v, ok := globals.GetByName(name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s = %s\n", name, v.String())
	}
}
