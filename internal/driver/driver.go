// Package driver wires together the symbol collector, scope resolver and
// code generator into a runnable command. A concrete-syntax parser for
// .reso source is out of scope here, so Cmd's AST construction is a
// hand-rolled placeholder rather than a real reader of source files: it
// exists to smoke-test lang/codegen end to end on a fixed demonstration
// program, not to compile arbitrary input files.
package driver

import (
	"errors"
	"fmt"

	"github.com/mna/mainer"
	"github.com/reso-lang/reso-sub001/lang/codegen"
	"github.com/reso-lang/reso-sub001/lang/diag"
)

const binName = "resoc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <path>...
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <path>...
       %[1]s -h|--help
       %[1]s -v|--version

Core pipeline driver for the Reso language: runs the symbol collector,
resolver and code generator over a fixed demonstration unit named by
<path>... and prints the resulting LLVM IR to stdout, or diagnostics to
stderr. The concrete parser is out of scope for this module, so <path>
arguments only name which file a diagnostic is attributed to; their
contents are not read.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --ptr-width               Target pointer width for isize/usize,
                                 32 or 64 (default 64).
`, binName)
)

// Cmd is the resoc command, parsed and run via github.com/mna/mainer the
// same way internal/maincmd.Cmd is.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help     bool `flag:"h,help"`
	Version  bool `flag:"v,version"`
	PtrWidth int  `flag:"ptr-width"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if c.PtrWidth == 0 {
		c.PtrWidth = 64
	}
	if c.PtrWidth != 32 && c.PtrWidth != 64 {
		return errors.New("--ptr-width must be 32 or 64")
	}
	if len(c.args) == 0 {
		return errors.New("at least one path must be provided")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	if err := CompileDemo(stdio, c.args, c.PtrWidth); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// CompileDemo runs the full pipeline over DemoUnit (see demo.go), printing
// emitted IR to stdio.Stdout on success or the accumulated diagnostics to
// stdio.Stderr otherwise. names is used only to attribute the single demo
// file to the first path argument, when given.
func CompileDemo(stdio mainer.Stdio, names []string, ptrWidth int) error {
	unit := DemoUnit()
	if len(names) > 0 {
		unit[0].Filename = names[0]
	}

	ir, warnings, bag := codegen.Compile(unit, ptrWidth)
	for _, w := range warnings {
		fmt.Fprintf(stdio.Stderr, "%s: warning: %s\n", w.Pos, w.Message)
	}
	if bag.HasErrors() {
		printErrors(stdio, bag)
		return bag.Err()
	}
	fmt.Fprint(stdio.Stdout, ir)
	return nil
}

func printErrors(stdio mainer.Stdio, bag *diag.Bag) {
	fmt.Fprintln(stdio.Stderr, bag.Err())
}
