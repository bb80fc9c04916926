// Command resoc is the thin entry point over internal/driver.
package main

import (
	"os"

	"github.com/mna/mainer"
	"github.com/reso-lang/reso-sub001/internal/driver"
)

var (
	// placeholder values, replaced on build
	version   = "{v}" // must be N.N[.N]
	buildDate = "{d}" // must be YYYY-mm-DD
)

func main() {
	c := driver.Cmd{BuildVersion: version, BuildDate: buildDate}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
