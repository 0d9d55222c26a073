// Package debugdump pretty-prints Model/Graph values for the CLI's `-o -`
// flag and for failing-test diagnostics, neither of which is a contractual
// output format -- the core's only contractual output is the in-memory
// Model/Graph values themselves.
package debugdump

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
)

// Dump writes a recursive, field-labelled rendering of v to w.
func Dump(w io.Writer, v interface{}) {
	fmt.Fprintf(w, "%# v\n", pretty.Formatter(v))
}

// Sprint renders v the same way Dump does, as a string.
func Sprint(v interface{}) string {
	return fmt.Sprintf("%# v", pretty.Formatter(v))
}
