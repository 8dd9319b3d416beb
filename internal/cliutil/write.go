// Package cliutil holds output helpers shared by the oasfixture commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted command output to w. A failed write is reported on
// stderr and otherwise ignored, so usage text never aborts a command.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
