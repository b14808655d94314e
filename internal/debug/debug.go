// Package debug provides an opt-in trace logger for reporting internal state
// transitions without costing anything when tracing is disabled. No package
// in this module calls it.
package debug

import (
	"fmt"
	"os"
)

var enabled = os.Getenv("PARQUETCORE_DEBUG") != ""

// Format writes a trace line to stderr when PARQUETCORE_DEBUG is set in the
// environment, and is otherwise a no-op.
func Format(format string, args ...interface{}) {
	if enabled {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
