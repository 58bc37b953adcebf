package logging

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// EnvDebug enables debug output when set to any non-empty value.
const EnvDebug = "TL_DEBUG"

// Output receives debug lines. It defaults to stderr so that debug output
// never mixes with reports written to stdout.
var Output io.Writer = os.Stderr

var forced atomic.Bool

// SetVerbose turns debug output on for the rest of the process regardless
// of TL_DEBUG.
func SetVerbose(enabled bool) {
	forced.Store(enabled)
}

// DebugEnabled returns true if debug mode is enabled via TL_DEBUG or SetVerbose
func DebugEnabled() bool {
	return forced.Load() || os.Getenv(EnvDebug) != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(Output, format, args...)
	}
}
