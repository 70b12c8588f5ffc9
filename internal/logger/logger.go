package logger

import (
	"fmt"
	"io"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Colors used for each log level. Green for normal progress, bright magenta for
// warnings, red for errors and cyan for debug output.
var (
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgHiMagenta)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

var (
	// out receives Info, Warn, Debug and Print output.
	out io.Writer = color.Output
	// errOut receives Error output so failures still reach the user when stdout is piped away.
	errOut io.Writer = color.Error

	quiet bool
	debug bool
)

// Init configures the logger from command line flags.
// Parameters:
// - enableDebug: turns Debug messages on. When disabled, Debug is a no-op.
// - enableQuiet: suppresses Info messages. Warnings, errors and Print output are never suppressed.
func Init(enableDebug, enableQuiet bool) {
	debug = enableDebug
	quiet = enableQuiet
}

// SetOutput redirects regular and error output. Passing nil keeps the current writer.
func SetOutput(stdout, stderr io.Writer) {
	if stdout != nil {
		out = stdout
	}
	if stderr != nil {
		errOut = stderr
	}
}

// Info logs informational messages in green. Silenced in quiet mode.
func Info(format string, a ...any) {
	if quiet {
		return
	}
	infoColor.Fprintf(out, format, a...)
}

// Warn logs warning messages in bright magenta.
func Warn(format string, a ...any) {
	warnColor.Fprintf(out, format, a...)
}

// Error logs error messages in red to the error writer.
func Error(format string, a ...any) {
	errorColor.Fprintf(errOut, format, a...)
}

// Debug logs debug messages in cyan when debug logging is enabled.
func Debug(format string, a ...any) {
	if !debug {
		return
	}
	debugColor.Fprintf(out, format, a...)
}

// Print writes an uncolored result line. It is used for output the user asked for
// explicitly (version reports), so quiet mode does not hide it.
func Print(format string, a ...any) {
	_, _ = fmt.Fprintf(out, format, a...)
}
