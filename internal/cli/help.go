package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/marcelocantos/flow/internal/pipeline"
)

// Prog is the program name used in usage text and diagnostics.
const Prog = "flow"

var errPrefix = color.New(color.FgRed, color.Bold)

// Diag writes the single diagnostic line for a failure.
func Diag(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", errPrefix.Sprint(Prog+":"), fmt.Sprintf(format, args...))
}

// PrintUsage writes the one-line usage message.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <flow_file> <target>\n", Prog)
}

// LongHelp describes the flow description format.
func LongHelp() string {
	return fmt.Sprintf(`%[1]s runs the component named <target> from a flow description file.

A flow description has one key=value declaration per line. These keys start a
component and make it current:
  %[2]s=<name>         an external command (set with %[3]s=<command line>)
  %[4]s=<name>         %[5]s=<component> piped into %[6]s=<component>
  %[7]s=<name>  %[8]s=<n> and %[9]s<k>=<component>, run one after another
  %[10]s=<name>       %[5]s=<node> with its stderr merged into stdout
  %[11]s=<name>         parsed (%[12]s=<filename>) but not executable

Keys that do not apply to the current component are ignored, as are lines
without '='.

"list" and "audit" as the first argument select those subcommands; a flow
file with one of those names must be given with a path, as in ./list.`,
		Prog,
		pipeline.KeyNode, pipeline.KeyCommand,
		pipeline.KeyPipe, pipeline.KeyFrom, pipeline.KeyTo,
		pipeline.KeyConcatenate, pipeline.KeyParts, pipeline.KeyPartPrefix,
		pipeline.KeyStderr,
		pipeline.KeyFile, pipeline.KeyName,
	)
}
