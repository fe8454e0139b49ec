package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/marcelocantos/flow/internal/audit"
)

// tailEntries is how many entries `audit tail` shows.
const tailEntries = 20

// RunAudit handles the flow audit subcommand.
func RunAudit(w io.Writer, logPath string, args []string) int {
	if len(args) == 0 {
		fmt.Fprintf(w, "usage: %s audit <verify|show|tail>\n", Prog)
		return 1
	}
	if logPath == "" {
		Diag(w, "audit log disabled (set audit.path in the config)")
		return 1
	}

	switch args[0] {
	case "verify":
		if err := audit.Verify(logPath); err != nil {
			fmt.Fprintf(w, "audit verification FAILED: %v\n", err)
			return 1
		}
		fmt.Fprintln(w, "audit log integrity verified")
		return 0

	case "show", "tail":
		entries, err := audit.Tail(logPath, tailEntries)
		if err != nil {
			Diag(w, "audit: %v", err)
			return 1
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, "no audit entries")
			return 0
		}
		for _, e := range entries {
			data, _ := json.MarshalIndent(e, "", "  ")
			fmt.Fprintf(w, "%s\n", data)
		}
		return 0

	default:
		Diag(w, "audit: unknown subcommand %q", args[0])
		return 1
	}
}
