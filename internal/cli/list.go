package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/marcelocantos/flow/internal/pipeline"
)

// RunList prints every component of a flow file in file order.
func RunList(env *Env, flowPath string) int {
	reg, err := pipeline.ParseFile(env.Fs, flowPath, env.Config.ParserOptions())
	if err != nil {
		Diag(env.Stderr, "%v", err)
		return 1
	}
	writeComponents(env.Stdout, reg.All())
	return 0
}

func writeComponents(w io.Writer, comps []pipeline.Component) {
	for _, c := range comps {
		fmt.Fprintf(w, "%-16s %-12s %s\n", c.Name(), c.Kind(), describe(c))
	}
}

func describe(c pipeline.Component) string {
	switch c := c.(type) {
	case *pipeline.Node:
		return c.Command
	case *pipeline.Pipe:
		return c.From + " | " + c.To
	case *pipeline.Concatenate:
		var parts []string
		for _, idx := range c.Indices() {
			name, _ := c.Part(idx)
			parts = append(parts, fmt.Sprintf("%d:%s", idx, name))
		}
		return fmt.Sprintf("parts=%d [%s]", c.Parts, strings.Join(parts, " "))
	case *pipeline.StderrRedirect:
		return c.From + " 2>&1"
	case *pipeline.FileRedirect:
		return c.Filename
	default:
		return ""
	}
}
