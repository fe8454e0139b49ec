package pipeline

import (
	"fmt"
	"slices"
	"strings"
)

// Keys recognised in a flow description. Keys that open a component move the
// parse cursor; the others set a field on the component under the cursor.
const (
	KeyNode        = "node"
	KeyCommand     = "command"
	KeyPipe        = "pipe"
	KeyFrom        = "from"
	KeyTo          = "to"
	KeyConcatenate = "concatenate"
	KeyParts       = "parts"
	KeyPartPrefix  = "part_"
	KeyStderr      = "stderr"
	KeyFile        = "file"
	KeyName        = "name"
)

// DefaultMaxParts is the number of part slots a concatenation accepts unless
// the parser is configured otherwise.
const DefaultMaxParts = 10

// Kind identifies the variant of a Component.
type Kind int

const (
	KindNode Kind = iota
	KindPipe
	KindConcatenate
	KindStderr
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindPipe:
		return "pipe"
	case KindConcatenate:
		return "concatenate"
	case KindStderr:
		return "stderr"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Component is one named entry of a flow description. The concrete types are
// *Node, *Pipe, *Concatenate, *StderrRedirect and *FileRedirect.
type Component interface {
	Name() string
	Kind() Kind

	// apply sets the field named by key. It reports false when key does not
	// belong to this variant, in which case nothing changes.
	apply(key, value string, maxParts int) bool
}

// Node wraps a single external command.
type Node struct {
	ComponentName string
	Command       string // raw, tokenized only when executed
}

// Pipe connects the output of From to the input of To.
type Pipe struct {
	ComponentName string
	From          string
	To            string
}

// Concatenate runs its parts one after another. Parts are addressed by index,
// not by declaration order, and unset indices are skipped.
type Concatenate struct {
	ComponentName string
	Parts         int // declared part count
	partNames     map[int]string
}

// StderrRedirect runs a Node with its error stream joined to its output stream.
type StderrRedirect struct {
	ComponentName string
	From          string
}

// FileRedirect is parsed and stored but has no execution semantics yet.
type FileRedirect struct {
	ComponentName string
	Filename      string
}

func (n *Node) Name() string           { return n.ComponentName }
func (p *Pipe) Name() string           { return p.ComponentName }
func (c *Concatenate) Name() string    { return c.ComponentName }
func (s *StderrRedirect) Name() string { return s.ComponentName }
func (f *FileRedirect) Name() string   { return f.ComponentName }

func (*Node) Kind() Kind           { return KindNode }
func (*Pipe) Kind() Kind           { return KindPipe }
func (*Concatenate) Kind() Kind    { return KindConcatenate }
func (*StderrRedirect) Kind() Kind { return KindStderr }
func (*FileRedirect) Kind() Kind   { return KindFile }

func (n *Node) apply(key, value string, _ int) bool {
	if key != KeyCommand {
		return false
	}
	n.Command = value
	return true
}

func (p *Pipe) apply(key, value string, _ int) bool {
	switch key {
	case KeyFrom:
		p.From = value
	case KeyTo:
		p.To = value
	default:
		return false
	}
	return true
}

func (c *Concatenate) apply(key, value string, maxParts int) bool {
	if key == KeyParts {
		c.Parts = atoi(value)
		return true
	}
	suffix, ok := strings.CutPrefix(key, KeyPartPrefix)
	if !ok {
		return false
	}
	idx := atoi(suffix)
	if idx < 0 || idx >= maxParts {
		return false
	}
	c.SetPart(idx, value)
	return true
}

func (s *StderrRedirect) apply(key, value string, _ int) bool {
	if key != KeyFrom {
		return false
	}
	s.From = value
	return true
}

func (f *FileRedirect) apply(key, value string, _ int) bool {
	if key != KeyName {
		return false
	}
	f.Filename = value
	return true
}

// SetPart assigns the component name for part idx.
func (c *Concatenate) SetPart(idx int, name string) {
	if c.partNames == nil {
		c.partNames = make(map[int]string)
	}
	c.partNames[idx] = name
}

// Part returns the component name stored at idx and whether it was set.
func (c *Concatenate) Part(idx int) (string, bool) {
	name, ok := c.partNames[idx]
	return name, ok
}

// newComponent returns an empty component for a cursor-moving key, or nil if
// key does not open a component.
func newComponent(key, name string) Component {
	switch key {
	case KeyNode:
		return &Node{ComponentName: name}
	case KeyPipe:
		return &Pipe{ComponentName: name}
	case KeyConcatenate:
		return &Concatenate{ComponentName: name}
	case KeyStderr:
		return &StderrRedirect{ComponentName: name}
	case KeyFile:
		return &FileRedirect{ComponentName: name}
	default:
		return nil
	}
}

// atoi converts the leading decimal integer of s, ignoring leading blanks and
// anything after the digits. It yields 0 when there are no digits.
func atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\v' || s[i] == '\f' || s[i] == '\r') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<30 {
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

// Indices returns the assigned part indices below the declared part count,
// in ascending order.
func (c *Concatenate) Indices() []int {
	idx := make([]int, 0, len(c.partNames))
	for i := range c.partNames {
		if i < c.Parts {
			idx = append(idx, i)
		}
	}
	slices.Sort(idx)
	return idx
}
