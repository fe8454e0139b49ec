package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// Options tunes the parser.
type Options struct {
	// MaxComponents caps the registry size; zero means unbounded.
	MaxComponents int
	// MaxParts is the number of concatenation part slots; zero means DefaultMaxParts.
	MaxParts int
}

func (o Options) maxParts() int {
	if o.MaxParts <= 0 {
		return DefaultMaxParts
	}
	return o.MaxParts
}

// ParseFile opens path on fsys and parses it as a flow description.
func ParseFile(fsys afero.Fs, path string, opts Options) (*Registry, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open flow file: %w", err)
	}
	defer f.Close()

	reg, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Parse reads key=value lines and builds a registry. Lines without '=' are
// skipped, as are keys that do not apply to the component under the cursor.
// References between components are not checked here.
func Parse(r io.Reader, opts Options) (*Registry, error) {
	reg := NewRegistry(opts.MaxComponents)
	maxParts := opts.maxParts()

	var cursor Component
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read line %d: %w", lineNo, err)
		}
		eof := err != nil
		line = strings.TrimSuffix(line, "\n")

		if key, value, ok := strings.Cut(line, "="); ok {
			if c := newComponent(key, value); c != nil {
				if err := reg.Add(c); err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				cursor = c
			} else if cursor != nil {
				cursor.apply(key, value, maxParts)
			}
		}

		if eof {
			return reg, nil
		}
	}
}
