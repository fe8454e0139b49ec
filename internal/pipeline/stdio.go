package pipeline

import (
	"io"
	"os"
	"sync"
)

// Stdio is the set of streams a component runs with. Nil members behave as
// the null device.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// serialized returns a copy of s whose in-memory writers share one lock.
// Files are left alone so the child gets the descriptor itself.
func (s Stdio) serialized() Stdio {
	mu := &sync.Mutex{}
	s.Stdout = lockWriter(mu, s.Stdout)
	s.Stderr = lockWriter(mu, s.Stderr)
	return s
}

func lockWriter(mu *sync.Mutex, w io.Writer) io.Writer {
	switch w.(type) {
	case nil, *os.File, *syncWriter:
		return w
	}
	return &syncWriter{mu: mu, w: w}
}

// syncWriter serializes writes to w.
type syncWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
