package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const genesisInput = "flow-genesis"

// Logger appends flow runs to a hash-chained JSONL file. Each entry carries
// the hash of the one before it, starting from a fixed genesis hash.
type Logger struct {
	mu   sync.Mutex
	path string
	last Entry // Seq and Hash of the newest entry on disk
}

// NewLogger opens the log at path, creating its directory, and continues the
// chain from the newest readable entry.
func NewLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}

	l := &Logger{path: path, last: Entry{Hash: genesisHash()}}
	entries, err := readEntries(path, false)
	switch {
	case err == nil && len(entries) > 0:
		l.last = entries[len(entries)-1]
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	return l, nil
}

// Log appends one entry describing run.
func (l *Logger) Log(run Run) error {
	if run.Cwd == "" {
		run.Cwd, _ = os.Getwd()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e := run.entry(time.Now(), uuid.NewString())
	e.Seq = l.last.Seq + 1
	e.PrevHash = l.last.Hash
	e.Hash = computeHash(e)

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	if err := appendLine(l.path, data); err != nil {
		return err
	}
	l.last = e
	return nil
}

// Path returns the audit log file path.
func (l *Logger) Path() string {
	return l.path
}

func appendLine(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}
	return nil
}

func genesisHash() string {
	sum := sha256.Sum256([]byte(genesisInput))
	return hex.EncodeToString(sum[:])
}

// computeHash hashes e with its Hash field cleared.
func computeHash(e Entry) string {
	e.Hash = ""
	data, _ := json.Marshal(e)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
