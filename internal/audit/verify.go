package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// readEntries decodes every line of the log at path. When strict is false,
// undecodable lines are skipped.
func readEntries(path string, strict bool) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	lines := bytes.Split(data, []byte("\n"))
	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			if strict {
				return nil, fmt.Errorf("line %d: invalid JSON: %w", i+1, err)
			}
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Verify reads the audit log and checks the hash chain integrity.
// Returns nil if the chain is valid, or an error describing the first violation.
func Verify(path string) error {
	entries, err := readEntries(path, true)
	if err != nil {
		return err
	}

	expectedPrev := genesisHash()
	var prevSeq uint64
	for i, entry := range entries {
		line := i + 1
		if entry.Seq != prevSeq+1 {
			return fmt.Errorf("line %d: sequence gap: expected %d, got %d", line, prevSeq+1, entry.Seq)
		}
		if entry.PrevHash != expectedPrev {
			return fmt.Errorf("line %d: prev_hash mismatch: expected %s, got %s", line, short(expectedPrev), short(entry.PrevHash))
		}
		if computed := computeHash(entry); entry.Hash != computed {
			return fmt.Errorf("line %d: hash mismatch: expected %s, got %s", line, short(computed), short(entry.Hash))
		}
		expectedPrev = entry.Hash
		prevSeq = entry.Seq
	}
	return nil
}

// Tail returns the last n entries from the audit log.
func Tail(path string, n int) ([]Entry, error) {
	entries, err := readEntries(path, false)
	if err != nil {
		return nil, err
	}
	if n < len(entries) {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

func short(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}
