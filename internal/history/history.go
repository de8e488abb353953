// Package history persists emitted transcripts as one JSON record per
// line. Writes are best-effort: dictation never fails because the history
// file is unavailable.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"localflow/internal/domain"
)

// Entry is one persisted dictation record.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
	Mode      string `json:"mode,omitempty"`
}

// Store appends to and reads a JSONL history file, truncating it to a
// maximum entry count.
type Store struct {
	path       string
	maxEntries int

	mu sync.Mutex
}

func NewStore(path string, maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Store{path: path, maxEntries: maxEntries}
}

// Append persists one record. Blank text is skipped.
func (s *Store) Append(text string, mode domain.Mode) error {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	payload, err := json.Marshal(Entry{
		Timestamp: time.Now().Format(time.RFC3339),
		Text:      cleaned,
		Mode:      string(mode),
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	_, writeErr := f.Write(append(payload, '\n'))
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("append history: %w", writeErr)
	}
	if closeErr != nil {
		return closeErr
	}

	return s.truncateLocked()
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLinesLocked()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	entries := make([]Entry, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		var entry Entry
		if err := json.Unmarshal([]byte(lines[i]), &entry); err != nil {
			// Keep malformed lines visible rather than dropping them.
			entry = Entry{Text: lines[i]}
		}
		if entry.Text != "" {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *Store) truncateLocked() error {
	lines, err := s.readLinesLocked()
	if err != nil {
		return err
	}
	if len(lines) <= s.maxEntries {
		return nil
	}
	kept := lines[len(lines)-s.maxEntries:]

	var builder strings.Builder
	for _, line := range kept {
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
	return os.WriteFile(s.path, []byte(builder.String()), 0o600)
}

func (s *Store) readLinesLocked() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
