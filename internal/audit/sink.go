package audit

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Sink persists audit events outside the in-memory session log.
type Sink interface {
	Write(e Event) error
	Close() error
}

// GenesisHash is the prev_hash for the first entry in a new JSONL sink.
const GenesisHash = "sha256:0000000000000000000000000000000000000000000000000000000000000000"

// chainedEvent is the on-disk JSONL shape: the event plus the hash of the
// previous line, forming a tamper-evident chain.
type chainedEvent struct {
	Event
	PrevHash string `json:"prev_hash"`
}

// JSONLSink appends events as SHA-256 hash-chained JSON lines.
type JSONLSink struct {
	mu       sync.Mutex
	file     *os.File
	prevHash string
}

// OpenJSONL opens (or creates) a JSONL sink for appending. If the file
// already exists, the last line is read back to recover the chain tail.
func OpenJSONL(path string) (*JSONLSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("audit: create directory: %w", err)
	}

	prevHash := GenesisHash
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("audit: read existing log: %w", err)
		}
		scanner := bufio.NewScanner(f)
		var lastLine []byte
		for scanner.Scan() {
			lastLine = append(lastLine[:0], scanner.Bytes()...)
		}
		f.Close()
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("audit: scan existing log: %w", err)
		}
		if len(lastLine) > 0 {
			prevHash = HashLine(lastLine)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("audit: open file: %w", err)
	}
	return &JSONLSink{file: file, prevHash: prevHash}, nil
}

// Write appends one event with hash chaining and syncs to disk.
func (s *JSONLSink) Write(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := json.Marshal(chainedEvent{Event: e, PrevHash: s.prevHash})
	if err != nil {
		return fmt.Errorf("audit: marshal event: %w", err)
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("audit: write event: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("audit: sync: %w", err)
	}
	s.prevHash = HashLine(line)
	return nil
}

// Close flushes and closes the underlying file.
func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// HashLine returns "sha256:<hex>" of the given bytes.
func HashLine(line []byte) string {
	h := sha256.Sum256(line)
	return "sha256:" + hex.EncodeToString(h[:])
}
