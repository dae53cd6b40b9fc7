package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// maxRecent caps the recency buffer regardless of the time window
const maxRecent = 1000

// Fragment is one timestamped unit of recognized text from the
// transcription service. Timestamps are float seconds since epoch.
type Fragment struct {
	Timestamp float64 `json:"timestamp"`
	Text      string  `json:"text"`
}

// MinuteKey returns the minute bucket this fragment belongs to
func (f Fragment) MinuteKey() int {
	return int(f.Timestamp / 60)
}

// Store accumulates transcript fragments for the lifetime of a session.
// It keeps two views: a bounded recency buffer of raw fragments for
// export/debugging, and per-minute text buckets that are never evicted
// so the full-session transcript can be rebuilt at the end.
//
// Safe for concurrent use; the ingestion path and the completion monitor
// run on separate goroutines.
type Store struct {
	mu            sync.Mutex
	windowSeconds float64
	recent        []Fragment
	byMinute      map[int][]string
}

// New creates a Store retaining raw fragments for windowSeconds
func New(windowSeconds int) *Store {
	if windowSeconds <= 0 {
		windowSeconds = 300
	}
	return &Store{
		windowSeconds: float64(windowSeconds),
		byMinute:      make(map[int][]string),
	}
}

// AddFragment records a fragment. Eviction of the recency buffer is
// driven by fragment timestamps, not wall clock, so replayed sessions
// behave the same as live ones. Out-of-order and duplicate timestamps
// are accepted and bucketed by value.
func (s *Store) AddFragment(text string, timestamp float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recent = append(s.recent, Fragment{Timestamp: timestamp, Text: text})
	s.evictLocked(timestamp)

	key := int(timestamp / 60)
	s.byMinute[key] = append(s.byMinute[key], text)
}

func (s *Store) evictLocked(now float64) {
	cutoff := now - s.windowSeconds
	i := 0
	for i < len(s.recent) && s.recent[i].Timestamp < cutoff {
		i++
	}
	if i > 0 {
		s.recent = append(s.recent[:0:0], s.recent[i:]...)
	}
	if len(s.recent) > maxRecent {
		s.recent = append(s.recent[:0:0], s.recent[len(s.recent)-maxRecent:]...)
	}
}

// MinuteSegment returns the space-joined text of one minute bucket,
// or the empty string if the bucket does not exist. Read-only and
// callable for already-finalized minutes.
func (s *Store) MinuteSegment(key int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.byMinute[key], " ")
}

// MinuteKeys returns an ascending snapshot of all bucket keys
func (s *Store) MinuteKeys() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]int, 0, len(s.byMinute))
	for k := range s.byMinute {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Window returns a copy of the current recency buffer
func (s *Store) Window() []Fragment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Fragment(nil), s.recent...)
}

// ExportWindow writes the recency buffer to path as a JSON array.
// The file is replaced whole so readers never see a partial write.
func (s *Store) ExportWindow(path string) error {
	window := s.Window()
	if window == nil {
		window = []Fragment{}
	}

	data, err := json.MarshalIndent(window, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal window: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".window-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace export file: %w", err)
	}

	return nil
}
