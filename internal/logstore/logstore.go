// Package logstore persists classification events to an append-only CSV
// file — the system of record. Single writer assumed; an in-process mutex
// guards the write path.
package logstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/emberhq/calltriage/internal/model"
)

// timeLayout is the timestamp format used in the CSV log.
const timeLayout = "2006-01-02 15:04:05"

// header is the fixed six-column CSV header, written exactly once per file.
var header = []string{
	"Timestamp",
	"Original Message",
	"Translated Message",
	"Priority",
	"Confidence (%)",
	"Emergency Type",
}

// Filter selects events by equality. Empty fields match everything;
// non-empty fields are conjunctive.
type Filter struct {
	Priority string
	Category string
}

// Store is an append-only CSV event log.
type Store struct {
	mu   sync.Mutex
	f    *os.File
	w    *csv.Writer
	path string
}

// Open opens (or creates) the CSV log at path in append mode. Whether the
// file needs a header is decided once here, from the file size, and never
// re-checked per append.
func Open(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("logstore: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("logstore: stat %s: %w", path, err)
	}

	s := &Store{f: f, w: csv.NewWriter(f), path: path}

	if info.Size() == 0 {
		if err := s.w.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("logstore: writing header: %w", err)
		}
		s.w.Flush()
		if err := s.w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("logstore: writing header: %w", err)
		}
	}

	return s, nil
}

// Append writes one event row and flushes it to the file. Each call is
// durable on return.
func (s *Store) Append(ev model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := []string{
		ev.Timestamp.Format(timeLayout),
		ev.OriginalMessage,
		ev.TranslatedMessage,
		ev.Priority,
		fmt.Sprintf("%.2f", ev.Confidence),
		ev.Category.String(),
	}
	if err := s.w.Write(record); err != nil {
		return fmt.Errorf("logstore: append: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("logstore: append: %w", err)
	}
	return nil
}

// Query reads the whole log, applies the filter, and returns events ordered
// newest first. A missing file is an empty log. An unreadable or malformed
// file returns an error the caller surfaces as a warning — never a crash.
func (s *Store) Query(filter Filter) ([]model.Event, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("logstore: read %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("logstore: parse %s: %w", s.path, err)
	}
	if len(records) <= 1 {
		return nil, nil // header only, or empty
	}

	events := make([]model.Event, 0, len(records)-1)
	for _, record := range records[1:] {
		ev, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("logstore: %s: %w", s.path, err)
		}
		if filter.Priority != "" && ev.Priority != filter.Priority {
			continue
		}
		if filter.Category != "" && ev.Category.String() != filter.Category {
			continue
		}
		events = append(events, ev)
	}

	// Newest first; append order preserved among equal timestamps.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return events, nil
}

// Close flushes and closes the backing file.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.f.Close()
		return fmt.Errorf("logstore: flush: %w", err)
	}
	return s.f.Close()
}

// parseRecord converts one CSV row back into an event.
func parseRecord(record []string) (model.Event, error) {
	if len(record) != len(header) {
		return model.Event{}, fmt.Errorf("row has %d columns, want %d", len(record), len(header))
	}

	ts, err := time.ParseInLocation(timeLayout, record[0], time.Local)
	if err != nil {
		return model.Event{}, fmt.Errorf("bad timestamp %q: %w", record[0], err)
	}
	confidence, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("bad confidence %q: %w", record[4], err)
	}
	category, err := model.ParseCategory(record[5])
	if err != nil {
		return model.Event{}, err
	}

	return model.Event{
		Timestamp:         ts,
		OriginalMessage:   record[1],
		TranslatedMessage: record[2],
		Priority:          record[3],
		Confidence:        confidence,
		Category:          category,
	}, nil
}
