package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store manages the two JSON documents backing the widget: the pending
// alarms list and the date-keyed completion history. Both are rewritten
// whole on every mutation; the in-memory state of the callers stays
// authoritative for the running session, so load and save failures are
// logged and swallowed rather than propagated.
type Store struct {
	Root string // e.g., ~/.local/share/glint
	log  *zap.Logger
}

// NewStore creates a Store rooted at the given directory.
// It creates the directory if it doesn't exist.
func NewStore(root string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{Root: root, log: log}, nil
}

// AlarmsPath returns the path to alarms.json.
func (s *Store) AlarmsPath() string {
	return filepath.Join(s.Root, "alarms.json")
}

// HistoryPath returns the path to history.json.
func (s *Store) HistoryPath() string {
	return filepath.Join(s.Root, "history.json")
}

// LoadAlarms reads the alarms document. A missing file or malformed
// content yields an empty slice, never an error.
func (s *Store) LoadAlarms() []PendingAlarm {
	data, err := os.ReadFile(s.AlarmsPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		s.log.Warn("reading alarms document", zap.Error(err))
		return nil
	}

	var alarms []PendingAlarm
	if err := json.Unmarshal(data, &alarms); err != nil {
		s.log.Warn("malformed alarms document, treating as empty", zap.Error(err))
		return nil
	}
	return alarms
}

// SaveAlarms rewrites the alarms document. I/O failure is logged and
// swallowed; the caller's in-memory set remains the source of truth.
func (s *Store) SaveAlarms(alarms []PendingAlarm) {
	if alarms == nil {
		alarms = []PendingAlarm{}
	}
	data, err := json.MarshalIndent(alarms, "", "  ")
	if err != nil {
		s.log.Error("serializing alarms document", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.AlarmsPath(), data, 0644); err != nil {
		s.log.Error("writing alarms document", zap.Error(err))
	}
}

// LoadHistory reads the history document. Same soft-fail policy as
// LoadAlarms: missing or malformed content yields an empty map.
func (s *Store) LoadHistory() map[string][]HistoryEntry {
	data, err := os.ReadFile(s.HistoryPath())
	if os.IsNotExist(err) {
		return map[string][]HistoryEntry{}
	}
	if err != nil {
		s.log.Warn("reading history document", zap.Error(err))
		return map[string][]HistoryEntry{}
	}

	history := map[string][]HistoryEntry{}
	if err := json.Unmarshal(data, &history); err != nil {
		s.log.Warn("malformed history document, treating as empty", zap.Error(err))
		return map[string][]HistoryEntry{}
	}
	return history
}

// AppendHistory loads the whole history document, appends the entry under
// dateKey (creating the key if absent), and rewrites the document.
func (s *Store) AppendHistory(dateKey string, entry HistoryEntry) {
	history := s.LoadHistory()
	history[dateKey] = append(history[dateKey], entry)

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		s.log.Error("serializing history document", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.HistoryPath(), data, 0644); err != nil {
		s.log.Error("writing history document", zap.Error(err))
	}
}
