// Package bookmarks is the local persistence collaborator: a sqlite file
// holding the user's bookmarked patents and a bounded history of AI
// interactions. The catalog core neither reads nor writes this state.
package bookmarks

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
)

// HistoryLimit bounds the AI-interaction history; appending past the cap
// deletes the oldest rows.
const HistoryLimit = 50

// History entry kinds.
const (
	HistoryBusinessAnalysis = "business_analysis"
	HistoryProblemMatch     = "problem_match"
)

const schema = `
CREATE TABLE IF NOT EXISTS bookmarks (
	patent_id  TEXT PRIMARY KEY,
	record     TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ai_history (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	kind        TEXT NOT NULL,
	case_number TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL,
	created_at  TEXT NOT NULL
);
`

type HistoryEntry struct {
	Kind       string    `json:"kind"`
	CaseNumber string    `json:"case_number,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists bookmarks and AI history to one sqlite file. Patent
// records are stored as JSON so the schema survives domain-model growth.
type Store struct {
	db *sqlx.DB
	mu sync.Mutex
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Add inserts or refreshes a bookmark for the given patent.
func (s *Store) Add(patent catalog.Patent) error {
	blob, err := json.Marshal(patent)
	if err != nil {
		return fmt.Errorf("encode patent: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		"INSERT INTO bookmarks (patent_id, record, created_at) VALUES (?, ?, ?) ON CONFLICT(patent_id) DO UPDATE SET record = excluded.record",
		patent.ID, string(blob), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *Store) Remove(patentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM bookmarks WHERE patent_id = ?", patentID)
	return err
}

func (s *Store) Contains(patentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	if err := s.db.Get(&n, "SELECT COUNT(*) FROM bookmarks WHERE patent_id = ?", patentID); err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every bookmarked patent, most recently added first.
func (s *Store) List() ([]catalog.Patent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query("SELECT record FROM bookmarks ORDER BY created_at DESC, patent_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patents []catalog.Patent
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var p catalog.Patent
		if err := json.Unmarshal([]byte(blob), &p); err != nil {
			return nil, fmt.Errorf("decode bookmark: %w", err)
		}
		patents = append(patents, p)
	}
	return patents, rows.Err()
}

// AppendHistory records one AI interaction and trims the table back to
// HistoryLimit rows.
func (s *Store) AppendHistory(entry HistoryEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT INTO ai_history (kind, case_number, content, created_at) VALUES (?, ?, ?, ?)",
		entry.Kind, entry.CaseNumber, entry.Content, entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		"DELETE FROM ai_history WHERE id NOT IN (SELECT id FROM ai_history ORDER BY id DESC LIMIT ?)",
		HistoryLimit,
	)
	return err
}

// ListHistory returns up to limit entries, newest first.
func (s *Store) ListHistory(limit int) ([]HistoryEntry, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(
		"SELECT kind, case_number, content, created_at FROM ai_history ORDER BY id DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var created string
		if err := rows.Scan(&e.Kind, &e.CaseNumber, &e.Content, &created); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
