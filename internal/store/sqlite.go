package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps replies in a single table keyed by group index
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &StorageError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StorageError{Op: "open", Path: path, Err: err}
	}
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS responses (
		group_index INTEGER PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &StorageError{Op: "init", Path: path, Err: err}
	}

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Save(groupIndex int, text string) error {
	if err := checkText(s.path, text); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO responses (group_index, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(group_index) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		groupIndex, text, now)
	if err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Load(groupIndex int) (string, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM responses WHERE group_index = ?`, groupIndex).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", &StorageError{Op: "read", Path: s.path, Err: err}
	}
	return body, nil
}

func (s *SQLiteStore) ClearAll() error {
	if _, err := s.db.Exec(`DELETE FROM responses`); err != nil {
		return &StorageError{Op: "clear", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Indexes() ([]int, error) {
	rows, err := s.db.Query(`SELECT group_index FROM responses ORDER BY group_index`)
	if err != nil {
		return nil, &StorageError{Op: "list", Path: s.path, Err: err}
	}
	defer rows.Close()

	var indexes []int
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, &StorageError{Op: "list", Path: s.path, Err: err}
		}
		indexes = append(indexes, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list", Path: s.path, Err: err}
	}
	return indexes, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
