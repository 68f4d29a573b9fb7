// Package store persists the raw reply text pasted for each group.
//
// Entries are keyed only by the zero-based group index. There is no session
// or user namespace and no locking: two processes sharing the same storage
// location overwrite each other, last write wins.
package store

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"comparables/internal/config"
)

// ResponseStore keeps one raw text blob per group index
type ResponseStore interface {
	// Save persists text verbatim, replacing any previous value. Text that
	// is not valid UTF-8 is rejected with a StorageError.
	Save(groupIndex int, text string) error
	// Load returns the saved text, or "" when nothing was saved
	Load(groupIndex int) (string, error)
	// ClearAll removes every saved entry
	ClearAll() error
	// Indexes lists the group indexes with a saved entry, ascending
	Indexes() ([]int, error)
	Close() error
}

// StorageError wraps an I/O failure of the underlying medium
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ErrInvalidText is wrapped by Save when the text is not valid UTF-8
var ErrInvalidText = errors.New("text is not valid UTF-8")

func checkText(path, text string) error {
	if !utf8.ValidString(text) {
		return &StorageError{Op: "encode", Path: path, Err: ErrInvalidText}
	}
	return nil
}

// Open creates the store selected by the storage configuration
func Open(cfg config.StorageConfig) (ResponseStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", config.BackendFile:
		return NewFileStore(cfg.Dir)
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
