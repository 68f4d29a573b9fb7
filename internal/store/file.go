package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var groupFilePattern = regexp.MustCompile(`^grupo_(0|[1-9]\d*)\.json$`)

// FileStore keeps one file per group, grupo_{index}.json, holding the reply
// text as a JSON string literal
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return &FileStore{dir: dir}, nil
}

// FileName returns the file name used for a group index
func FileName(groupIndex int) string {
	return fmt.Sprintf("grupo_%d.json", groupIndex)
}

func (s *FileStore) path(groupIndex int) string {
	return filepath.Join(s.dir, FileName(groupIndex))
}

func (s *FileStore) Save(groupIndex int, text string) error {
	if err := checkText(s.path(groupIndex), text); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(text); err != nil {
		return &StorageError{Op: "encode", Path: s.path(groupIndex), Err: err}
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if err := os.WriteFile(s.path(groupIndex), data, 0644); err != nil {
		return &StorageError{Op: "write", Path: s.path(groupIndex), Err: err}
	}
	return nil
}

func (s *FileStore) Load(groupIndex int) (string, error) {
	path := s.path(groupIndex)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", &StorageError{Op: "read", Path: path, Err: err}
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return "", &StorageError{Op: "decode", Path: path, Err: err}
	}
	return text, nil
}

// ClearAll deletes every grupo_*.json file. Other files in the directory are left alone.
func (s *FileStore) ClearAll() error {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &StorageError{Op: "list", Path: s.dir, Err: err}
	}

	for _, entry := range entries {
		if entry.IsDir() || !groupFilePattern.MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return &StorageError{Op: "remove", Path: path, Err: err}
		}
	}
	return nil
}

func (s *FileStore) Indexes() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "list", Path: s.dir, Err: err}
	}

	var indexes []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := groupFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	return indexes, nil
}

func (s *FileStore) Close() error {
	return nil
}
