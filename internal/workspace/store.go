package workspace

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

// ErrFileNotFound indicates the workspace holds no record under the id.
var ErrFileNotFound = errors.New("workspace file not found")

// Store is a JSON-file-backed workspace. The document shape is:
//
//	{
//	  "activeFile": "f1",
//	  "files": [
//	    {"id": "f1", "name": "a.ts", "content": "...", "language": "typescript"}
//	  ]
//	}
//
// Store implements Accessor. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	path   string
	raw    []byte
	logger *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger.
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// OpenStore loads the workspace document at path. A missing file is not
// an error; the store starts empty and writes create it.
func OpenStore(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{
		path:   path,
		raw:    []byte(`{"activeFile":"","files":[]}`),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open workspace %q: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("open workspace %q: invalid JSON", path)
	}
	s.raw = data
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file. Invalid or unreadable content is
// logged and the previous document kept.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warn("workspace reload failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	if !gjson.ValidBytes(data) {
		s.logger.Warn("workspace reload skipped: invalid JSON", zap.String("path", s.path))
		return fmt.Errorf("reload workspace %q: invalid JSON", s.path)
	}

	s.mu.Lock()
	s.raw = data
	s.mu.Unlock()
	return nil
}

// ActiveFile returns the active workspace record, or nil when none is
// set or the referenced record is missing.
func (s *Store) ActiveFile() *Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id := gjson.GetBytes(s.raw, "activeFile").String()
	if id == "" {
		return nil
	}
	return s.fileLocked(id)
}

// File returns the record under id, or nil.
func (s *Store) File(id string) *Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fileLocked(id)
}

func (s *Store) fileLocked(id string) *Record {
	res := gjson.GetBytes(s.raw, fmt.Sprintf(`files.#(id==%q)`, id))
	if !res.Exists() {
		return nil
	}
	return &Record{
		FileID:   res.Get("id").String(),
		Name:     res.Get("name").String(),
		Content:  res.Get("content").String(),
		Language: Language(res.Get("language").String()),
	}
}

// Files returns every record in document order.
func (s *Store) Files() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	gjson.GetBytes(s.raw, "files").ForEach(func(_, res gjson.Result) bool {
		out = append(out, Record{
			FileID:   res.Get("id").String(),
			Name:     res.Get("name").String(),
			Content:  res.Get("content").String(),
			Language: Language(res.Get("language").String()),
		})
		return true
	})
	return out
}

// SetActiveFile points the workspace at the record under id and persists.
func (s *Store) SetActiveFile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.fileLocked(id) == nil {
		return fmt.Errorf("set active %q: %w", id, ErrFileNotFound)
	}

	raw, err := sjson.SetBytes(s.raw, "activeFile", id)
	if err != nil {
		return fmt.Errorf("set active %q: %w", id, err)
	}
	return s.writeLocked(raw)
}

// UpsertFile inserts or replaces the record under r.FileID and persists.
func (s *Store) UpsertFile(r Record) error {
	if r.FileID == "" {
		return errors.New("upsert: empty file id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := map[string]any{
		"id":       r.FileID,
		"name":     r.Name,
		"content":  r.Content,
		"language": string(r.Language),
	}

	raw := s.raw
	var err error
	idx := -1
	gjson.GetBytes(raw, "files").ForEach(func(i, res gjson.Result) bool {
		if res.Get("id").String() == r.FileID {
			idx = int(i.Int())
			return false
		}
		return true
	})

	if idx >= 0 {
		raw, err = sjson.SetBytes(raw, fmt.Sprintf("files.%d", idx), entry)
	} else {
		raw, err = sjson.SetBytes(raw, "files.-1", entry)
	}
	if err != nil {
		return fmt.Errorf("upsert %q: %w", r.FileID, err)
	}
	return s.writeLocked(raw)
}

// writeLocked persists raw and swaps it in. Must hold mu.
func (s *Store) writeLocked(raw []byte) error {
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write workspace %q: %w", s.path, err)
	}
	s.raw = raw
	return nil
}
