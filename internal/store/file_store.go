// Package store persists small JSON records to the local filesystem,
// one file per key. It is the client-local storage of the storefront:
// loads resolve to "absent" instead of failing and writes are
// best-effort, so callers never have to handle storage errors.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

type validatable interface {
	Validate() error
}

// FileStore keeps one JSON document per key in a flat directory.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

var _ port.Store = (*FileStore)(nil)

func NewFile(dir string, logger *zap.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) Load(key string, v any) bool {
	path := s.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("store read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("clearing corrupt record", zap.String("key", key), zap.Error(err))
		_ = os.Remove(path)
		return false
	}

	if vv, ok := v.(validatable); ok {
		if err := vv.Validate(); err != nil {
			s.logger.Warn("clearing invalid record", zap.String("key", key), zap.Error(err))
			_ = os.Remove(path)
			return false
		}
	}

	return true
}

func (s *FileStore) Save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("store marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		s.logger.Warn("store write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *FileStore) Delete(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("store delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".json")
}

// sanitizeKey maps an arbitrary key onto a safe filename charset.
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, key)
}
