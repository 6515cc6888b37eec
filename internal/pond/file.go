package pond

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/pond/internal/logger"
	pondErrors "github.com/alexisbeaulieu97/pond/pkg/errors"
)

// documentCodec turns the whole entry map into file contents and back.
type documentCodec interface {
	encode(values map[string]Value) ([]byte, error)
	decode(data []byte) (map[string]Value, error)
}

// documentStore serves reads from memory and rewrites its file after every
// mutation.
type documentStore struct {
	id    string
	path  string
	perm  os.FileMode
	codec documentCodec
	log   *logger.Logger

	mu    sync.Mutex
	cache *Memory
}

func openDocumentStore(id, path string, dirPerm, filePerm os.FileMode, codec documentCodec, log *logger.Logger) (*documentStore, error) {
	if path == "" {
		return nil, pondErrors.NewStoreError(id, "open", errors.New("path is required"))
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, pondErrors.NewStoreError(id, "create directory", err)
	}

	s := &documentStore{
		id:    id,
		path:  path,
		perm:  filePerm,
		codec: codec,
		log:   log.Component(id).WithFields(map[string]any{"path": path}),
		cache: NewMemory(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, pondErrors.NewStoreError(id, "read", err)
		}
		return s, nil
	}

	values, err := codec.decode(data)
	if err != nil {
		return nil, pondErrors.NewStoreError(id, "decode", err)
	}
	s.cache.replace(values)
	s.log.Debug(fmt.Sprintf("loaded %d entries", len(values)))

	return s, nil
}

func (s *documentStore) ID() string { return s.id }

// Path returns the backing file.
func (s *documentStore) Path() string { return s.path }

func (s *documentStore) Lookup(key string) (Value, bool) { return s.cache.Lookup(key) }

func (s *documentStore) Contains(key string) bool { return s.cache.Contains(key) }

func (s *documentStore) Keys() []string { return s.cache.Keys() }

func (s *documentStore) Put(key string, value Value) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Put(key, value)
	s.persist()
}

func (s *documentStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cache.Contains(key) {
		return
	}
	s.cache.Remove(key)
	s.persist()
}

func (s *documentStore) RemoveAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.RemoveAll()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Error(err, "failed to remove store file")
	}
}

func (s *documentStore) persist() {
	data, err := s.codec.encode(s.cache.snapshot())
	if err != nil {
		s.log.Error(err, "failed to encode store")
		return
	}
	if err := writeFileAtomic(s.path, data, s.perm); err != nil {
		s.log.Error(err, "failed to persist store")
	}
}

// writeFileAtomic writes to a uniquely named sibling and renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
