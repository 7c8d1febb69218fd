package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"slices"
	"sync"
)

// Storer gives read access to a set of loaded assets.
type Storer[T ValidatingSpec] interface {
	Get(id string) (T, bool)
	GetAll() map[string]T
}

// FileStore holds every asset found under one directory of a file system.
// Assets are read once; the store never writes.
type FileStore[T ValidatingSpec] struct {
	fsys    fs.FS
	dir     string
	records map[string]T

	mu sync.RWMutex
}

// NewFileStore loads every .json file under dir in fsys.
func NewFileStore[T ValidatingSpec](fsys fs.FS, dir string) (*FileStore[T], error) {
	s := &FileStore[T]{
		fsys:    fsys,
		dir:     dir,
		records: map[string]T{},
	}

	if err := s.load(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, err)
	}

	return s, nil
}

func (s *FileStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fs.WalkDir(s.fsys, s.dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || path.Ext(p) != ".json" {
			return nil
		}

		asset, err := s.loadAsset(p)
		if err != nil {
			return fmt.Errorf("%s: %w", path.Base(p), err)
		}

		if err := asset.Validate(); err != nil {
			return fmt.Errorf("validating %s: %w", path.Base(p), err)
		}

		if _, ok := s.records[asset.Id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, asset.Id)
		}
		s.records[asset.Id] = asset.Spec
		return nil
	})
	if err != nil {
		return err
	}

	slog.Debug("loaded assets", "dir", s.dir, "count", len(s.records))
	return nil
}

func (s *FileStore[T]) loadAsset(p string) (*Asset[T], error) {
	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	asset := &Asset[T]{}
	if err := json.Unmarshal(data, asset); err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}
	return asset, nil
}

func (s *FileStore[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.records[id]
	return val, ok
}

func (s *FileStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.records)
}

// Ids returns every asset id in sorted order.
func (s *FileStore[T]) Ids() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.records))
}
