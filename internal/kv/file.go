package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/danieljhkim/mealwiz/internal/fsops"
)

// FileStorage keeps one profile's items in a single JSON object file. Every
// call reads the file; every mutation rewrites it atomically.
type FileStorage struct {
	fs    fsops.FS
	path  string
	quota int64
}

// NewFileStorage returns a FileStorage for profile under dir
// ("<dir>/<profile>.json"). A quota of 0 means unlimited.
func NewFileStorage(fs fsops.FS, dir, profile string, quota int64) (*FileStorage, error) {
	if err := fsops.ValidateIdentifier(profile); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return &FileStorage{
		fs:    fs,
		path:  filepath.Join(dir, profile+".json"),
		quota: quota,
	}, nil
}

// Path returns the backing file.
func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) load() (map[string]string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	items := map[string]string{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal %s: %w", ErrCorrupt, s.path, err)
	}
	return items, nil
}

func (s *FileStorage) save(items map[string]string) error {
	if len(items) == 0 {
		if err := s.fs.Remove(s.path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", s.path, err)
		}
		return nil
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	if err := s.fs.AtomicWrite(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStorage) GetItem(key string) (string, bool, error) {
	items, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (s *FileStorage) SetItem(key, value string) error {
	items, err := s.load()
	if err != nil {
		return err
	}
	items[key] = value
	if s.quota > 0 && usage(items) > s.quota {
		return ErrQuotaExceeded
	}
	return s.save(items)
}

func (s *FileStorage) RemoveItem(key string) error {
	return s.RemoveItems(key)
}

// RemoveItems deletes keys with a single rewrite of the profile file. An
// undecodable file holds no readable keys, so it is removed outright.
func (s *FileStorage) RemoveItems(keys ...string) error {
	items, err := s.load()
	if errors.Is(err, ErrCorrupt) {
		if err := s.fs.Remove(s.path); err != nil {
			return fmt.Errorf("failed to remove %s: %w", s.path, err)
		}
		return nil
	}
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := items[k]; ok {
			delete(items, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(items)
}

func (s *FileStorage) Keys() ([]string, error) {
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
