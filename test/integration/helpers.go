package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/mealwiz/internal/clock"
	"github.com/danieljhkim/mealwiz/internal/kv"
	"github.com/danieljhkim/mealwiz/internal/session"
	"github.com/danieljhkim/mealwiz/internal/wizard"
)

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

func newTestFS() *testFS {
	return &testFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (fs *testFS) MkdirAll(path string, perm os.FileMode) error {
	fs.dirs[path] = true
	return nil
}

func (fs *testFS) Remove(path string) error {
	delete(fs.files, path)
	delete(fs.dirs, path)
	return nil
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	fs.files[path] = append([]byte(nil), data...)
	fs.dirs[filepath.Dir(path)] = true
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, os.ErrNotExist
}

// backend opens storage for one profile. Calling open again simulates a
// restart of the process on the same data.
type backend struct {
	name string
	open func(t *testing.T) kv.Storage
}

func backends(t *testing.T) []backend {
	fs := newTestFS()
	mem := kv.NewMemoryStorage(0)
	dbPath := filepath.Join(t.TempDir(), "mealwiz.db")

	return []backend{
		{
			name: "file",
			open: func(t *testing.T) kv.Storage {
				s, err := kv.NewFileStorage(fs, "/test/profiles", "default", 0)
				if err != nil {
					t.Fatalf("NewFileStorage() error = %v", err)
				}
				return s
			},
		},
		{
			name: "memory",
			open: func(t *testing.T) kv.Storage {
				return mem
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) kv.Storage {
				s, err := kv.OpenSQLiteStorage(context.Background(), dbPath, "default", 0)
				if err != nil {
					t.Fatalf("OpenSQLiteStorage() error = %v", err)
				}
				t.Cleanup(func() { _ = s.Close() })
				return s
			},
		},
	}
}

const testPlanID = "6f1c2d3e-4a5b-4c6d-8e7f-901a2b3c4d5e"

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func setupTestEngine(storage kv.Storage) (*wizard.Engine, *session.Store) {
	store := session.New(storage)
	eng := wizard.New(store,
		wizard.WithClock(clock.Fixed(testNow)),
		wizard.WithIDGenerator(func() string { return testPlanID }),
	)
	return eng, store
}
