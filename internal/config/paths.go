// Package config manages mealwiz configuration and filesystem paths.
//
// The default root is ~/.mealwiz/ containing profiles/, the SQLite database,
// config.yaml and an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/danieljhkim/mealwiz/internal/fsops"
)

// Paths contains all the filesystem paths used by mealwiz.
type Paths struct {
	// Root is the base directory for all mealwiz data (default: ~/.mealwiz)
	Root string

	// Profiles is the directory holding one JSON file per profile for the file backend
	Profiles string

	// DB is the SQLite database used by the sqlite backend
	DB string

	// Config is the path to the global config file
	Config string

	// EnvFile is an optional dotenv file loaded before environment overrides
	EnvFile string
}

// DefaultPaths returns the default paths for mealwiz.
// Paths can be overridden with environment variables:
// - MEALWIZ_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("MEALWIZ_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".mealwiz")
	}
	return PathsAt(root), nil
}

// PathsAt returns the layout rooted at root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:     root,
		Profiles: filepath.Join(root, "profiles"),
		DB:       filepath.Join(root, "mealwiz.db"),
		Config:   filepath.Join(root, "config.yaml"),
		EnvFile:  filepath.Join(root, ".env"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories(fs fsops.FS) error {
	dirs := []string{
		p.Root,
		p.Profiles,
	}

	for _, dir := range dirs {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
