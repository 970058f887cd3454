package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/mealwiz/internal/config"
	"github.com/danieljhkim/mealwiz/internal/fsops"
	"github.com/danieljhkim/mealwiz/internal/kv"
	"github.com/danieljhkim/mealwiz/internal/logging"
	"github.com/danieljhkim/mealwiz/internal/session"
	"github.com/danieljhkim/mealwiz/internal/wizard"
)

// loadConfig resolves paths and settings, applying global flags last.
func loadConfig() (*config.Paths, *config.Config, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	if err := paths.EnsureDirectories(fsops.NewRealFS()); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfg, err := config.Load(paths)
	if err != nil {
		return nil, nil, err
	}

	if profileFlag != "" {
		cfg.Profile = profileFlag
	}
	if backendFlag != "" {
		cfg.Backend = backendFlag
	}
	if verbosity > 0 {
		cfg.Verbosity = verbosity
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return paths, cfg, nil
}

// openStorage opens the configured backend scoped to the configured profile.
func openStorage(ctx context.Context, paths *config.Paths, cfg *config.Config) (kv.Storage, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return kv.NewFileStorage(fsops.NewRealFS(), paths.Profiles, cfg.Profile, cfg.QuotaBytes)
	case config.BackendSQLite:
		return kv.OpenSQLiteStorage(ctx, paths.DB, cfg.Profile, cfg.QuotaBytes)
	case config.BackendMemory:
		return kv.NewMemoryStorage(cfg.QuotaBytes), nil
	}
	return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidConfig, cfg.Backend)
}

// newEngine creates an engine over the configured session. The returned
// function releases the storage and must be called when done.
func newEngine(cmd *cobra.Command) (*wizard.Engine, func(), error) {
	paths, cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	storage, err := openStorage(cmd.Context(), paths, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.Verbosity).
		WithValues("profile", cfg.Profile, "backend", cfg.Backend)

	release := func() {
		if c, ok := storage.(kv.Closer); ok {
			if err := c.Close(); err != nil {
				log.Error(err, "failed to close storage")
			}
		}
	}

	store := session.New(storage, session.WithLogger(log))
	return wizard.New(store), release, nil
}

// parseStep parses a step number argument.
func parseStep(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", wizard.ErrUnknownStep, arg)
	}
	if _, err := wizard.LookupStep(n); err != nil {
		return 0, err
	}
	return n, nil
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ErrSlotNotSet is returned by get for a slot without a value.
var ErrSlotNotSet = errors.New("not set")
