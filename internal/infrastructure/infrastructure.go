// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (logging, persistence, content storage, metrics,
// notifications) that the registry systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/database/memory"
	"github.com/JaimeStill/document-registry/internal/database/postgres"
	"github.com/JaimeStill/document-registry/internal/metrics"
	"github.com/JaimeStill/document-registry/internal/notifications"
	"github.com/JaimeStill/document-registry/internal/storage"
	pkgdb "github.com/JaimeStill/document-registry/pkg/database"
	"github.com/JaimeStill/document-registry/pkg/lifecycle"
	"github.com/JaimeStill/document-registry/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
// Pool is nil when the memory driver is configured.
type Infrastructure struct {
	Lifecycle     *lifecycle.Coordinator
	Logger        *slog.Logger
	Database      database.Database
	Pool          pkgdb.System
	Storage       storage.System
	Metrics       *metrics.Metrics
	Notifications *notifications.Dispatcher
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
	}

	if err := infra.openDatabase(&cfg.Database); err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	infra.Storage = store

	m, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("metrics init failed: %w", err)
	}
	infra.Metrics = m

	infra.Notifications = notifications.New(&cfg.Notifications, logger, m)

	return infra, nil
}

// NewDatabase opens the persistence layer alone, for commands that do not
// run the HTTP service. Logs go to stderr so command output stays on stdout.
func NewDatabase(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logging.NewWithWriter(&cfg.Logging, os.Stderr),
	}
	if err := infra.openDatabase(&cfg.Database); err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return infra, nil
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Pool != nil {
		if err := i.Pool.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	if i.Notifications != nil {
		if err := i.Notifications.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("notifications start failed: %w", err)
		}
	}
	return nil
}

func (i *Infrastructure) openDatabase(cfg *pkgdb.Config) error {
	switch cfg.Driver {
	case pkgdb.DriverMemory:
		db, err := memory.New()
		if err != nil {
			return err
		}
		i.Database = db
		i.Logger.Warn("using in-memory database; data is lost on shutdown")
	default:
		pool, err := pkgdb.New(cfg, i.Logger)
		if err != nil {
			return err
		}
		i.Pool = pool
		i.Database = postgres.New(pool.Connection())
	}
	return nil
}
