package drivers

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/wareline/wareline/internal/config"
	"github.com/wareline/wareline/internal/warehouse"
)

// NewStoreFromConfig creates a session store based on the provided
// configuration.
func NewStoreFromConfig(cfg config.SessionConfig, db *gorm.DB) (warehouse.Store, error) {
	switch cfg.StoreType {
	case "file":
		slog.Info("initializing file session store", "dir", cfg.FileDir)
		return NewJSONFileStore(cfg.FileDir)
	case "database":
		slog.Info("initializing database session store")
		return NewGormStore(db)
	default:
		return nil, fmt.Errorf("unsupported session store type: %s", cfg.StoreType)
	}
}
