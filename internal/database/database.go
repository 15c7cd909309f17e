// Package database opens the optional SQL archive for generated quizzes.
package database

import (
	"context"
	"fmt"

	"doc-quiz/internal/config"
	"doc-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver, registered as "oracle"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure Go SQLite driver, registered as "sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverOracle = "oracle"
)

func init() {
	// go-ora registers "oracle", which sqlx does not know; it takes :name binds.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
}

// Open connects to the configured archive and pings it.
func Open(ctx context.Context, cfg config.ArchiveConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverSQLite, DriverOracle:
	default:
		return nil, fmt.Errorf("unsupported archive driver: %q", cfg.Driver)
	}

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s archive: %w", cfg.Driver, err)
	}
	if cfg.Driver == DriverSQLite {
		// SQLite serializes writers; one connection avoids SQLITE_BUSY under load.
		db.SetMaxOpenConns(1)
	}

	logger.Get().Info("Connected to quiz archive", zap.String("driver", cfg.Driver))
	return db, nil
}
