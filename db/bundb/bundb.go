package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Black-And-White-Club/demonlist/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Open connects to Postgres with the configured driver and verifies the
// connection before returning a bun.DB.
func Open(ctx context.Context, cfg config.PostgresConfig) (*bun.DB, error) {
	sqldb, err := sqlConn(cfg)
	if err != nil {
		return nil, err
	}

	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return bunDB(sqldb), nil
}

// bunDB returns a new bun.DB for given sql.DB connection pool.
func bunDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

func sqlConn(cfg config.PostgresConfig) (*sql.DB, error) {
	switch cfg.Driver {
	case config.DriverPGX:
		sqldb, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return sqldb, nil
	case config.DriverPG, "":
		return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN))), nil
	default:
		return nil, fmt.Errorf("unknown postgres driver %q", cfg.Driver)
	}
}
