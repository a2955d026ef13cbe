package database

import (
	"context"
	"database/sql"
)

// DB is the raw connection used outside the ORM: migrations, health checks
// and the GORM dialector all share the same underlying pool.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	SQLDB() *sql.DB
}

type Row interface {
	Scan(dest ...any) error
}
