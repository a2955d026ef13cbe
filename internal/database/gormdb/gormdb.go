package gormdb

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open builds a GORM session on top of an already connected *sql.DB so the
// ORM and the raw pool share connections.
func Open(sqlDB *sql.DB, log zerolog.Logger) (*gorm.DB, error) {
	if sqlDB == nil {
		return nil, errors.New("nil db")
	}

	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), Config(log))
}

func Config(log zerolog.Logger) *gorm.Config {
	l := log.With().Str("component", "gorm").Logger()
	return &gorm.Config{
		Logger: gormlogger.New(&l, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}
