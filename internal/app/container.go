package app

import (
	"context"
	"errors"
	"time"

	"applytrack/internal/config"
	"applytrack/internal/database"
	"applytrack/internal/database/gormdb"
	dbpostgres "applytrack/internal/database/postgres"
	"applytrack/internal/infrastructure/cache"
	"applytrack/internal/pkg/jwt"
	"applytrack/internal/ws"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Container struct {
	Config config.Config
	Logger zerolog.Logger
	DB     database.DB
	Gorm   *gorm.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	JWT    jwt.Service
}

func NewContainer(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Container, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	gdb, err := gormdb.Open(db.SQLDB(), logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Gorm:   gdb,
		Cache:  cache.NewRedis(ctx, cfg.Redis, logger),
		Hub:    ws.NewHub(logger),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
