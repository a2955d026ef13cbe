package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"applytrack/internal/app"
	"applytrack/internal/config"
	"applytrack/internal/database/gormdb"
	"applytrack/internal/database/migration"
	dbpostgres "applytrack/internal/database/postgres"
	"applytrack/internal/database/seeder"
	"applytrack/internal/pkg/logger"
	"applytrack/migrations"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var configFile string

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Job application tracker API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations (unless disabled) and start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo account with starter skills, tags and samples",
	RunE:  runSeed,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", os.Getenv("CONFIG_FILE"), "optional config file (env vars take precedence)")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func load() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, zerolog.Logger{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.New(cfg.App.AppName, cfg.App.Environment), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if cfg.Migrations.RunOnStart {
		if err := migrate(ctx, cfg, log); err != nil {
			return err
		}
	}

	server, cleanup, err := app.Bootstrap(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Error().Err(err).Msg("cleanup")
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("base_path", cfg.App.BasePath).Msg("http server listening")
		errCh <- server.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := load()
	if err != nil {
		return err
	}
	return migrate(cmd.Context(), cfg, log)
}

func migrate(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	runner := migration.NewRunner(cfg.Migrations.Dir, migrations.FS, log)
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := migration.VerifySchema(ctx, db.SQLDB()); err != nil {
		return errors.Join(errors.New("schema verification failed"), err)
	}
	return nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := migrate(ctx, cfg, log); err != nil {
		return err
	}

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	gdb, err := gormdb.Open(db.SQLDB(), log)
	if err != nil {
		return fmt.Errorf("open gorm: %w", err)
	}
	runner := seeder.Runner{Seeders: seeder.Defaults(), Logger: log}
	if err := runner.Run(ctx, gdb); err != nil {
		return err
	}
	log.Info().Str("username", seeder.DemoUsername).Msg("demo data ready")
	return nil
}
