package app

import (
	"context"
	"fmt"
	"strings"

	"applytrack/internal/config"
	"applytrack/internal/delivery/http/handler"
	"applytrack/internal/delivery/http/middleware"
	"applytrack/internal/delivery/http/routes"
	"applytrack/internal/pkg/jwt"
	"applytrack/internal/repository"
	"applytrack/internal/usecase"
	"applytrack/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs. Cache, Hub and Health may be nil.
type Deps struct {
	Gorm   *gorm.DB
	JWT    jwt.Service
	Cache  usecase.ListCache
	Hub    *ws.Hub
	Health handler.Pinger
	Redis  handler.Pinger

	// PasswordCost overrides the bcrypt cost when positive.
	PasswordCost int
}

type App struct {
	Fiber *fiber.App
}

func New(cfg config.Config, logger zerolog.Logger, deps Deps) *App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, logger, cfg.IsDevelopment())
	buildRegistry(logger, deps).Register(f, cfg.App.BasePath)

	return &App{Fiber: f}
}

// Bootstrap wires the production container. The returned cleanup stops the
// hub and closes the pools.
func Bootstrap(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(cfg, logger, Deps{
		Gorm:   c.Gorm,
		JWT:    c.JWT,
		Cache:  c.Cache,
		Hub:    c.Hub,
		Health: c.DB,
		Redis:  c.Cache,
	})

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger zerolog.Logger, showCauses bool) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).WithCauses(showCauses).Middleware())
}

func buildRegistry(logger zerolog.Logger, deps Deps) *routes.Registry {
	var notifier usecase.Notifier
	if deps.Hub != nil {
		notifier = deps.Hub
	}

	userRepo := repository.NewGormUserRepository(deps.Gorm)
	authUC := usecase.NewAuthUsecase(userRepo, deps.JWT)
	if deps.PasswordCost > 0 {
		authUC.WithPasswordCost(deps.PasswordCost)
	}

	reg := &routes.Registry{
		Auth:       handler.NewAuthHandler(authUC),
		User:       handler.NewUserHandler(usecase.NewUserUsecase(userRepo, deps.Cache, notifier).WithLogger(logger)),
		Skill:      handler.NewSkillHandler(usecase.NewSkillUsecase(repository.NewGormSkillRepository(deps.Gorm), deps.Cache, notifier).WithLogger(logger)),
		JobTag:     handler.NewJobTagHandler(usecase.NewJobTagUsecase(repository.NewGormJobTagRepository(deps.Gorm), deps.Cache, notifier).WithLogger(logger)),
		Experience: handler.NewExperienceHandler(usecase.NewExperienceUsecase(repository.NewGormExperienceRepository(deps.Gorm), notifier)),
		Job:        handler.NewJobHandler(usecase.NewJobUsecase(repository.NewGormJobRepository(deps.Gorm), notifier)),

		AuthMiddleware: middleware.NewAuthMiddleware(deps.JWT).Middleware(),
	}
	if deps.Health != nil {
		reg.Health = handler.NewHealthHandler(deps.Health, deps.Redis)
	}
	if deps.Hub != nil {
		reg.WS = ws.NewHandler(deps.Hub, deps.JWT, logger)
	}
	return reg
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
