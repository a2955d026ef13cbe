package routes

import (
	"applytrack/internal/delivery/http/handler"
	"applytrack/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Skill      *handler.SkillHandler
	JobTag     *handler.JobTagHandler
	Experience *handler.ExperienceHandler
	Job        *handler.JobHandler
	WS         *ws.Handler

	AuthMiddleware fiber.Handler
}

// Register mounts everything under basePath; an empty basePath serves the
// API from the root.
func (r *Registry) Register(app *fiber.App, basePath string) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}

	root := app.Group(basePath)

	authGroup := root.Group("/auth")
	r.Auth.RegisterRoutes(authGroup)
	r.User.RegisterRoutes(authGroup, r.AuthMiddleware)

	if r.WS != nil {
		r.WS.RegisterRoutes(root)
	}

	r.Experience.RegisterRoutes(root.Group("/experiences", r.AuthMiddleware))
	r.Job.RegisterRoutes(root.Group("/jobs", r.AuthMiddleware))

	lists := root.Group("/lists", r.AuthMiddleware)
	r.Skill.RegisterRoutes(lists.Group("/skills"))
	r.JobTag.RegisterRoutes(lists.Group("/jobtags"))
}
