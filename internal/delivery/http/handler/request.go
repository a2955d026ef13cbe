package handler

import (
	"errors"
	"strings"

	"applytrack/internal/delivery/http/middleware"
	"applytrack/internal/pkg/response"
	"applytrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func currentUser(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func pathID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func bindBody(c fiber.Ctx, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return nil
}

// parseIDs parses client ids; blank entries are dropped.
func parseIDs(raw []string, field string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+field, nil, err)
		}
		out = append(out, id)
	}
	return out, nil
}

// parseOptionalID treats nil and "" as no id.
func parseOptionalID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+field, nil, err)
	}
	return &id, nil
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		// a blank required field answers like a missing resource
		return middleware.NewAppError(fiber.StatusNotFound, "Required field is missing or empty", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrJobTagNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job tag not found", nil, err)
	case errors.Is(err, usecase.ErrExperienceNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Experience not found", nil, err)
	case errors.Is(err, usecase.ErrDemonstrationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill demonstration not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrDuplicateDemonstration):
		return middleware.NewAppError(fiber.StatusConflict, "This experience already demonstrates that skill. Edit the existing entry instead.", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
