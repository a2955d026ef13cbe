package handler

import (
	"errors"

	"applytrack/internal/delivery/http/dto"
	"applytrack/internal/delivery/http/middleware"
	"applytrack/internal/pkg/response"
	"applytrack/internal/usecase"
	useruc "applytrack/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterRoutes mounts the session routes under the public /auth group, so
// each route carries the auth middleware itself.
func (h *UserHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/auth", auth, h.GetMe)
	r.Get("/me", auth, h.GetMe)
	r.Delete("/me", auth, h.DeleteMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *UserHandler) DeleteMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteMe(c.Context(), userID); err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Account deleted", nil)
}

func mapUserUsecaseError(err error) error {
	if errors.Is(err, useruc.ErrNotFound) {
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
