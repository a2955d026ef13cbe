package handler

import (
	"applytrack/internal/delivery/http/dto"
	"applytrack/internal/pkg/response"
	"applytrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobTagHandler struct {
	uc usecase.JobTagUsecase
}

func NewJobTagHandler(uc usecase.JobTagUsecase) *JobTagHandler {
	return &JobTagHandler{uc: uc}
}

func (h *JobTagHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/:id", h.Rename)
	r.Delete("/:id", h.Delete)
}

func (h *JobTagHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListJobTags(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobTagResponses(items))
}

func (h *JobTagHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.TitleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.AddJobTag(c.Context(), userID, req.Title)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job tag created", dto.NewJobTagResponse(created))
}

func (h *JobTagHandler) Rename(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TitleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	updated, err := h.uc.RenameJobTag(c.Context(), userID, id, req.Title)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job tag updated", dto.NewJobTagResponse(updated))
}

func (h *JobTagHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteJobTag(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job tag deleted", nil)
}
