package handler

import (
	"applytrack/internal/delivery/http/dto"
	"applytrack/internal/pkg/response"
	"applytrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/:id", h.Rename)
	r.Delete("/:id", h.Delete)
	r.Get("/:id/usage", h.Usage)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListSkills(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponses(items))
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.TitleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	created, err := h.uc.AddSkill(c.Context(), userID, req.Title)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill created", dto.NewSkillResponse(created))
}

func (h *SkillHandler) Rename(c fiber.Ctx) error {
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

	updated, err := h.uc.RenameSkill(c.Context(), userID, id, req.Title)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill updated", dto.NewSkillResponse(updated))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	res, err := h.uc.DeleteSkill(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill deleted", dto.SkillDeleteResponse{Orphaned: res.Orphaned, Removed: res.Removed})
}

func (h *SkillHandler) Usage(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	usage, err := h.uc.SkillUsage(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SkillUsageResponse{
		ExperienceCount:  usage.ExperienceCount,
		RequirementCount: usage.RequirementCount,
	})
}
