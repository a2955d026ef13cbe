package handler

import (
	"applytrack/internal/delivery/http/dto"
	"applytrack/internal/pkg/response"
	"applytrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ExperienceHandler struct {
	uc usecase.ExperienceUsecase
}

func NewExperienceHandler(uc usecase.ExperienceUsecase) *ExperienceHandler {
	return &ExperienceHandler{uc: uc}
}

func (h *ExperienceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Put("/demo/:id", h.ReassignDemonstration)
	r.Delete("/demo/:id", h.DeleteDemonstration)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)

	r.Post("/:id/demo", h.AddDemonstration)
	r.Put("/:id/demo/:skillId", h.UpdateDemonstration)
	r.Delete("/:id/demo/:skillId", h.RemoveDemonstration)
}

func (h *ExperienceHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListExperiences(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewExperienceResponses(items))
}

func (h *ExperienceHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	exp, err := h.uc.GetExperience(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewExperienceResponse(exp))
}

func (h *ExperienceHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateExperienceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	demos, err := demonstrationInputs(req.SkillDemonstrations)
	if err != nil {
		return err
	}

	created, err := h.uc.CreateExperience(c.Context(), userID, usecase.CreateExperienceInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Position:       req.Position,
		Duration:       req.Duration,
		Demonstrations: demos,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Experience created", dto.NewExperienceResponse(created))
}

func (h *ExperienceHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateExperienceRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := usecase.UpdateExperienceInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Position:    req.Position,
		Duration:    req.Duration,
	}
	if req.SkillDemonstrations != nil {
		demos, err := demonstrationInputs(*req.SkillDemonstrations)
		if err != nil {
			return err
		}
		in.Demonstrations = &demos
	}

	updated, err := h.uc.UpdateExperience(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Experience updated", dto.NewExperienceResponse(updated))
}

func (h *ExperienceHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteExperience(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Experience deleted", nil)
}

func (h *ExperienceHandler) AddDemonstration(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.DemonstrationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	skillID, err := parseOptionalID(&req.SkillID, "skillId")
	if err != nil {
		return err
	}

	created, err := h.uc.AddDemonstration(c.Context(), userID, id, usecase.DemonstrationInput{
		SkillID:     skillID,
		Explanation: req.Explanation,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill demonstration created", dto.NewDemonstrationResponse(created))
}

func (h *ExperienceHandler) UpdateDemonstration(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	skillID, err := pathID(c, "skillId")
	if err != nil {
		return err
	}
	var req dto.ExplanationRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	if err := h.uc.UpdateDemonstration(c.Context(), userID, id, skillID, req.Explanation); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill demonstration updated", nil)
}

func (h *ExperienceHandler) RemoveDemonstration(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	skillID, err := pathID(c, "skillId")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveDemonstration(c.Context(), userID, id, skillID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill demonstration deleted", nil)
}

func (h *ExperienceHandler) ReassignDemonstration(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	demoID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReassignRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	skillID, err := parseOptionalID(req.SkillID, "SkillId")
	if err != nil {
		return err
	}

	updated, err := h.uc.ReassignDemonstration(c.Context(), userID, demoID, skillID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill demonstration updated", dto.NewDemonstrationResponse(updated))
}

func (h *ExperienceHandler) DeleteDemonstration(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	demoID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteDemonstration(c.Context(), userID, demoID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill demonstration deleted", nil)
}

func demonstrationInputs(in []dto.DemonstrationRequest) ([]usecase.DemonstrationInput, error) {
	out := make([]usecase.DemonstrationInput, 0, len(in))
	for _, d := range in {
		skillID, err := parseOptionalID(&d.SkillID, "skillId")
		if err != nil {
			return nil, err
		}
		out = append(out, usecase.DemonstrationInput{SkillID: skillID, Explanation: d.Explanation})
	}
	return out, nil
}
