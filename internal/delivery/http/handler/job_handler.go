package handler

import (
	"applytrack/internal/delivery/http/dto"
	"applytrack/internal/pkg/response"
	"applytrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListJobs(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(items))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	j, err := h.uc.GetJob(c.Context(), userID, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	tagIDs, err := parseIDs(req.JobTagIDs, "jobTagIds")
	if err != nil {
		return err
	}
	reqs, err := requirementInputs(req.Requirements)
	if err != nil {
		return err
	}

	created, err := h.uc.CreateJob(c.Context(), userID, usecase.CreateJobInput{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		JobTagIDs:    tagIDs,
		Requirements: reqs,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created", dto.NewJobResponse(created))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := usecase.UpdateJobInput{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
	}
	if req.JobTagIDs != nil {
		tagIDs, err := parseIDs(*req.JobTagIDs, "jobTagIds")
		if err != nil {
			return err
		}
		in.JobTagIDs = &tagIDs
	}
	in.Requirements, err = requirementInputs(req.Requirements)
	if err != nil {
		return err
	}

	updated, err := h.uc.UpdateJob(c.Context(), userID, id, in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job updated", dto.NewJobResponse(updated))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteJob(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", nil)
}

func requirementInputs(in []dto.RequirementRequest) ([]usecase.RequirementInput, error) {
	out := make([]usecase.RequirementInput, 0, len(in))
	for _, r := range in {
		skillIDs, err := parseIDs(r.SkillIDs, "skillIds")
		if err != nil {
			return nil, err
		}
		matches := make([]usecase.MatchInput, 0, len(r.Matches))
		for _, m := range r.Matches {
			expID, err := parseOptionalID(&m.ExperienceID, "experienceId")
			if err != nil {
				return nil, err
			}
			if expID == nil {
				// the editor leaves unfilled match rows in the payload
				continue
			}
			matches = append(matches, usecase.MatchInput{ExperienceID: *expID, Explanation: m.MatchExplanation})
		}
		out = append(out, usecase.RequirementInput{
			Description: r.Description,
			SkillIDs:    skillIDs,
			Matches:     matches,
		})
	}
	return out, nil
}
