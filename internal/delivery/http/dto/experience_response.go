package dto

import (
	"time"

	"applytrack/internal/domain/experience"

	"github.com/google/uuid"
)

type DemonstrationRequest struct {
	SkillID     string `json:"skillId"`
	Explanation string `json:"explanation"`
}

type CreateExperienceRequest struct {
	Title               string                 `json:"title"`
	Description         string                 `json:"description"`
	Location            *string                `json:"location"`
	Position            *string                `json:"position"`
	Duration            *string                `json:"duration"`
	SkillDemonstrations []DemonstrationRequest `json:"skillDemonstrations"`
}

type UpdateExperienceRequest struct {
	Title               *string                 `json:"title"`
	Description         *string                 `json:"description"`
	Location            *string                 `json:"location"`
	Position            *string                 `json:"position"`
	Duration            *string                 `json:"duration"`
	SkillDemonstrations *[]DemonstrationRequest `json:"skillDemonstrations"`
}

type ExplanationRequest struct {
	Explanation string `json:"explanation"`
}

// ReassignRequest uses the capitalised key the web client sends. An empty or
// null SkillId orphans the demonstration.
type ReassignRequest struct {
	SkillID *string `json:"SkillId"`
}

type DemonstrationResponse struct {
	ID           uuid.UUID      `json:"id"`
	Explanation  string         `json:"explanation"`
	SkillID      *uuid.UUID     `json:"SkillId"`
	ExperienceID uuid.UUID      `json:"ExperienceId"`
	Skill        *SkillResponse `json:"Skill"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type ExperienceResponse struct {
	ID                  uuid.UUID               `json:"id"`
	Title               string                  `json:"title"`
	Description         string                  `json:"description"`
	Location            *string                 `json:"location"`
	Position            *string                 `json:"position"`
	Duration            *string                 `json:"duration"`
	SkillDemonstrations []DemonstrationResponse `json:"SkillDemonstrations"`
	CreatedAt           time.Time               `json:"createdAt"`
	UpdatedAt           time.Time               `json:"updatedAt"`
}

func NewDemonstrationResponse(d experience.SkillDemonstration) DemonstrationResponse {
	out := DemonstrationResponse{
		ID:           d.ID,
		Explanation:  d.Explanation,
		SkillID:      d.SkillID,
		ExperienceID: d.ExperienceID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Skill != nil && d.SkillID != nil {
		s := NewSkillResponse(*d.Skill)
		out.Skill = &s
	}
	return out
}

func NewExperienceResponse(e experience.Experience) ExperienceResponse {
	demos := make([]DemonstrationResponse, 0, len(e.SkillDemonstrations))
	for _, d := range e.SkillDemonstrations {
		demos = append(demos, NewDemonstrationResponse(d))
	}
	return ExperienceResponse{
		ID:                  e.ID,
		Title:               e.Title,
		Description:         e.Description,
		Location:            e.Location,
		Position:            e.Position,
		Duration:            e.Duration,
		SkillDemonstrations: demos,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

func NewExperienceResponses(items []experience.Experience) []ExperienceResponse {
	out := make([]ExperienceResponse, 0, len(items))
	for _, e := range items {
		out = append(out, NewExperienceResponse(e))
	}
	return out
}
