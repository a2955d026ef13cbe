package dto

import (
	"time"

	"applytrack/internal/domain/job"

	"github.com/google/uuid"
)

type MatchRequest struct {
	ExperienceID     string `json:"experienceId"`
	MatchExplanation string `json:"matchExplanation"`
}

type RequirementRequest struct {
	Description string         `json:"description"`
	SkillIDs    []string       `json:"skillIds"`
	Matches     []MatchRequest `json:"matches"`
}

type CreateJobRequest struct {
	Title        string               `json:"title"`
	Company      string               `json:"company"`
	Description  string               `json:"description"`
	JobTagIDs    []string             `json:"jobTagIds"`
	Requirements []RequirementRequest `json:"requirements"`
}

type UpdateJobRequest struct {
	Title        *string              `json:"title"`
	Company      *string              `json:"company"`
	Description  *string              `json:"description"`
	JobTagIDs    *[]string            `json:"jobTagIds"`
	Requirements []RequirementRequest `json:"requirements"`
}

type MatchedExperienceResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Location         *string   `json:"location"`
	Position         *string   `json:"position"`
	Duration         *string   `json:"duration"`
	MatchExplanation string    `json:"matchExplanation"`
}

type RequirementResponse struct {
	ID                 uuid.UUID                   `json:"id"`
	Description        string                      `json:"description"`
	Position           int                         `json:"position"`
	Skills             []SkillResponse             `json:"Skills"`
	MatchedExperiences []MatchedExperienceResponse `json:"MatchedExperiences"`
}

type JobResponse struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	Company      string                `json:"company"`
	Description  string                `json:"description"`
	JobTags      []JobTagResponse      `json:"JobTags"`
	Requirements []RequirementResponse `json:"Requirements"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func NewRequirementResponse(r job.Requirement) RequirementResponse {
	matched := make([]MatchedExperienceResponse, 0, len(r.Matches))
	for _, m := range r.Matches {
		if m.Experience == nil {
			continue
		}
		matched = append(matched, MatchedExperienceResponse{
			ID:               m.Experience.ID,
			Title:            m.Experience.Title,
			Description:      m.Experience.Description,
			Location:         m.Experience.Location,
			Position:         m.Experience.Position,
			Duration:         m.Experience.Duration,
			MatchExplanation: m.MatchExplanation,
		})
	}
	return RequirementResponse{
		ID:                 r.ID,
		Description:        r.Description,
		Position:           r.Position,
		Skills:             NewSkillResponses(r.Skills),
		MatchedExperiences: matched,
	}
}

func NewJobResponse(j job.Job) JobResponse {
	reqs := make([]RequirementResponse, 0, len(j.Requirements))
	for _, r := range j.Requirements {
		reqs = append(reqs, NewRequirementResponse(r))
	}
	return JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.Company,
		Description:  j.Description,
		JobTags:      NewJobTagResponses(j.JobTags),
		Requirements: reqs,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func NewJobResponses(items []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}
