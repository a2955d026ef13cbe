package dto

import (
	"time"

	"applytrack/internal/domain/job"
	"applytrack/internal/domain/skill"

	"github.com/google/uuid"
)

type TitleRequest struct {
	Title string `json:"title"`
}

type SkillResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type JobTagResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SkillUsageResponse struct {
	ExperienceCount  int64 `json:"experienceCount"`
	RequirementCount int64 `json:"requirementCount"`
}

type SkillDeleteResponse struct {
	Orphaned int `json:"orphanedDemonstrations"`
	Removed  int `json:"removedDemonstrations"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Title: s.Title, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

func NewSkillResponses(items []skill.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewSkillResponse(s))
	}
	return out
}

func NewJobTagResponse(t job.JobTag) JobTagResponse {
	return JobTagResponse{ID: t.ID, Title: t.Title, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func NewJobTagResponses(items []job.JobTag) []JobTagResponse {
	out := make([]JobTagResponse, 0, len(items))
	for _, t := range items {
		out = append(out, NewJobTagResponse(t))
	}
	return out
}
