package usecase

import (
	"context"
	"strings"

	"applytrack/internal/domain/experience"
	"applytrack/internal/repository"

	"github.com/google/uuid"
)

const (
	entityExperience    = "experience"
	entityDemonstration = "demonstration"
)

type DemonstrationInput struct {
	SkillID     *uuid.UUID
	Explanation string
}

type CreateExperienceInput struct {
	Title          string
	Description    string
	Location       *string
	Position       *string
	Duration       *string
	Demonstrations []DemonstrationInput
}

// UpdateExperienceInput leaves nil fields untouched. A non-nil
// Demonstrations replaces the whole set, an empty slice clears it.
type UpdateExperienceInput struct {
	Title          *string
	Description    *string
	Location       *string
	Position       *string
	Duration       *string
	Demonstrations *[]DemonstrationInput
}

type ExperienceUsecase interface {
	ListExperiences(ctx context.Context, userID uuid.UUID) ([]experience.Experience, error)
	GetExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID) (experience.Experience, error)
	CreateExperience(ctx context.Context, userID uuid.UUID, in CreateExperienceInput) (experience.Experience, error)
	UpdateExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID, in UpdateExperienceInput) (experience.Experience, error)
	DeleteExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	AddDemonstration(ctx context.Context, userID uuid.UUID, experienceID uuid.UUID, in DemonstrationInput) (experience.SkillDemonstration, error)
	UpdateDemonstration(ctx context.Context, userID uuid.UUID, experienceID uuid.UUID, skillID uuid.UUID, explanation string) error
	RemoveDemonstration(ctx context.Context, userID uuid.UUID, experienceID uuid.UUID, skillID uuid.UUID) error
	ReassignDemonstration(ctx context.Context, userID uuid.UUID, demoID uuid.UUID, skillID *uuid.UUID) (experience.SkillDemonstration, error)
	DeleteDemonstration(ctx context.Context, userID uuid.UUID, demoID uuid.UUID) error
}

type Experience struct {
	repo     repository.ExperienceRepository
	notifier Notifier
}

func NewExperienceUsecase(repo repository.ExperienceRepository, notifier Notifier) *Experience {
	return &Experience{repo: repo, notifier: notifierOrNoop(notifier)}
}

func (u *Experience) ListExperiences(ctx context.Context, userID uuid.UUID) ([]experience.Experience, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (u *Experience) GetExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID) (experience.Experience, error) {
	exp, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return experience.Experience{}, translate(err)
	}
	return exp, nil
}

func (u *Experience) CreateExperience(ctx context.Context, userID uuid.UUID, in CreateExperienceInput) (experience.Experience, error) {
	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if title == "" || desc == "" {
		return experience.Experience{}, ErrInvalidInput
	}

	exp := experience.Experience{
		Title:       title,
		Description: desc,
		Location:    trimOptional(in.Location),
		Position:    trimOptional(in.Position),
		Duration:    trimOptional(in.Duration),
		UserID:      userID,
	}

	created, err := u.repo.Create(ctx, exp, toDemonstrations(in.Demonstrations))
	if err != nil {
		return experience.Experience{}, translate(err)
	}
	notify(u.notifier, userID, entityExperience, created.ID, ActionCreated)
	return created, nil
}

func (u *Experience) UpdateExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID, in UpdateExperienceInput) (experience.Experience, error) {
	changes := repository.ExperienceChanges{
		Location: trimOptional(in.Location),
		Position: trimOptional(in.Position),
		Duration: trimOptional(in.Duration),
	}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return experience.Experience{}, ErrInvalidInput
		}
		changes.Title = &t
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			return experience.Experience{}, ErrInvalidInput
		}
		changes.Description = &d
	}

	var demos *[]experience.SkillDemonstration
	if in.Demonstrations != nil {
		d := toDemonstrations(*in.Demonstrations)
		demos = &d
	}

	if err := u.repo.Update(ctx, userID, id, changes, demos); err != nil {
		return experience.Experience{}, translate(err)
	}
	notify(u.notifier, userID, entityExperience, id, ActionUpdated)
	return u.GetExperience(ctx, userID, id)
}

func (u *Experience) DeleteExperience(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return translate(err)
	}
	notify(u.notifier, userID, entityExperience, id, ActionDeleted)
	return nil
}

func (u *Experience) AddDemonstration(ctx context.Context, userID uuid.UUID, experienceID uuid.UUID, in DemonstrationInput) (experience.SkillDemonstration, error) {
	demo := experience.SkillDemonstration{
		SkillID:      in.SkillID,
		Explanation:  in.Explanation,
		ExperienceID: experienceID,
	}
	if demo.IsEmpty() {
		return experience.SkillDemonstration{}, ErrInvalidInput
	}

	created, err := u.repo.AddDemonstration(ctx, userID, demo)
	if err != nil {
		return experience.SkillDemonstration{}, translate(err)
	}
	notify(u.notifier, userID, entityExperience, experienceID, ActionUpdated)
	return created, nil
}

func (u *Experience) UpdateDemonstration(ctx context.Context, userID uuid.UUID, experienceID uuid.UUID, skillID uuid.UUID, explanation string) error {
	err := u.repo.UpdateDemonstrationExplanation(ctx, userID, experienceID, skillID, explanation)
	if err != nil {
		return translate(err)
	}
	notify(u.notifier, userID, entityExperience, experienceID, ActionUpdated)
	return nil
}

func (u *Experience) RemoveDemonstration(ctx context.Context, userID uuid.UUID, experienceID uuid.UUID, skillID uuid.UUID) error {
	if err := u.repo.DeleteDemonstrationBySkill(ctx, userID, experienceID, skillID); err != nil {
		return translate(err)
	}
	notify(u.notifier, userID, entityExperience, experienceID, ActionUpdated)
	return nil
}

func (u *Experience) ReassignDemonstration(ctx context.Context, userID uuid.UUID, demoID uuid.UUID, skillID *uuid.UUID) (experience.SkillDemonstration, error) {
	demo, err := u.repo.ReassignDemonstration(ctx, userID, demoID, skillID)
	if err != nil {
		return experience.SkillDemonstration{}, translate(err)
	}
	notify(u.notifier, userID, entityExperience, demo.ExperienceID, ActionUpdated)
	return demo, nil
}

func (u *Experience) DeleteDemonstration(ctx context.Context, userID uuid.UUID, demoID uuid.UUID) error {
	if err := u.repo.DeleteDemonstration(ctx, userID, demoID); err != nil {
		return translate(err)
	}
	notify(u.notifier, userID, entityDemonstration, demoID, ActionDeleted)
	return nil
}

func toDemonstrations(in []DemonstrationInput) []experience.SkillDemonstration {
	out := make([]experience.SkillDemonstration, 0, len(in))
	for _, d := range in {
		out = append(out, experience.SkillDemonstration{
			SkillID:     d.SkillID,
			Explanation: d.Explanation,
		})
	}
	return out
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
