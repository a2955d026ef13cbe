package seeder

import (
	"context"

	"applytrack/internal/domain/experience"
	"applytrack/internal/domain/job"
	"applytrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SamplesSeeder writes one experience and one job that matches it, using
// whichever seeded skills and tags exist. It does nothing once the user has
// any experience.
type SamplesSeeder struct {
	Username string
}

func (SamplesSeeder) Name() string { return "samples" }

func (s SamplesSeeder) Run(ctx context.Context, db *gorm.DB) error {
	u, err := lookupUser(ctx, db, s.Username)
	if err != nil {
		return err
	}

	exps := repository.NewGormExperienceRepository(db)
	existing, err := exps.ListByUser(ctx, u.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	skillList, err := repository.NewGormSkillRepository(db).ListByUser(ctx, u.ID)
	if err != nil {
		return err
	}
	skillIDs := map[string]uuid.UUID{}
	for _, sk := range skillList {
		skillIDs[sk.Title] = sk.ID
	}
	tagList, err := repository.NewGormJobTagRepository(db).ListByUser(ctx, u.ID)
	if err != nil {
		return err
	}

	var demos []experience.SkillDemonstration
	var reqSkills []uuid.UUID
	for title, expl := range map[string]string{
		"Go":         "Built and operated the order service in Go.",
		"PostgreSQL": "Owned schema migrations and query tuning.",
	} {
		id, ok := skillIDs[title]
		if !ok {
			continue
		}
		demos = append(demos, experience.SkillDemonstration{SkillID: &id, Explanation: expl})
		reqSkills = append(reqSkills, id)
	}

	position := "Backend Engineer"
	exp, err := exps.Create(ctx, experience.Experience{
		Title:       "Acme Logistics",
		Description: "Backend work on order tracking and fulfilment.",
		Position:    &position,
		UserID:      u.ID,
	}, demos)
	if err != nil {
		return err
	}

	var tagIDs []uuid.UUID
	for _, t := range tagList {
		if t.Title == "backend" || t.Title == "remote" {
			tagIDs = append(tagIDs, t.ID)
		}
	}
	_, err = repository.NewGormJobRepository(db).Create(ctx, job.Job{
		Title:       "Senior Go Developer",
		Company:     "Example Corp",
		Description: "Services team, mostly Go and Postgres.",
		UserID:      u.ID,
	}, tagIDs, []repository.RequirementDraft{
		{
			Description: "3+ years writing production Go",
			SkillIDs:    reqSkills,
			Matches:     []repository.MatchDraft{{ExperienceID: exp.ID, Explanation: "Two years on the Acme order service."}},
		},
		{Description: "Comfortable with on-call"},
	})
	return err
}
