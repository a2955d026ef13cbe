package seeder

import (
	"context"
	"strings"

	"applytrack/internal/domain/job"
	"applytrack/internal/domain/skill"
	"applytrack/internal/repository"

	"gorm.io/gorm"
)

// ListsSeeder adds any skill or job tag title the user does not have yet.
// Titles are compared case-insensitively.
type ListsSeeder struct {
	Username string
	Skills   []string
	JobTags  []string
}

func (ListsSeeder) Name() string { return "lists" }

func (s ListsSeeder) Run(ctx context.Context, db *gorm.DB) error {
	u, err := lookupUser(ctx, db, s.Username)
	if err != nil {
		return err
	}

	skills := repository.NewGormSkillRepository(db)
	have, err := skills.ListByUser(ctx, u.ID)
	if err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, sk := range have {
		seen[strings.ToLower(sk.Title)] = true
	}
	for _, title := range s.Skills {
		if seen[strings.ToLower(title)] {
			continue
		}
		if _, err := skills.Create(ctx, skill.Skill{Title: title, UserID: u.ID}); err != nil {
			return err
		}
		seen[strings.ToLower(title)] = true
	}

	tags := repository.NewGormJobTagRepository(db)
	haveTags, err := tags.ListByUser(ctx, u.ID)
	if err != nil {
		return err
	}
	seen = map[string]bool{}
	for _, t := range haveTags {
		seen[strings.ToLower(t.Title)] = true
	}
	for _, title := range s.JobTags {
		if seen[strings.ToLower(title)] {
			continue
		}
		if _, err := tags.Create(ctx, job.JobTag{Title: title, UserID: u.ID}); err != nil {
			return err
		}
		seen[strings.ToLower(title)] = true
	}
	return nil
}
