package usecase

import (
	"context"
	"strings"

	"applytrack/internal/domain/skill"
	"applytrack/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const entitySkill = "skill"

type SkillUsecase interface {
	ListSkills(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error)
	AddSkill(ctx context.Context, userID uuid.UUID, title string) (skill.Skill, error)
	RenameSkill(ctx context.Context, userID uuid.UUID, id uuid.UUID, title string) (skill.Skill, error)
	DeleteSkill(ctx context.Context, userID uuid.UUID, id uuid.UUID) (skill.SweepResult, error)
	SkillUsage(ctx context.Context, userID uuid.UUID, id uuid.UUID) (skill.Usage, error)
}

type Skill struct {
	repo     repository.SkillRepository
	cache    ListCache
	notifier Notifier
	logger   zerolog.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, cache ListCache, notifier Notifier) *Skill {
	return &Skill{repo: repo, cache: cacheOrNoop(cache), notifier: notifierOrNoop(notifier), logger: zerolog.Nop()}
}

func (u *Skill) WithLogger(l zerolog.Logger) *Skill {
	u.logger = l
	return u
}

func (u *Skill) ListSkills(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	key := SkillsListKey(userID)

	var cached []skill.Skill
	if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	_ = u.cache.SetJSON(ctx, key, items, 0)
	return items, nil
}

func (u *Skill) AddSkill(ctx context.Context, userID uuid.UUID, title string) (skill.Skill, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return skill.Skill{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, skill.Skill{Title: title, UserID: userID})
	if err != nil {
		return skill.Skill{}, translate(err)
	}
	u.changed(ctx, userID, created.ID, ActionCreated)
	return created, nil
}

func (u *Skill) RenameSkill(ctx context.Context, userID uuid.UUID, id uuid.UUID, title string) (skill.Skill, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return skill.Skill{}, ErrInvalidInput
	}

	updated, err := u.repo.Rename(ctx, userID, id, title)
	if err != nil {
		return skill.Skill{}, translate(err)
	}
	u.changed(ctx, userID, id, ActionUpdated)
	return updated, nil
}

func (u *Skill) DeleteSkill(ctx context.Context, userID uuid.UUID, id uuid.UUID) (skill.SweepResult, error) {
	res, err := u.repo.Delete(ctx, userID, id)
	if err != nil {
		return skill.SweepResult{}, translate(err)
	}
	u.changed(ctx, userID, id, ActionDeleted)
	return res, nil
}

func (u *Skill) SkillUsage(ctx context.Context, userID uuid.UUID, id uuid.UUID) (skill.Usage, error) {
	usage, err := u.repo.Usage(ctx, userID, id)
	if err != nil {
		return skill.Usage{}, translate(err)
	}
	return usage, nil
}

func (u *Skill) changed(ctx context.Context, userID uuid.UUID, id uuid.UUID, action string) {
	invalidateLists(ctx, u.cache, u.logger, SkillsListKey(userID))
	notify(u.notifier, userID, entitySkill, id, action)
}
