package usecase

import (
	"context"
	"strings"

	"applytrack/internal/domain/job"
	"applytrack/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const entityJobTag = "jobtag"

type JobTagUsecase interface {
	ListJobTags(ctx context.Context, userID uuid.UUID) ([]job.JobTag, error)
	AddJobTag(ctx context.Context, userID uuid.UUID, title string) (job.JobTag, error)
	RenameJobTag(ctx context.Context, userID uuid.UUID, id uuid.UUID, title string) (job.JobTag, error)
	DeleteJobTag(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type JobTag struct {
	repo     repository.JobTagRepository
	cache    ListCache
	notifier Notifier
	logger   zerolog.Logger
}

func NewJobTagUsecase(repo repository.JobTagRepository, cache ListCache, notifier Notifier) *JobTag {
	return &JobTag{repo: repo, cache: cacheOrNoop(cache), notifier: notifierOrNoop(notifier), logger: zerolog.Nop()}
}

func (u *JobTag) WithLogger(l zerolog.Logger) *JobTag {
	u.logger = l
	return u
}

func (u *JobTag) ListJobTags(ctx context.Context, userID uuid.UUID) ([]job.JobTag, error) {
	key := JobTagsListKey(userID)

	var cached []job.JobTag
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

func (u *JobTag) AddJobTag(ctx context.Context, userID uuid.UUID, title string) (job.JobTag, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return job.JobTag{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, job.JobTag{Title: title, UserID: userID})
	if err != nil {
		return job.JobTag{}, translate(err)
	}
	u.changed(ctx, userID, created.ID, ActionCreated)
	return created, nil
}

func (u *JobTag) RenameJobTag(ctx context.Context, userID uuid.UUID, id uuid.UUID, title string) (job.JobTag, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return job.JobTag{}, ErrInvalidInput
	}

	updated, err := u.repo.Rename(ctx, userID, id, title)
	if err != nil {
		return job.JobTag{}, translate(err)
	}
	u.changed(ctx, userID, id, ActionUpdated)
	return updated, nil
}

func (u *JobTag) DeleteJobTag(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return translate(err)
	}
	u.changed(ctx, userID, id, ActionDeleted)
	return nil
}

func (u *JobTag) changed(ctx context.Context, userID uuid.UUID, id uuid.UUID, action string) {
	invalidateLists(ctx, u.cache, u.logger, JobTagsListKey(userID))
	notify(u.notifier, userID, entityJobTag, id, action)
}
