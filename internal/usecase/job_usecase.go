package usecase

import (
	"context"
	"strings"

	"applytrack/internal/domain/job"
	"applytrack/internal/repository"

	"github.com/google/uuid"
)

const entityJob = "job"

type MatchInput struct {
	ExperienceID uuid.UUID
	Explanation  string
}

type RequirementInput struct {
	Description string
	SkillIDs    []uuid.UUID
	Matches     []MatchInput
}

type CreateJobInput struct {
	Title        string
	Company      string
	Description  string
	JobTagIDs    []uuid.UUID
	Requirements []RequirementInput
}

// UpdateJobInput leaves nil scalars untouched and replaces the tag set only
// when JobTagIDs is not nil. Requirements are always replaced; nil means none.
type UpdateJobInput struct {
	Title        *string
	Company      *string
	Description  *string
	JobTagIDs    *[]uuid.UUID
	Requirements []RequirementInput
}

type JobUsecase interface {
	ListJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error)
	GetJob(ctx context.Context, userID uuid.UUID, id uuid.UUID) (job.Job, error)
	CreateJob(ctx context.Context, userID uuid.UUID, in CreateJobInput) (job.Job, error)
	UpdateJob(ctx context.Context, userID uuid.UUID, id uuid.UUID, in UpdateJobInput) (job.Job, error)
	DeleteJob(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type Job struct {
	repo     repository.JobRepository
	notifier Notifier
}

func NewJobUsecase(repo repository.JobRepository, notifier Notifier) *Job {
	return &Job{repo: repo, notifier: notifierOrNoop(notifier)}
}

func (u *Job) ListJobs(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (u *Job) GetJob(ctx context.Context, userID uuid.UUID, id uuid.UUID) (job.Job, error) {
	j, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return job.Job{}, translate(err)
	}
	return j, nil
}

func (u *Job) CreateJob(ctx context.Context, userID uuid.UUID, in CreateJobInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.Company)
	if title == "" || company == "" {
		return job.Job{}, ErrInvalidInput
	}
	reqs, err := toRequirementDrafts(in.Requirements)
	if err != nil {
		return job.Job{}, err
	}

	j := job.Job{
		Title:       title,
		Company:     company,
		Description: strings.TrimSpace(in.Description),
		UserID:      userID,
	}
	created, err := u.repo.Create(ctx, j, in.JobTagIDs, reqs)
	if err != nil {
		return job.Job{}, translate(err)
	}
	notify(u.notifier, userID, entityJob, created.ID, ActionCreated)
	return created, nil
}

func (u *Job) UpdateJob(ctx context.Context, userID uuid.UUID, id uuid.UUID, in UpdateJobInput) (job.Job, error) {
	var changes repository.JobChanges
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return job.Job{}, ErrInvalidInput
		}
		changes.Title = &t
	}
	if in.Company != nil {
		c := strings.TrimSpace(*in.Company)
		if c == "" {
			return job.Job{}, ErrInvalidInput
		}
		changes.Company = &c
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		changes.Description = &d
	}

	reqs, err := toRequirementDrafts(in.Requirements)
	if err != nil {
		return job.Job{}, err
	}

	updated, err := u.repo.Update(ctx, userID, id, changes, in.JobTagIDs, reqs)
	if err != nil {
		return job.Job{}, translate(err)
	}
	notify(u.notifier, userID, entityJob, id, ActionUpdated)
	return updated, nil
}

func (u *Job) DeleteJob(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return translate(err)
	}
	notify(u.notifier, userID, entityJob, id, ActionDeleted)
	return nil
}

func toRequirementDrafts(in []RequirementInput) ([]repository.RequirementDraft, error) {
	out := make([]repository.RequirementDraft, 0, len(in))
	for _, r := range in {
		desc := strings.TrimSpace(r.Description)
		if desc == "" {
			return nil, ErrInvalidInput
		}
		matches := make([]repository.MatchDraft, 0, len(r.Matches))
		for _, m := range r.Matches {
			matches = append(matches, repository.MatchDraft{ExperienceID: m.ExperienceID, Explanation: m.Explanation})
		}
		out = append(out, repository.RequirementDraft{
			Description: desc,
			SkillIDs:    r.SkillIDs,
			Matches:     matches,
		})
	}
	return out, nil
}
