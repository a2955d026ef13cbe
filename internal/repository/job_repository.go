package repository

import (
	"context"
	"errors"
	"strings"

	"applytrack/internal/domain/experience"
	"applytrack/internal/domain/job"
	"applytrack/internal/domain/skill"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBlankRequirement = errors.New("requirement description is required")

type MatchDraft struct {
	ExperienceID uuid.UUID
	Explanation  string
}

// RequirementDraft is one requirement as submitted; ids are assigned on insert.
type RequirementDraft struct {
	Description string
	SkillIDs    []uuid.UUID
	Matches     []MatchDraft
}

type JobChanges struct {
	Title       *string
	Company     *string
	Description *string
}

func (c JobChanges) columns() map[string]any {
	m := map[string]any{}
	if c.Title != nil {
		m["title"] = *c.Title
	}
	if c.Company != nil {
		m["company"] = *c.Company
	}
	if c.Description != nil {
		m["description"] = *c.Description
	}
	return m
}

type JobRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Job, error)
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (job.Job, error)
	Create(ctx context.Context, j job.Job, tagIDs []uuid.UUID, reqs []RequirementDraft) (job.Job, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, changes JobChanges, tagIDs *[]uuid.UUID, reqs []RequirementDraft) (job.Job, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type GormJobRepository struct {
	db *gorm.DB
}

func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

func withJobGraph(db *gorm.DB) *gorm.DB {
	return db.
		Preload("JobTags", func(db *gorm.DB) *gorm.DB {
			return db.Order("title ASC")
		}).
		Preload("Requirements", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Requirements.Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("title ASC")
		}).
		Preload("Requirements.Matches", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Requirements.Matches.Experience")
}

func (r *GormJobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	out := make([]job.Job, 0)
	err := withJobGraph(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormJobRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (job.Job, error) {
	var out job.Job
	err := withJobGraph(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&out).Error
	if err != nil {
		return job.Job{}, notFound(err, ErrJobNotFound)
	}
	return out, nil
}

func (r *GormJobRepository) Create(ctx context.Context, j job.Job, tagIDs []uuid.UUID, reqs []RequirementDraft) (job.Job, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		j.JobTags = nil
		j.Requirements = nil
		if err := tx.Omit(clause.Associations).Create(&j).Error; err != nil {
			return err
		}
		if err := replaceJobTags(tx, j.UserID, j.ID, tagIDs); err != nil {
			return err
		}
		return insertRequirements(tx, j.UserID, j.ID, reqs)
	})
	if err != nil {
		return job.Job{}, err
	}
	return r.GetByID(ctx, j.UserID, j.ID)
}

// Update writes scalars, replaces the tag set when tagIDs is not nil, and
// always rebuilds the requirement set from reqs.
func (r *GormJobRepository) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, changes JobChanges, tagIDs *[]uuid.UUID, reqs []RequirementDraft) (job.Job, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var j job.Job
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&j).Error; err != nil {
			return notFound(err, ErrJobNotFound)
		}

		if cols := changes.columns(); len(cols) > 0 {
			if err := tx.Model(&j).Omit(clause.Associations).Updates(cols).Error; err != nil {
				return err
			}
		}

		if tagIDs != nil {
			if err := replaceJobTags(tx, userID, id, *tagIDs); err != nil {
				return err
			}
		}

		if err := deleteRequirements(tx, id); err != nil {
			return err
		}
		return insertRequirements(tx, userID, id, reqs)
	})
	if err != nil {
		return job.Job{}, err
	}
	return r.GetByID(ctx, userID, id)
}

func (r *GormJobRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var j job.Job
		if err := tx.Select("id").Where("id = ? AND user_id = ?", id, userID).First(&j).Error; err != nil {
			return notFound(err, ErrJobNotFound)
		}
		if err := tx.Where("job_id = ?", id).Delete(&job.JobJobTag{}).Error; err != nil {
			return err
		}
		if err := deleteRequirements(tx, id); err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&job.Job{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}

func replaceJobTags(tx *gorm.DB, userID uuid.UUID, jobID uuid.UUID, tagIDs []uuid.UUID) error {
	ids := uniqueIDs(tagIDs)
	if err := ensureOwned(tx, &job.JobTag{}, userID, ids, ErrJobTagNotFound); err != nil {
		return err
	}
	if err := tx.Where("job_id = ?", jobID).Delete(&job.JobJobTag{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	rows := make([]job.JobJobTag, 0, len(ids))
	for _, t := range ids {
		rows = append(rows, job.JobJobTag{JobID: jobID, JobTagID: t})
	}
	return tx.Create(&rows).Error
}

// deleteRequirements removes every requirement of a job with its skill and
// match rows. Experiences and skills are never touched.
func deleteRequirements(tx *gorm.DB, jobID uuid.UUID) error {
	var ids []uuid.UUID
	if err := tx.Model(&job.Requirement{}).Where("job_id = ?", jobID).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("requirement_id IN ?", ids).Delete(&job.RequirementSkill{}).Error; err != nil {
		return err
	}
	if err := tx.Where("requirement_id IN ?", ids).Delete(&job.RequirementMatch{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&job.Requirement{}).Error
}

func insertRequirements(tx *gorm.DB, userID uuid.UUID, jobID uuid.UUID, reqs []RequirementDraft) error {
	if len(reqs) == 0 {
		return nil
	}

	var skillIDs, expIDs []uuid.UUID
	for _, d := range reqs {
		if strings.TrimSpace(d.Description) == "" {
			return ErrBlankRequirement
		}
		skillIDs = append(skillIDs, d.SkillIDs...)
		for _, m := range d.Matches {
			expIDs = append(expIDs, m.ExperienceID)
		}
	}
	if err := ensureOwned(tx, &skill.Skill{}, userID, skillIDs, ErrSkillNotFound); err != nil {
		return err
	}
	if err := ensureOwned(tx, &experience.Experience{}, userID, expIDs, ErrExperienceNotFound); err != nil {
		return err
	}

	for i, d := range reqs {
		req := job.Requirement{
			Description: d.Description,
			Position:    i,
			JobID:       jobID,
		}
		if err := tx.Omit(clause.Associations).Create(&req).Error; err != nil {
			return err
		}

		if ids := uniqueIDs(d.SkillIDs); len(ids) > 0 {
			rows := make([]job.RequirementSkill, 0, len(ids))
			for _, s := range ids {
				rows = append(rows, job.RequirementSkill{RequirementID: req.ID, SkillID: s})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if len(d.Matches) > 0 {
			// the last explanation wins when an experience is listed twice
			byExp := make(map[uuid.UUID]int, len(d.Matches))
			rows := make([]job.RequirementMatch, 0, len(d.Matches))
			for _, m := range d.Matches {
				if at, ok := byExp[m.ExperienceID]; ok {
					rows[at].MatchExplanation = m.Explanation
					continue
				}
				byExp[m.ExperienceID] = len(rows)
				rows = append(rows, job.RequirementMatch{
					RequirementID:    req.ID,
					ExperienceID:     m.ExperienceID,
					MatchExplanation: m.Explanation,
				})
			}
			if len(rows) > 0 {
				if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
