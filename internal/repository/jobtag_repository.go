package repository

import (
	"context"

	"applytrack/internal/domain/job"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobTagRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]job.JobTag, error)
	Create(ctx context.Context, t job.JobTag) (job.JobTag, error)
	Rename(ctx context.Context, userID uuid.UUID, id uuid.UUID, title string) (job.JobTag, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type GormJobTagRepository struct {
	db *gorm.DB
}

func NewGormJobTagRepository(db *gorm.DB) *GormJobTagRepository {
	return &GormJobTagRepository{db: db}
}

func (r *GormJobTagRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]job.JobTag, error) {
	out := make([]job.JobTag, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("title ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormJobTagRepository) Create(ctx context.Context, t job.JobTag) (job.JobTag, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return job.JobTag{}, err
	}
	return t, nil
}

func (r *GormJobTagRepository) Rename(ctx context.Context, userID uuid.UUID, id uuid.UUID, title string) (job.JobTag, error) {
	var out job.JobTag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&out).Error; err != nil {
			return notFound(err, ErrJobTagNotFound)
		}
		if err := tx.Model(&out).Update("title", title).Error; err != nil {
			return err
		}
		out.Title = title
		return nil
	})
	if err != nil {
		return job.JobTag{}, err
	}
	return out, nil
}

func (r *GormJobTagRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t job.JobTag
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
			return notFound(err, ErrJobTagNotFound)
		}
		if err := tx.Where("job_tag_id = ?", id).Delete(&job.JobJobTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
}
