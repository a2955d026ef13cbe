package repository

import (
	"context"

	"applytrack/internal/domain/experience"
	"applytrack/internal/domain/job"
	"applytrack/internal/domain/skill"
	"applytrack/internal/domain/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

var _ user.Repository = (*GormUserRepository)(nil)

func (r *GormUserRepository) CreateUser(ctx context.Context, u user.User) error {
	err := r.db.WithContext(ctx).Create(&u).Error
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return err
}

func (r *GormUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return user.User{}, notFound(err, user.ErrNotFound)
	}
	return u, nil
}

func (r *GormUserRepository) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return user.User{}, notFound(err, user.ErrNotFound)
	}
	return u, nil
}

func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&user.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteUser walks the ownership tree leaf first so it behaves the same with
// or without foreign key cascades.
func (r *GormUserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		jobIDs := tx.Model(&job.Job{}).Select("id").Where("user_id = ?", id)
		reqIDs := tx.Model(&job.Requirement{}).Select("id").Where("job_id IN (?)", jobIDs)
		expIDs := tx.Model(&experience.Experience{}).Select("id").Where("user_id = ?", id)

		steps := []struct {
			model any
			where string
			arg   any
		}{
			{&job.RequirementSkill{}, "requirement_id IN (?)", reqIDs},
			{&job.RequirementMatch{}, "requirement_id IN (?)", reqIDs},
			{&job.RequirementMatch{}, "experience_id IN (?)", expIDs},
			{&job.Requirement{}, "job_id IN (?)", jobIDs},
			{&job.JobJobTag{}, "job_id IN (?)", jobIDs},
			{&experience.SkillDemonstration{}, "experience_id IN (?)", expIDs},
			{&job.Job{}, "user_id = ?", id},
			{&experience.Experience{}, "user_id = ?", id},
			{&job.JobTag{}, "user_id = ?", id},
			{&skill.Skill{}, "user_id = ?", id},
		}
		for _, s := range steps {
			if err := tx.Where(s.where, s.arg).Delete(s.model).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", id).Delete(&user.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return user.ErrNotFound
		}
		return nil
	})
}
