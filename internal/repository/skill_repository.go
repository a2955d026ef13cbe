package repository

import (
	"context"

	"applytrack/internal/domain/experience"
	"applytrack/internal/domain/job"
	"applytrack/internal/domain/skill"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error)
	Create(ctx context.Context, s skill.Skill) (skill.Skill, error)
	Rename(ctx context.Context, userID uuid.UUID, id uuid.UUID, title string) (skill.Skill, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) (skill.SweepResult, error)
	Usage(ctx context.Context, userID uuid.UUID, id uuid.UUID) (skill.Usage, error)
}

type GormSkillRepository struct {
	db *gorm.DB
}

func NewGormSkillRepository(db *gorm.DB) *GormSkillRepository {
	return &GormSkillRepository{db: db}
}

func (r *GormSkillRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("title ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormSkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *GormSkillRepository) Rename(ctx context.Context, userID uuid.UUID, id uuid.UUID, title string) (skill.Skill, error) {
	var out skill.Skill
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&out).Error; err != nil {
			return notFound(err, ErrSkillNotFound)
		}
		if err := tx.Model(&out).Update("title", title).Error; err != nil {
			return err
		}
		out.Title = title
		return nil
	})
	if err != nil {
		return skill.Skill{}, err
	}
	return out, nil
}

// Delete removes a skill without losing user-authored text: demonstrations
// that explain something are kept with a null skill, empty ones are removed.
// The sweep has to run before the skill row goes away.
func (r *GormSkillRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) (skill.SweepResult, error) {
	var res skill.SweepResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s skill.Skill
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&s).Error; err != nil {
			return notFound(err, ErrSkillNotFound)
		}

		var demos []experience.SkillDemonstration
		if err := tx.Where("skill_id = ?", id).Find(&demos).Error; err != nil {
			return err
		}

		var keep, drop []uuid.UUID
		for _, d := range demos {
			if d.HasExplanation() {
				keep = append(keep, d.ID)
			} else {
				drop = append(drop, d.ID)
			}
		}

		if len(keep) > 0 {
			err := tx.Model(&experience.SkillDemonstration{}).
				Where("id IN ?", keep).
				Update("skill_id", gorm.Expr("NULL")).Error
			if err != nil {
				return err
			}
		}
		if len(drop) > 0 {
			if err := tx.Where("id IN ?", drop).Delete(&experience.SkillDemonstration{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("skill_id = ?", id).Delete(&job.RequirementSkill{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&s).Error; err != nil {
			return err
		}

		res = skill.SweepResult{Orphaned: len(keep), Removed: len(drop)}
		return nil
	})
	if err != nil {
		return skill.SweepResult{}, err
	}
	return res, nil
}

func (r *GormSkillRepository) Usage(ctx context.Context, userID uuid.UUID, id uuid.UUID) (skill.Usage, error) {
	db := r.db.WithContext(ctx)

	var s skill.Skill
	if err := db.Select("id").Where("id = ? AND user_id = ?", id, userID).First(&s).Error; err != nil {
		return skill.Usage{}, notFound(err, ErrSkillNotFound)
	}

	var u skill.Usage
	if err := db.Model(&experience.SkillDemonstration{}).Where("skill_id = ?", id).Count(&u.ExperienceCount).Error; err != nil {
		return skill.Usage{}, err
	}
	if err := db.Model(&job.RequirementSkill{}).Where("skill_id = ?", id).Count(&u.RequirementCount).Error; err != nil {
		return skill.Usage{}, err
	}
	return u, nil
}
