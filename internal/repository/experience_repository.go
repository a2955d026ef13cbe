package repository

import (
	"context"

	"applytrack/internal/domain/experience"
	"applytrack/internal/domain/job"
	"applytrack/internal/domain/skill"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExperienceChanges carries the scalar fields of an update. Nil means leave
// the column alone.
type ExperienceChanges struct {
	Title       *string
	Description *string
	Location    *string
	Position    *string
	Duration    *string
}

func (c ExperienceChanges) columns() map[string]any {
	m := map[string]any{}
	if c.Title != nil {
		m["title"] = *c.Title
	}
	if c.Description != nil {
		m["description"] = *c.Description
	}
	if c.Location != nil {
		m["location"] = *c.Location
	}
	if c.Position != nil {
		m["position"] = *c.Position
	}
	if c.Duration != nil {
		m["duration"] = *c.Duration
	}
	return m
}

type ExperienceRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]experience.Experience, error)
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (experience.Experience, error)
	Create(ctx context.Context, exp experience.Experience, demos []experience.SkillDemonstration) (experience.Experience, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, changes ExperienceChanges, demos *[]experience.SkillDemonstration) error
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	AddDemonstration(ctx context.Context, userID uuid.UUID, demo experience.SkillDemonstration) (experience.SkillDemonstration, error)
	UpdateDemonstrationExplanation(ctx context.Context, userID uuid.UUID, experienceID uuid.UUID, skillID uuid.UUID, explanation string) error
	DeleteDemonstrationBySkill(ctx context.Context, userID uuid.UUID, experienceID uuid.UUID, skillID uuid.UUID) error
	ReassignDemonstration(ctx context.Context, userID uuid.UUID, demoID uuid.UUID, skillID *uuid.UUID) (experience.SkillDemonstration, error)
	DeleteDemonstration(ctx context.Context, userID uuid.UUID, demoID uuid.UUID) error
}

type GormExperienceRepository struct {
	db *gorm.DB
}

func NewGormExperienceRepository(db *gorm.DB) *GormExperienceRepository {
	return &GormExperienceRepository{db: db}
}

func withDemonstrations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("SkillDemonstrations", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("SkillDemonstrations.Skill")
}

func (r *GormExperienceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]experience.Experience, error) {
	out := make([]experience.Experience, 0)
	err := withDemonstrations(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormExperienceRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (experience.Experience, error) {
	var out experience.Experience
	err := withDemonstrations(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&out).Error
	if err != nil {
		return experience.Experience{}, notFound(err, ErrExperienceNotFound)
	}
	return out, nil
}

func (r *GormExperienceRepository) Create(ctx context.Context, exp experience.Experience, demos []experience.SkillDemonstration) (experience.Experience, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exp.SkillDemonstrations = nil
		if err := tx.Create(&exp).Error; err != nil {
			return err
		}
		return insertDemonstrations(tx, exp.UserID, exp.ID, demos)
	})
	if err != nil {
		return experience.Experience{}, err
	}
	return r.GetByID(ctx, exp.UserID, exp.ID)
}

// Update writes the given scalars and, when demos is not nil, replaces the
// whole demonstration set.
func (r *GormExperienceRepository) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, changes ExperienceChanges, demos *[]experience.SkillDemonstration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exp experience.Experience
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&exp).Error; err != nil {
			return notFound(err, ErrExperienceNotFound)
		}

		if cols := changes.columns(); len(cols) > 0 {
			if err := tx.Model(&exp).Updates(cols).Error; err != nil {
				return err
			}
		}

		if demos == nil {
			return nil
		}
		if err := tx.Where("experience_id = ?", id).Delete(&experience.SkillDemonstration{}).Error; err != nil {
			return err
		}
		return insertDemonstrations(tx, userID, id, *demos)
	})
}

func (r *GormExperienceRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exp experience.Experience
		if err := tx.Select("id").Where("id = ? AND user_id = ?", id, userID).First(&exp).Error; err != nil {
			return notFound(err, ErrExperienceNotFound)
		}
		if err := tx.Where("experience_id = ?", id).Delete(&experience.SkillDemonstration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("experience_id = ?", id).Delete(&job.RequirementMatch{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&experience.Experience{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrExperienceNotFound
		}
		return nil
	})
}

func (r *GormExperienceRepository) AddDemonstration(ctx context.Context, userID uuid.UUID, demo experience.SkillDemonstration) (experience.SkillDemonstration, error) {
	if demo.IsEmpty() {
		return experience.SkillDemonstration{}, ErrEmptyDemonstration
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedExperience(tx, userID, demo.ExperienceID); err != nil {
			return err
		}
		if demo.SkillID != nil {
			if err := ensureOwned(tx, &skill.Skill{}, userID, []uuid.UUID{*demo.SkillID}, ErrSkillNotFound); err != nil {
				return err
			}
			if err := ensureNoDuplicate(tx, demo.ExperienceID, *demo.SkillID, uuid.Nil); err != nil {
				return err
			}
		}
		demo.Skill = nil
		if err := tx.Create(&demo).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateDemonstration
			}
			return err
		}
		return nil
	})
	if err != nil {
		return experience.SkillDemonstration{}, err
	}
	return r.loadDemonstration(ctx, demo.ID)
}

func (r *GormExperienceRepository) UpdateDemonstrationExplanation(ctx context.Context, userID uuid.UUID, experienceID uuid.UUID, skillID uuid.UUID, explanation string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedExperience(tx, userID, experienceID); err != nil {
			return err
		}
		res := tx.Model(&experience.SkillDemonstration{}).
			Where("experience_id = ? AND skill_id = ?", experienceID, skillID).
			Update("explanation", explanation)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDemonstrationNotFound
		}
		return nil
	})
}

func (r *GormExperienceRepository) DeleteDemonstrationBySkill(ctx context.Context, userID uuid.UUID, experienceID uuid.UUID, skillID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedExperience(tx, userID, experienceID); err != nil {
			return err
		}
		res := tx.Where("experience_id = ? AND skill_id = ?", experienceID, skillID).
			Delete(&experience.SkillDemonstration{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDemonstrationNotFound
		}
		return nil
	})
}

// ReassignDemonstration points a demonstration, addressed by its own id so
// orphans can be reached, at another skill. A nil skillID orphans it.
func (r *GormExperienceRepository) ReassignDemonstration(ctx context.Context, userID uuid.UUID, demoID uuid.UUID, skillID *uuid.UUID) (experience.SkillDemonstration, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		demo, err := ownedDemonstration(tx, userID, demoID)
		if err != nil {
			return err
		}

		if skillID == nil {
			if !demo.HasExplanation() {
				return ErrEmptyDemonstration
			}
			return tx.Model(&demo).Update("skill_id", gorm.Expr("NULL")).Error
		}

		if err := ensureOwned(tx, &skill.Skill{}, userID, []uuid.UUID{*skillID}, ErrSkillNotFound); err != nil {
			return err
		}
		if err := ensureNoDuplicate(tx, demo.ExperienceID, *skillID, demo.ID); err != nil {
			return err
		}
		if err := tx.Model(&demo).Update("skill_id", *skillID).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateDemonstration
			}
			return err
		}
		return nil
	})
	if err != nil {
		return experience.SkillDemonstration{}, err
	}
	return r.loadDemonstration(ctx, demoID)
}

func (r *GormExperienceRepository) DeleteDemonstration(ctx context.Context, userID uuid.UUID, demoID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		demo, err := ownedDemonstration(tx, userID, demoID)
		if err != nil {
			return err
		}
		return tx.Delete(&demo).Error
	})
}

func (r *GormExperienceRepository) loadDemonstration(ctx context.Context, id uuid.UUID) (experience.SkillDemonstration, error) {
	var out experience.SkillDemonstration
	if err := r.db.WithContext(ctx).Preload("Skill").Where("id = ?", id).First(&out).Error; err != nil {
		return experience.SkillDemonstration{}, notFound(err, ErrDemonstrationNotFound)
	}
	return out, nil
}

// insertDemonstrations writes demos for one experience, skipping empty rows.
// Skill ids must belong to userID and appear at most once.
func insertDemonstrations(tx *gorm.DB, userID uuid.UUID, experienceID uuid.UUID, demos []experience.SkillDemonstration) error {
	rows := make([]experience.SkillDemonstration, 0, len(demos))
	skillIDs := make([]uuid.UUID, 0, len(demos))
	seen := map[uuid.UUID]struct{}{}
	for _, d := range demos {
		if d.IsEmpty() {
			continue
		}
		if d.SkillID != nil {
			if _, dup := seen[*d.SkillID]; dup {
				return ErrDuplicateDemonstration
			}
			seen[*d.SkillID] = struct{}{}
			skillIDs = append(skillIDs, *d.SkillID)
		}
		rows = append(rows, experience.SkillDemonstration{
			Explanation:  d.Explanation,
			SkillID:      d.SkillID,
			ExperienceID: experienceID,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := ensureOwned(tx, &skill.Skill{}, userID, skillIDs, ErrSkillNotFound); err != nil {
		return err
	}
	return tx.Create(&rows).Error
}

func ownedExperience(tx *gorm.DB, userID uuid.UUID, id uuid.UUID) error {
	var exp experience.Experience
	err := tx.Select("id").Where("id = ? AND user_id = ?", id, userID).First(&exp).Error
	return notFound(err, ErrExperienceNotFound)
}

// ownedDemonstration loads a demonstration and checks the parent experience
// belongs to userID. A foreign row looks exactly like a missing one.
func ownedDemonstration(tx *gorm.DB, userID uuid.UUID, demoID uuid.UUID) (experience.SkillDemonstration, error) {
	var demo experience.SkillDemonstration
	if err := tx.Where("id = ?", demoID).First(&demo).Error; err != nil {
		return experience.SkillDemonstration{}, notFound(err, ErrDemonstrationNotFound)
	}

	var exp experience.Experience
	if err := tx.Select("id", "user_id").Where("id = ?", demo.ExperienceID).First(&exp).Error; err != nil {
		return experience.SkillDemonstration{}, notFound(err, ErrDemonstrationNotFound)
	}
	if exp.UserID != userID {
		return experience.SkillDemonstration{}, ErrDemonstrationNotFound
	}
	return demo, nil
}

func ensureNoDuplicate(tx *gorm.DB, experienceID uuid.UUID, skillID uuid.UUID, except uuid.UUID) error {
	q := tx.Model(&experience.SkillDemonstration{}).
		Where("experience_id = ? AND skill_id = ?", experienceID, skillID)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateDemonstration
	}
	return nil
}
