package experience

import (
	"strings"
	"time"

	"applytrack/internal/domain/skill"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Experience struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text;not null"`
	Location    *string
	Position    *string
	Duration    *string
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`

	SkillDemonstrations []SkillDemonstration `gorm:"foreignKey:ExperienceID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Experience) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// SkillDemonstration explains how an experience shows a skill. SkillID is nil
// for an orphan: the skill was deleted but the explanation was kept.
type SkillDemonstration struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Explanation  string     `gorm:"type:text;not null"`
	SkillID      *uuid.UUID `gorm:"type:uuid;index"`
	Skill        *skill.Skill
	ExperienceID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SkillDemonstration) TableName() string {
	return "exp_skill_demos"
}

func (d *SkillDemonstration) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// IsEmpty reports a row that carries nothing worth storing.
func (d SkillDemonstration) IsEmpty() bool {
	return d.SkillID == nil && strings.TrimSpace(d.Explanation) == ""
}

func (d SkillDemonstration) HasExplanation() bool {
	return strings.TrimSpace(d.Explanation) != ""
}
