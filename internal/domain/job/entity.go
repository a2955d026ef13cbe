package job

import (
	"time"

	"applytrack/internal/domain/experience"
	"applytrack/internal/domain/skill"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobTag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *JobTag) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Company     string    `gorm:"not null"`
	Description string    `gorm:"type:text;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`

	JobTags      []JobTag      `gorm:"many2many:job_job_tags"`
	Requirements []Requirement `gorm:"foreignKey:JobID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// Requirement belongs to exactly one job. Position keeps submission order.
type Requirement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Description string    `gorm:"type:text;not null"`
	Position    int       `gorm:"not null"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;index"`

	Skills  []skill.Skill      `gorm:"many2many:requirement_skills"`
	Matches []RequirementMatch `gorm:"foreignKey:RequirementID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Requirement) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RequirementMatch records why an experience satisfies a requirement.
type RequirementMatch struct {
	RequirementID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExperienceID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	MatchExplanation string    `gorm:"type:text;not null"`
	Experience       *experience.Experience
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type JobJobTag struct {
	JobID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobTagID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (JobJobTag) TableName() string {
	return "job_job_tags"
}

type RequirementSkill struct {
	RequirementID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SkillID       uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (RequirementSkill) TableName() string {
	return "requirement_skills"
}
