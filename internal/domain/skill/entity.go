package skill

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is a reusable capability tag owned by one user. Experiences reference
// it through demonstrations, requirements through a plain join.
type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Skill) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Usage is how many rows still point at a skill.
type Usage struct {
	ExperienceCount  int64
	RequirementCount int64
}

// SweepResult reports what deleting a skill did to its demonstrations.
type SweepResult struct {
	Orphaned int
	Removed  int
}
