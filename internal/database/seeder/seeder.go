package seeder

import (
	"context"

	"gorm.io/gorm"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db *gorm.DB) error
}
