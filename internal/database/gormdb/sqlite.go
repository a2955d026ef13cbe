package gormdb

import (
	"applytrack/internal/domain/experience"
	"applytrack/internal/domain/job"
	"applytrack/internal/domain/skill"
	"applytrack/internal/domain/user"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&skill.Skill{},
		&job.JobTag{},
		&experience.Experience{},
		&experience.SkillDemonstration{},
		&job.Job{},
		&job.Requirement{},
		&job.RequirementMatch{},
		&job.JobJobTag{},
		&job.RequirementSkill{},
	}
}

// OpenSQLite opens a schema-less SQLite database and creates the tables from
// the models. Postgres keeps using the SQL migrations.
func OpenSQLite(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	cfg := Config(log)
	cfg.DisableForeignKeyConstraintWhenMigrating = true

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// one connection keeps a shared in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(Models()...); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}
