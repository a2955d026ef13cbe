// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"applytrack/internal/database/gormdb"
	"applytrack/internal/domain/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a fresh in-memory database with every table created.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gormdb.OpenSQLite(dsn, zerolog.Nop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewUser inserts a user row and returns its id.
func NewUser(t testing.TB, db *gorm.DB, username string) uuid.UUID {
	t.Helper()

	u := user.User{ID: uuid.New(), Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}
