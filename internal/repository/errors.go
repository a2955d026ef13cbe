package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrSkillNotFound          = errors.New("skill not found")
	ErrJobTagNotFound         = errors.New("job tag not found")
	ErrExperienceNotFound     = errors.New("experience not found")
	ErrDemonstrationNotFound  = errors.New("skill demonstration not found")
	ErrJobNotFound            = errors.New("job not found")
	ErrDuplicateDemonstration = errors.New("skill already demonstrated by this experience")
	ErrEmptyDemonstration     = errors.New("skill demonstration has neither skill nor explanation")
	ErrUsernameTaken          = errors.New("username already taken")
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite reports it only in the message
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ensureOwned fails with missing unless every id is a row of model owned by
// userID. The zero uuid never names a row.
func ensureOwned(tx *gorm.DB, model any, userID uuid.UUID, ids []uuid.UUID, missing error) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		if id == uuid.Nil {
			return missing
		}
	}

	var n int64
	if err := tx.Model(model).Where("user_id = ? AND id IN ?", userID, ids).Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return missing
	}
	return nil
}
