package usecase

import (
	"errors"
	"fmt"

	"applytrack/internal/domain/user"
	"applytrack/internal/repository"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrUserNotFound           = errors.New("user not found")
	ErrSkillNotFound          = errors.New("skill not found")
	ErrJobTagNotFound         = errors.New("job tag not found")
	ErrExperienceNotFound     = errors.New("experience not found")
	ErrDemonstrationNotFound  = errors.New("skill demonstration not found")
	ErrJobNotFound            = errors.New("job not found")
	ErrDuplicateDemonstration = errors.New("this experience already demonstrates that skill, edit the existing entry instead")
	ErrInternal               = errors.New("internal error")
)

// translate maps repository errors onto the use case taxonomy. Unknown
// errors become ErrInternal but keep their cause for logging.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrSkillNotFound):
		return ErrSkillNotFound
	case errors.Is(err, repository.ErrJobTagNotFound):
		return ErrJobTagNotFound
	case errors.Is(err, repository.ErrExperienceNotFound):
		return ErrExperienceNotFound
	case errors.Is(err, repository.ErrDemonstrationNotFound):
		return ErrDemonstrationNotFound
	case errors.Is(err, repository.ErrJobNotFound):
		return ErrJobNotFound
	case errors.Is(err, repository.ErrDuplicateDemonstration):
		return ErrDuplicateDemonstration
	case errors.Is(err, repository.ErrEmptyDemonstration),
		errors.Is(err, repository.ErrBlankRequirement):
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	case errors.Is(err, user.ErrNotFound):
		return ErrUserNotFound
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
