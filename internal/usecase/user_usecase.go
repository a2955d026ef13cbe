package usecase

import (
	"context"

	"applytrack/internal/domain/user"
	ucuser "applytrack/internal/usecase/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const entityUser = "user"

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	DeleteMe(ctx context.Context, userID uuid.UUID) error
}

type User struct {
	svc      *ucuser.Service
	cache    ListCache
	notifier Notifier
	logger   zerolog.Logger
}

func NewUserUsecase(users user.Repository, cache ListCache, notifier Notifier) *User {
	return &User{svc: ucuser.NewService(users), cache: cacheOrNoop(cache), notifier: notifierOrNoop(notifier), logger: zerolog.Nop()}
}

func (u *User) WithLogger(l zerolog.Logger) *User {
	u.logger = l
	return u
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.GetMe(ctx, userID)
}

func (u *User) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	if err := u.svc.DeleteMe(ctx, userID); err != nil {
		return err
	}
	invalidateLists(ctx, u.cache, u.logger, SkillsListKey(userID), JobTagsListKey(userID))
	notify(u.notifier, userID, entityUser, userID, ActionDeleted)
	return nil
}
