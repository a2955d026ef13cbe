package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func SkillsListKey(userID uuid.UUID) string {
	return "lists:skills:" + userID.String()
}

func JobTagsListKey(userID uuid.UUID) string {
	return "lists:jobtags:" + userID.String()
}

type noCache struct{}

func (noCache) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (noCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (noCache) Delete(context.Context, ...string) error                   { return nil }

func cacheOrNoop(c ListCache) ListCache {
	if c == nil {
		return noCache{}
	}
	return c
}

// staleRefill is how long after a write the list keys are dropped a second
// time. A read that missed before the write committed may still store the old
// list after the first delete.
var staleRefill = 500 * time.Millisecond

func invalidateLists(ctx context.Context, c ListCache, log zerolog.Logger, keys ...string) {
	if _, ok := c.(noCache); ok {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("list cache invalidation failed")
	}

	bg := context.WithoutCancel(ctx)
	time.AfterFunc(staleRefill, func() {
		if err := c.Delete(bg, keys...); err != nil {
			log.Warn().Err(err).Strs("keys", keys).Msg("delayed list cache invalidation failed")
		}
	})
}
