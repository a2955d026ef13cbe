package cache

import (
	"context"
	"testing"
	"time"

	"applytrack/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBypass(t *testing.T) {
	ctx := context.Background()
	c := NewBypass()

	assert.False(t, c.Available())
	assert.ErrorIs(t, c.Ping(ctx), ErrUnavailable)
	require.NoError(t, c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	ok, err := c.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, out)

	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Close())
}

func TestNilIsBypass(t *testing.T) {
	var c *Redis
	assert.False(t, c.Available())
	assert.NoError(t, c.Delete(context.Background(), "k"))
	assert.NoError(t, c.Close())
}

func TestNewRedis_UnreachableFallsBack(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// port 1 is reserved and nothing listens there
	c := NewRedis(ctx, config.RedisConfig{Host: "127.0.0.1", Port: "1"}, zerolog.Nop())
	assert.False(t, c.Available())
	assert.Equal(t, 10*time.Minute, c.ttl)
}
