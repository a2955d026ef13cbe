package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingerFunc(func(context.Context) error { return nil })
	down = pingerFunc(func(context.Context) error { return errors.New("down") })
)

func TestHealthHandler(t *testing.T) {
	cases := []struct {
		name       string
		db, cache  Pinger
		wantStatus int
		wantDB     string
		wantCache  string
	}{
		{"all up", up, up, http.StatusOK, "up", "up"},
		{"cache down", up, down, http.StatusOK, "up", "bypass"},
		{"no cache", up, nil, http.StatusOK, "up", "bypass"},
		{"db down", down, up, http.StatusServiceUnavailable, "down", "up"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			NewHealthHandler(tc.db, tc.cache).RegisterRoutes(app)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			var body struct {
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantDB, body.Data["database"])
			assert.Equal(t, tc.wantCache, body.Data["cache"])
		})
	}
}
