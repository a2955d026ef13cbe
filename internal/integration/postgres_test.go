package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"applytrack/internal/app"
	"applytrack/internal/config"
	"applytrack/internal/database"
	"applytrack/internal/database/gormdb"
	"applytrack/internal/database/migration"
	dbpostgres "applytrack/internal/database/postgres"
	"applytrack/internal/pkg/jwt"
	"applytrack/internal/pkg/logger"
	"applytrack/migrations"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPostgres_SkillDeleteKeepsExplainedDemonstrations(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	t.Cleanup(func() { _ = db.Close() })
	runMigrations(t, ctx, db)

	gdb, err := gormdb.Open(db.SQLDB(), logger.Nop())
	require.NoError(t, err)

	a := app.New(config.Config{App: config.AppConfig{AppName: "applytrack-it"}}, logger.Nop(), app.Deps{
		Gorm:         gdb,
		JWT:          jwt.NewHMACService("it-access", "it-refresh", time.Minute, time.Hour),
		Health:       db,
		PasswordCost: bcrypt.MinCost,
	})

	username := "it_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM users WHERE username = $1`, username)
	})

	status, _ := call(t, a, http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, status)

	var reg struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}
	status, _ = call(t, a, http.MethodPost, "/auth", "", map[string]string{"username": username, "password": "password123"}, &reg)
	require.Equal(t, http.StatusCreated, status)
	token := reg.AccessToken

	var sqlSkill, goSkill struct {
		ID string `json:"id"`
	}
	status, _ = call(t, a, http.MethodPost, "/lists/skills", token, map[string]string{"title": "SQL"}, &sqlSkill)
	require.Equal(t, http.StatusCreated, status)
	status, _ = call(t, a, http.MethodPost, "/lists/skills", token, map[string]string{"title": "Go"}, &goSkill)
	require.Equal(t, http.StatusCreated, status)

	var exp struct {
		ID                  string `json:"id"`
		SkillDemonstrations []struct {
			ID      string  `json:"id"`
			SkillID *string `json:"SkillId"`
		} `json:"SkillDemonstrations"`
	}
	status, _ = call(t, a, http.MethodPost, "/experiences", token, map[string]any{
		"title":       "Billing rewrite",
		"description": "Moved invoices to Postgres",
		"skillDemonstrations": []map[string]string{
			{"skillId": sqlSkill.ID, "explanation": "Designed the schema"},
			{"skillId": goSkill.ID},
		},
	}, &exp)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, exp.SkillDemonstrations, 2)

	var goDemo string
	for _, d := range exp.SkillDemonstrations {
		if d.SkillID != nil && *d.SkillID == goSkill.ID {
			goDemo = d.ID
		}
	}
	require.NotEmpty(t, goDemo)

	// the partial unique index must agree with the repository check
	status, _ = call(t, a, http.MethodPut, "/experiences/demo/"+goDemo, token, map[string]string{"SkillId": sqlSkill.ID}, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, a, http.MethodDelete, "/lists/skills/"+sqlSkill.ID, token, nil, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = call(t, a, http.MethodDelete, "/lists/skills/"+goSkill.ID, token, nil, nil)
	require.Equal(t, http.StatusOK, status)

	var orphans, total int
	require.NoError(t, db.QueryRow(ctx,
		`SELECT count(*) FILTER (WHERE skill_id IS NULL), count(*) FROM exp_skill_demos WHERE experience_id = $1`,
		exp.ID).Scan(&orphans, &total))
	assert.Equal(t, 1, orphans)
	assert.Equal(t, 1, total)

	status, _ = call(t, a, http.MethodDelete, "/auth/me", token, nil, nil)
	require.Equal(t, http.StatusOK, status)

	var left int
	require.NoError(t, db.QueryRow(ctx,
		`SELECT count(*) FROM experiences WHERE user_id = $1`, reg.User.ID).Scan(&left))
	assert.Zero(t, left)
}

func call(t *testing.T, a *app.App, method, path, token string, body any, out any) (int, string) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.Fiber.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()

	var env struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode, env.Message
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("APPLYTRACK_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("APPLYTRACK_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("APPLYTRACK_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("APPLYTRACK_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("APPLYTRACK_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("APPLYTRACK_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set APPLYTRACK_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.NewRunner("", migrations.FS, logger.Nop())
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if err := migration.VerifySchema(ctx, db.SQLDB()); err != nil {
		t.Fatalf("verify schema: %v", err)
	}
}

func stringsOrDefault(v string, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
