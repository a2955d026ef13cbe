package migration

import (
	"context"
	"database/sql"
	"fmt"
)

// RequiredColumns lists what the repositories read and write. VerifySchema
// checks it after migrating so a drifted database fails at startup.
var RequiredColumns = map[string][]string{
	"users":               {"id", "username", "password_hash", "created_at", "updated_at"},
	"skills":              {"id", "title", "user_id"},
	"job_tags":            {"id", "title", "user_id"},
	"experiences":         {"id", "title", "description", "location", "position", "duration", "user_id"},
	"exp_skill_demos":     {"id", "explanation", "skill_id", "experience_id"},
	"jobs":                {"id", "title", "company", "description", "user_id"},
	"job_job_tags":        {"job_id", "job_tag_id"},
	"requirements":        {"id", "description", "position", "job_id"},
	"requirement_skills":  {"requirement_id", "skill_id"},
	"requirement_matches": {"requirement_id", "experience_id", "match_explanation"},
}

func VerifySchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for table, cols := range RequiredColumns {
		if err := ensureTableColumns(ctx, db, table, cols...); err != nil {
			return err
		}
	}
	return nil
}

func ensureTableColumns(ctx context.Context, db *sql.DB, table string, columns ...string) error {
	rows, err := db.QueryContext(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
