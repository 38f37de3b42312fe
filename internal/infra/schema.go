// README: Schema bootstrap, creates tables on startup when missing.
package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		user_id                 TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		base_rate               DOUBLE PRECISION NOT NULL,
		overtime_multiplier     DOUBLE PRECISION NOT NULL,
		night_surcharge         DOUBLE PRECISION NOT NULL,
		wwv_rate                DOUBLE PRECISION NOT NULL,
		social_contribution_pct DOUBLE PRECISION NOT NULL,
		normal_hours_threshold  DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rides (
		id                   TEXT PRIMARY KEY,
		user_id              TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date                 TEXT NOT NULL,
		client_name          TEXT NOT NULL,
		car_brand            TEXT NOT NULL,
		car_model            TEXT NOT NULL,
		start_time           TEXT NOT NULL,
		end_time             TEXT NOT NULL,
		notes                TEXT NOT NULL DEFAULT '',
		extra_costs          DOUBLE PRECISION NOT NULL DEFAULT 0,
		wwv_km               DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_hours          DOUBLE PRECISION NOT NULL,
		normal_hours         DOUBLE PRECISION NOT NULL,
		overtime_hours       DOUBLE PRECISION NOT NULL,
		night_hours          DOUBLE PRECISION NOT NULL,
		normal_pay           DOUBLE PRECISION NOT NULL,
		overtime_pay         DOUBLE PRECISION NOT NULL,
		night_pay            DOUBLE PRECISION NOT NULL,
		gross_pay            DOUBLE PRECISION NOT NULL,
		wwv_amount           DOUBLE PRECISION NOT NULL,
		social_contribution  DOUBLE PRECISION NOT NULL,
		gross_total          DOUBLE PRECISION NOT NULL,
		net_pay              DOUBLE PRECISION NOT NULL,
		created_at           TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS rides_user_date_idx ON rides (user_id, date DESC)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("infra: ensure schema: %w", err)
		}
	}
	return nil
}
