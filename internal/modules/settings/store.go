// README: Settings store backed by PostgreSQL.
package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a user has no settings row.
var ErrNotFound = errors.New("settings not found")

type PGStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Get(ctx context.Context, userID string) (Policy, error) {
	row := s.db.QueryRow(ctx, `
		SELECT base_rate, overtime_multiplier, night_surcharge,
		       wwv_rate, social_contribution_pct, normal_hours_threshold
		FROM settings
		WHERE user_id = $1`, userID,
	)
	var p Policy
	err := row.Scan(
		&p.BaseRate, &p.OvertimeMultiplier, &p.NightSurcharge,
		&p.WWVRate, &p.SocialContributionPct, &p.NormalHoursThreshold,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Policy{}, ErrNotFound
	}
	if err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Put inserts or fully replaces the user's settings row.
func (s *PGStore) Put(ctx context.Context, userID string, p Policy) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO settings (
			user_id, base_rate, overtime_multiplier, night_surcharge,
			wwv_rate, social_contribution_pct, normal_hours_threshold
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			base_rate = EXCLUDED.base_rate,
			overtime_multiplier = EXCLUDED.overtime_multiplier,
			night_surcharge = EXCLUDED.night_surcharge,
			wwv_rate = EXCLUDED.wwv_rate,
			social_contribution_pct = EXCLUDED.social_contribution_pct,
			normal_hours_threshold = EXCLUDED.normal_hours_threshold`,
		userID,
		p.BaseRate, p.OvertimeMultiplier, p.NightSurcharge,
		p.WWVRate, p.SocialContributionPct, p.NormalHoursThreshold,
	)
	return err
}
