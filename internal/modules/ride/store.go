// README: Ride store backed by PostgreSQL.
package ride

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rideColumns = `
	id, user_id, date, client_name, car_brand, car_model,
	start_time, end_time, notes, extra_costs, wwv_km,
	total_hours, normal_hours, overtime_hours, night_hours,
	normal_pay, overtime_pay, night_pay, gross_pay,
	wwv_amount, social_contribution, gross_total, net_pay, created_at`

type PGStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, r *Ride) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO rides (`+rideColumns+`
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15,
			$16, $17, $18, $19,
			$20, $21, $22, $23, $24
		)`,
		r.ID, r.UserID, r.Date, r.ClientName, r.CarBrand, r.CarModel,
		r.StartTime, r.EndTime, r.Notes, r.ExtraCosts, r.WWVKm,
		r.TotalHours, r.NormalHours, r.OvertimeHours, r.NightHours,
		r.NormalPay, r.OvertimePay, r.NightPay, r.GrossPay,
		r.WWVAmount, r.SocialContribution, r.GrossTotal, r.NetPay, r.CreatedAt,
	)
	return err
}

func (s *PGStore) Get(ctx context.Context, id, userID string) (*Ride, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+rideColumns+`
		FROM rides
		WHERE id = $1 AND user_id = $2`, id, userID,
	)
	r, err := scanRide(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PGStore) List(ctx context.Context, userID, monthPrefix string) ([]Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE user_id = $1`
	args := []any{userID}
	if monthPrefix != "" {
		query += ` AND date LIKE $2`
		args = append(args, monthPrefix+"%")
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rides := make([]Ride, 0)
	for rows.Next() {
		r, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, *r)
	}
	return rides, rows.Err()
}

func (s *PGStore) Update(ctx context.Context, r *Ride) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE rides SET
			date = $3, client_name = $4, car_brand = $5, car_model = $6,
			start_time = $7, end_time = $8, notes = $9,
			extra_costs = $10, wwv_km = $11,
			total_hours = $12, normal_hours = $13, overtime_hours = $14, night_hours = $15,
			normal_pay = $16, overtime_pay = $17, night_pay = $18, gross_pay = $19,
			wwv_amount = $20, social_contribution = $21, gross_total = $22, net_pay = $23
		WHERE id = $1 AND user_id = $2`,
		r.ID, r.UserID, r.Date, r.ClientName, r.CarBrand, r.CarModel,
		r.StartTime, r.EndTime, r.Notes, r.ExtraCosts, r.WWVKm,
		r.TotalHours, r.NormalHours, r.OvertimeHours, r.NightHours,
		r.NormalPay, r.OvertimePay, r.NightPay, r.GrossPay,
		r.WWVAmount, r.SocialContribution, r.GrossTotal, r.NetPay,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id, userID string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM rides WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanRide(row pgx.Row) (*Ride, error) {
	var r Ride
	err := row.Scan(
		&r.ID, &r.UserID, &r.Date, &r.ClientName, &r.CarBrand, &r.CarModel,
		&r.StartTime, &r.EndTime, &r.Notes, &r.ExtraCosts, &r.WWVKm,
		&r.TotalHours, &r.NormalHours, &r.OvertimeHours, &r.NightHours,
		&r.NormalPay, &r.OvertimePay, &r.NightPay, &r.GrossPay,
		&r.WWVAmount, &r.SocialContribution, &r.GrossTotal, &r.NetPay, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
