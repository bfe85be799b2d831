package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/courtside/hoa-court-booking/internal/model"
)

// HOARepo persists tenants ('hoas' table).  Court names live in a JSON
// column; everything else is plain scalars.
type HOARepo struct{ db *sql.DB }

func NewHOARepo(db *sql.DB) *HOARepo { return &HOARepo{db: db} }

const hoaColumns = "id,name,slug,invitation_code,is_active,court_count,court_names," +
	"default_prime_hours,default_standard_hours," +
	"weekday_prime_start,weekday_prime_end,weekend_prime_start,weekend_prime_end," +
	"booking_window_days,max_advance_days,allow_guests,created_at,updated_at"

func scanHOA(row *sql.Row) (model.HOA, error) {
	var (
		h     model.HOA
		names []byte
	)
	err := row.Scan(&h.ID, &h.Name, &h.Slug, &h.InvitationCode, &h.IsActive,
		&h.CourtCount, &names,
		&h.DefaultPrimeHours, &h.DefaultStdHours,
		&h.WeekdayPrimeStart, &h.WeekdayPrimeEnd, &h.WeekendPrimeStart, &h.WeekendPrimeEnd,
		&h.BookingWindowDays, &h.MaxAdvanceDays, &h.AllowGuests, &h.CreatedAt, &h.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.HOA{}, ErrNotFound
	}
	if err != nil {
		return model.HOA{}, err
	}
	if len(names) > 0 {
		if err := json.Unmarshal(names, &h.CourtNames); err != nil {
			return model.HOA{}, err
		}
	}
	return h, nil
}

// Create inserts an HOA and returns its ID.  Duplicate slug and
// invitation-code violations map to their own sentinels so handlers can
// report which field collided (the code collision is retryable, the
// slug one is the caller's to fix).
func (r *HOARepo) Create(ctx context.Context, h *model.HOA) error {
	names, err := json.Marshal(h.CourtNames)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO hoas
		 (name, slug, invitation_code, court_count, court_names,
		  default_prime_hours, default_standard_hours,
		  weekday_prime_start, weekday_prime_end, weekend_prime_start, weekend_prime_end,
		  booking_window_days, max_advance_days, allow_guests)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		h.Name, h.Slug, h.InvitationCode, h.CourtCount, names,
		h.DefaultPrimeHours, h.DefaultStdHours,
		h.WeekdayPrimeStart, h.WeekdayPrimeEnd, h.WeekendPrimeStart, h.WeekendPrimeEnd,
		h.BookingWindowDays, h.MaxAdvanceDays, h.AllowGuests)
	if err != nil {
		switch {
		case isDuplicate(err, "uq_hoas_slug"):
			return ErrSlugExists
		case isDuplicate(err, "uq_hoas_invitation_code"):
			return ErrInviteCodeDupe
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID fetches an HOA by id.
func (r *HOARepo) GetByID(ctx context.Context, id uint64) (model.HOA, error) {
	return scanHOA(r.db.QueryRowContext(ctx,
		"SELECT "+hoaColumns+" FROM hoas WHERE id=? LIMIT 1", id))
}

// GetByInvitationCode resolves a registration code to its HOA.
func (r *HOARepo) GetByInvitationCode(ctx context.Context, code string) (model.HOA, error) {
	return scanHOA(r.db.QueryRowContext(ctx,
		"SELECT "+hoaColumns+" FROM hoas WHERE invitation_code=? LIMIT 1", code))
}

// GetBySlug fetches an HOA by slug.
func (r *HOARepo) GetBySlug(ctx context.Context, slug string) (model.HOA, error) {
	return scanHOA(r.db.QueryRowContext(ctx,
		"SELECT "+hoaColumns+" FROM hoas WHERE slug=? LIMIT 1", slug))
}

// List returns every HOA ordered by name (super-admin directory).
func (r *HOARepo) List(ctx context.Context) ([]model.HOA, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+hoaColumns+" FROM hoas ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.HOA
	for rows.Next() {
		var (
			h     model.HOA
			names []byte
		)
		if err := rows.Scan(&h.ID, &h.Name, &h.Slug, &h.InvitationCode, &h.IsActive,
			&h.CourtCount, &names,
			&h.DefaultPrimeHours, &h.DefaultStdHours,
			&h.WeekdayPrimeStart, &h.WeekdayPrimeEnd, &h.WeekendPrimeStart, &h.WeekendPrimeEnd,
			&h.BookingWindowDays, &h.MaxAdvanceDays, &h.AllowGuests, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		if len(names) > 0 {
			if err := json.Unmarshal(names, &h.CourtNames); err != nil {
				return nil, err
			}
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update rewrites the mutable settings of an HOA.  Slug and invitation
// code are immutable after creation; activity is toggled separately.
func (r *HOARepo) Update(ctx context.Context, h *model.HOA) error {
	names, err := json.Marshal(h.CourtNames)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE hoas SET name=?, court_count=?, court_names=?,
		 default_prime_hours=?, default_standard_hours=?,
		 weekday_prime_start=?, weekday_prime_end=?, weekend_prime_start=?, weekend_prime_end=?,
		 booking_window_days=?, max_advance_days=?, allow_guests=?, updated_at=NOW()
		 WHERE id=?`,
		h.Name, h.CourtCount, names,
		h.DefaultPrimeHours, h.DefaultStdHours,
		h.WeekdayPrimeStart, h.WeekdayPrimeEnd, h.WeekendPrimeStart, h.WeekendPrimeEnd,
		h.BookingWindowDays, h.MaxAdvanceDays, h.AllowGuests, h.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive toggles whether the HOA accepts registrations and bookings.
func (r *HOARepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE hoas SET is_active=?, updated_at=NOW() WHERE id=?", active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountMembers returns the number of profiles registered in an HOA.
func (r *HOARepo) CountMembers(ctx context.Context, id uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM profiles WHERE hoa_id=?", id).Scan(&n)
	return n, err
}
