package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/courtside/hoa-court-booking/internal/model"
)

// ProfileRepo persists tenant memberships ('profiles' table).
type ProfileRepo struct{ db *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

const profileColumns = "id,user_id,hoa_id,full_name,phone_number,role,is_active," +
	"prime_hours,standard_hours,last_reset,created_at,updated_at"

func scanProfile(row *sql.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.HOAID, &p.FullName, &p.PhoneNumber, &p.Role,
		&p.IsActive, &p.PrimeHours, &p.StandardHours, &p.LastReset, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	return p, err
}

// CreateTx inserts a profile inside an existing transaction.  The
// (hoa_id, phone_number) unique index maps to ErrPhoneExists, so the
// same number may register in a different HOA but not twice in one.
func (r *ProfileRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Profile) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO profiles
		 (user_id, hoa_id, full_name, phone_number, role, prime_hours, standard_hours, last_reset)
		 VALUES (?,?,?,?,?,?,?,?)`,
		p.UserID, p.HOAID, p.FullName, p.PhoneNumber, p.Role,
		p.PrimeHours, p.StandardHours, p.LastReset)
	if err != nil {
		if isDuplicate(err, "uq_profiles_hoa_phone") {
			return ErrPhoneExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByUserID fetches the profile belonging to a login identity.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uint64) (model.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE user_id=? LIMIT 1", userID))
}

// GetByID fetches a profile by its own id.
func (r *ProfileRepo) GetByID(ctx context.Context, id uint64) (model.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id=? LIMIT 1", id))
}

// ListByHOA returns every profile in an HOA ordered by role privilege
// (admins first) then name.  Used for the member directory.
func (r *ProfileRepo) ListByHOA(ctx context.Context, hoaID uint64) ([]model.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE hoa_id=?
		 ORDER BY FIELD(role,'super_admin','hoa_admin','member'), full_name`, hoaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.HOAID, &p.FullName, &p.PhoneNumber, &p.Role,
			&p.IsActive, &p.PrimeHours, &p.StandardHours, &p.LastReset, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateRole assigns a new role to a profile.
func (r *ProfileRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	return r.exec(ctx, "UPDATE profiles SET role=?, updated_at=NOW() WHERE id=?", role, id)
}

// SetActive toggles the soft-deactivation flag.
func (r *ProfileRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	return r.exec(ctx, "UPDATE profiles SET is_active=?, updated_at=NOW() WHERE id=?", active, id)
}

// UpdateName changes the display name (self-service profile edit).
func (r *ProfileRepo) UpdateName(ctx context.Context, id uint64, fullName string) error {
	return r.exec(ctx, "UPDATE profiles SET full_name=?, updated_at=NOW() WHERE id=?", fullName, id)
}

// ResetHours restores a profile's quota counters and stamps the reset.
func (r *ProfileRepo) ResetHours(ctx context.Context, id uint64, prime, standard uint32, at time.Time) error {
	return r.exec(ctx,
		"UPDATE profiles SET prime_hours=?, standard_hours=?, last_reset=?, updated_at=NOW() WHERE id=?",
		prime, standard, at, id)
}

func (r *ProfileRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
