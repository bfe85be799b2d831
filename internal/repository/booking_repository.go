package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/courtside/hoa-court-booking/internal/model"
)

// BookingRepo persists bookings and implements the booking service's
// Store interface.  The booking row and its participant batch are
// written in one transaction so a failed batch never leaves an
// orphaned pending booking behind.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = "id,hoa_id,organizer_id,start_time,end_time,courts,status," +
	"total_players,guest_count,min_members,is_prime_time,expires_at,created_at,updated_at"

// CreateWithParticipants inserts the booking and all participant rows
// atomically.  On any failure the transaction rolls back and nothing is
// persisted.
func (r *BookingRepo) CreateWithParticipants(ctx context.Context, b *model.Booking, parts []model.BookingParticipant) error {
	courts, err := json.Marshal(b.Courts)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings
		 (hoa_id, organizer_id, start_time, end_time, courts, status,
		  total_players, guest_count, min_members, is_prime_time, expires_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.HOAID, b.OrganizerID, b.StartTime, b.EndTime, courts, b.Status,
		b.TotalPlayers, b.GuestCount, b.MinMembers, b.IsPrimeTime, b.ExpiresAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	for i := range parts {
		parts[i].BookingID = b.ID
		pres, err := tx.ExecContext(ctx,
			"INSERT INTO booking_participants (booking_id, user_id, status) VALUES (?,?,?)",
			parts[i].BookingID, parts[i].UserID, parts[i].Status)
		if err != nil {
			return err
		}
		pid, err := pres.LastInsertId()
		if err != nil {
			return err
		}
		parts[i].ID = uint64(pid)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func scanBooking(scan func(dest ...any) error) (model.Booking, error) {
	var (
		b      model.Booking
		courts []byte
	)
	err := scan(&b.ID, &b.HOAID, &b.OrganizerID, &b.StartTime, &b.EndTime, &courts, &b.Status,
		&b.TotalPlayers, &b.GuestCount, &b.MinMembers, &b.IsPrimeTime, &b.ExpiresAt,
		&b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	if len(courts) > 0 {
		if err := json.Unmarshal(courts, &b.Courts); err != nil {
			return model.Booking{}, err
		}
	}
	return b, nil
}

// GetByID fetches a booking by id.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id)
	return scanBooking(row.Scan)
}

// ListByOrganizer returns a user's bookings, newest first.
func (r *BookingRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE organizer_id=? ORDER BY start_time DESC",
		organizerID)
}

// ListByUser returns every booking the user participates in (organizer
// or invitee), newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE id IN (SELECT booking_id FROM booking_participants WHERE user_id=?)
		 ORDER BY start_time DESC`,
		userID)
}

// ListByHOA returns an HOA's bookings, newest first (admin view).
func (r *BookingRepo) ListByHOA(ctx context.Context, hoaID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE hoa_id=? ORDER BY start_time DESC",
		hoaID)
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus moves a booking from one status to another.  The guard
// on the current status makes the transition atomic: a concurrent
// confirm/cancel loses and sees ErrNotFound.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status=?, updated_at=NOW() WHERE id=? AND status=?",
		to, id, from)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpiredPending removes pending bookings whose expiry passed the
// cutoff.  Participant rows go with them via the cascading foreign key.
func (r *BookingRepo) DeleteExpiredPending(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM bookings WHERE status=? AND expires_at<?",
		model.BookingStatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
