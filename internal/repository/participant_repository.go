package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courtside/hoa-court-booking/internal/model"
)

// ParticipantRepo persists booking participants and implements the
// booking service's ParticipantStore interface.
type ParticipantRepo struct{ db *sql.DB }

func NewParticipantRepo(db *sql.DB) *ParticipantRepo { return &ParticipantRepo{db: db} }

// GetByID fetches a participant row by id.
func (r *ParticipantRepo) GetByID(ctx context.Context, id uint64) (model.BookingParticipant, error) {
	var (
		p     model.BookingParticipant
		hours sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id,booking_id,user_id,status,hours_charged FROM booking_participants WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.BookingID, &p.UserID, &p.Status, &hours)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BookingParticipant{}, ErrNotFound
	}
	if err != nil {
		return model.BookingParticipant{}, err
	}
	if hours.Valid {
		p.HoursCharged = &hours.Float64
	}
	return p, nil
}

// ListByBooking returns all participants of a booking, organizer first.
func (r *ParticipantRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.BookingParticipant, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,booking_id,user_id,status,hours_charged FROM booking_participants WHERE booking_id=? ORDER BY id",
		bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BookingParticipant
	for rows.Next() {
		var (
			p     model.BookingParticipant
			hours sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.BookingID, &p.UserID, &p.Status, &hours); err != nil {
			return nil, err
		}
		if hours.Valid {
			p.HoursCharged = &hours.Float64
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateStatus records an invitee's response.  hoursCharged stays NULL
// unless the lifecycle layer passes a value (confirmed bookings only).
func (r *ParticipantRepo) UpdateStatus(ctx context.Context, id uint64, status string, hoursCharged *float64) error {
	var hours sql.NullFloat64
	if hoursCharged != nil {
		hours = sql.NullFloat64{Float64: *hoursCharged, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE booking_participants SET status=?, hours_charged=? WHERE id=?",
		status, hours, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
