package repository

import (
	"context"
	"database/sql"

	"github.com/courtside/hoa-court-booking/internal/model"
)

// PushRepo persists browser push subscriptions.
type PushRepo struct{ db *sql.DB }

func NewPushRepo(db *sql.DB) *PushRepo { return &PushRepo{db: db} }

// Save upserts a subscription.  Re-registering the same endpoint
// refreshes its keys instead of duplicating the row.
func (r *PushRepo) Save(ctx context.Context, s *model.PushSubscription) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth)
		 VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE p256dh=VALUES(p256dh), auth=VALUES(auth)`,
		s.UserID, s.Endpoint, s.P256DH, s.Auth)
	return err
}

// ListByUser returns every subscription registered for a user.
func (r *PushRepo) ListByUser(ctx context.Context, userID uint64) ([]model.PushSubscription, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,user_id,endpoint,p256dh,auth,created_at FROM push_subscriptions WHERE user_id=?",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PushSubscription
	for rows.Next() {
		var s model.PushSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256DH, &s.Auth, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteByEndpoint removes a subscription (unsubscribe, or a transport
// reporting the endpoint gone).
func (r *PushRepo) DeleteByEndpoint(ctx context.Context, userID uint64, endpoint string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM push_subscriptions WHERE user_id=? AND endpoint=?",
		userID, endpoint)
	return err
}
