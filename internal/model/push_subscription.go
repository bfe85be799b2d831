package model

import "time"

// PushSubscription stores one browser push endpoint for a user.  A user
// may hold several subscriptions (one per device/browser).  Delivery
// failures are tolerated; stale subscriptions are removed when the
// transport reports them gone.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the subscription.
//  Endpoint  – push service URL (unique per user).
//  P256DH    – client public key for payload encryption.
//  Auth      – client auth secret for payload encryption.
//  CreatedAt – when the subscription was registered.
type PushSubscription struct {
	ID        uint64    // push_subscriptions.id
	UserID    uint64    // push_subscriptions.user_id
	Endpoint  string    // push_subscriptions.endpoint
	P256DH    string    // push_subscriptions.p256dh
	Auth      string    // push_subscriptions.auth
	CreatedAt time.Time // push_subscriptions.created_at
}
