package models

import "time"

// AccessToken is the persisted record behind a bearer token. The token string
// itself is a signed JWT; ID matches its jti claim. Revocation is tracked here
// rather than in the token, so a logged-out token fails auth even while the
// JWT is still within its expiry window.
type AccessToken struct {
	ID        string    `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Revoked   bool      `db:"revoked" json:"revoked"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}
