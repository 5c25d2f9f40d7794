package models

import "time"

// Session is a server-side login session. The client only ever sees a
// signed token referencing the session id, so deleting the row is enough
// to invalidate the cookie.
type Session struct {
	ID        string
	UserID    int
	CreatedAt time.Time
	ExpiresAt time.Time
}
