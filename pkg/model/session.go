package model

import "time"

// Session binds a client to an authenticated identity. Stored server-side
// (Redis) under the session ID; the cookie only carries a sealed session ID.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
