package sessions

import "errors"

var (
	// ErrNotFound indicates the session does not exist or has expired
	ErrNotFound = errors.New("session not found")
)
