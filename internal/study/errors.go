package study

import "errors"

// ErrSessionNotFound is returned when completing a session that does not exist
var ErrSessionNotFound = errors.New("study session not found")
