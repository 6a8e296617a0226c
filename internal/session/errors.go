package session

import "errors"

// ErrBusy is returned when a command arrives while a move is animating or
// queued moves are pending.
var ErrBusy = errors.New("session: busy animating")
