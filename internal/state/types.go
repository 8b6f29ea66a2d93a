// Package state provides advisory filesystem locks for repository
// working copies. Invocations sharing an output root serialize fetch and
// checkout work on the same clone by holding the directory's lock.
package state

import "errors"

// ErrLocked indicates that a repository directory is locked by another process.
var ErrLocked = errors.New("state: locked")

// Logger captures the structured logging surface the locker relies on.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}
