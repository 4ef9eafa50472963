// Package storeerr defines the failure taxonomy of the remote store seam.
//
// Every store operation fails with exactly one of three variants:
//   - *PermissionError: the store's authorization rules rejected the call.
//   - ErrNotFound: the target document does not exist.
//   - *TransientError: network or serialization trouble; safe to retry.
//
// Callers are expected to handle the variants exhaustively instead of
// matching on error strings.
package storeerr

import (
	"errors"
	"fmt"
)

// Operation names the store call that failed.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpListen Operation = "listen"
)

// ErrNotFound indicates the target document no longer exists.
var ErrNotFound = errors.New("document not found")

// PermissionError is raised when the store denies an operation. It carries
// enough context (operation, path, attempted payload) for the permission
// error channel to present a debuggable message.
type PermissionError struct {
	Operation Operation
	Path      string
	Resource  any
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied on operation %q for path %q", e.Operation, e.Path)
}

// TransientError wraps connectivity and serialization failures.
type TransientError struct {
	Message string
	Err     error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// AsPermission extracts the permission variant, if any.
func AsPermission(err error) (*PermissionError, bool) {
	var perr *PermissionError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsTransient(err error) bool {
	var terr *TransientError
	return errors.As(err, &terr)
}
