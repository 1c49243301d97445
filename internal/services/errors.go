package services

import (
	"errors"
	"fmt"
)

// Invariant violations surfaced as distinct errors so handlers can map
// each one to a specific user-facing message.
var (
	ErrClubAlreadyHasPlayer = errors.New("club already has this player associated")
	ErrPlayerAlreadyHasClub = errors.New("player already has a club associated")
	ErrAdminAlreadyHasClub  = errors.New("club administrator already has a club assigned")
	ErrPlayerAlreadyInEvent = errors.New("player is already registered in this event")
	ErrMaximumParticipants  = errors.New("event has reached its maximum number of participants")
	ErrBadCredentials       = errors.New("invalid username or password")
	ErrTokenRevoked         = errors.New("token has been revoked")
)

// NotFoundError reports that a referenced entity does not exist,
// carrying the identifier that failed to resolve.
type NotFoundError struct {
	Resource string
	Key      any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Resource, e.Key)
}

// NewNotFound builds a NotFoundError for the given resource and key.
func NewNotFound(resource string, key any) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// RoleRetrievalError signals a broken deployment: a default role the
// resolver depends on is missing from the role directory.
type RoleRetrievalError struct {
	Msg   string
	Cause error
}

func (e *RoleRetrievalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *RoleRetrievalError) Unwrap() error { return e.Cause }

// ClubDeletingError wraps a failure while detaching a club's relations
// before deletion.
type ClubDeletingError struct {
	Cause error
}

func (e *ClubDeletingError) Error() string {
	return fmt.Sprintf("error deleting club: %v", e.Cause)
}

func (e *ClubDeletingError) Unwrap() error { return e.Cause }

// IsConflict reports whether err is one of the invariant violations
// that map to an HTTP conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrClubAlreadyHasPlayer) ||
		errors.Is(err, ErrPlayerAlreadyHasClub) ||
		errors.Is(err, ErrAdminAlreadyHasClub) ||
		errors.Is(err, ErrPlayerAlreadyInEvent) ||
		errors.Is(err, ErrMaximumParticipants)
}
