package domain

import (
	"errors"

	"secretsanta/internal/santa"
)

// Sentinel errors shared by services, repositories and handlers.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// ErrGroupFinalized is returned when a change is attempted on a group whose assignments were drawn.
	ErrGroupFinalized = errors.New("group is already finalized")
	// ErrGroupNotFinalized is returned when an operation needs drawn assignments but there are none yet.
	ErrGroupNotFinalized = errors.New("group is not finalized yet")
	// ErrDuplicateParticipant is returned when an email is already registered in the group.
	ErrDuplicateParticipant = errors.New("a participant with this email already exists in this group")
	// ErrRosterChanged is returned when participants were added or removed while a draw was being stored.
	ErrRosterChanged = errors.New("participants changed during the draw")
	// ErrInvalidAssignments is returned when a generated or stored assignment set fails validation.
	ErrInvalidAssignments = errors.New("invalid assignments")

	// ErrNotEnoughParticipants is the engine's roster-size error, re-exported for callers.
	ErrNotEnoughParticipants = santa.ErrNotEnoughParticipants
)
