package services

import "errors"

// Business errors returned by the service layer. Callers distinguish them
// with errors.Is; anything else is an infrastructure failure wrapped with
// context.
var (
	// ErrValidation covers bad input rejected before any mutation
	ErrValidation = errors.New("validation failed")

	// ErrInvalidPeriod is returned for an out-of-range month or year
	ErrInvalidPeriod = errors.New("invalid month or year")

	// ErrNoEventsDefined aborts generation when the tenant has no
	// recurring events; nothing is committed
	ErrNoEventsDefined = errors.New("no recurring events defined")

	// ErrNoMembers aborts generation when the tenant has no members to
	// assign; nothing is touched
	ErrNoMembers = errors.New("no members to assign duties")

	// ErrNotFound covers both nonexistent records and records belonging to
	// another tenant. The two are deliberately indistinguishable so that
	// existence never leaks across tenants.
	ErrNotFound = errors.New("not found")

	// ErrSubstituteNotFound is returned when a requested substitute's
	// email does not resolve to a member of the same tenant
	ErrSubstituteNotFound = errors.New("substitute not found in tenant")

	// ErrAlreadyResolved is returned when acting on a substitution request
	// that has already reached a terminal status
	ErrAlreadyResolved = errors.New("substitution request already resolved")

	// ErrAssistant is returned when the event-edit assistant produces
	// malformed output; stored events are never mutated in that case
	ErrAssistant = errors.New("assistant returned invalid edits")
)
