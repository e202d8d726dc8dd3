package donation

import "errors"

var (
	ErrNotFound            = errors.New("donation not found")
	ErrForbidden           = errors.New("forbidden")
	ErrNotPending          = errors.New("only pending donations can be updated")
	ErrAlreadyClaimed      = errors.New("donation is already assigned to an organization")
	ErrUnassigned          = errors.New("donation is still in the pool and must be claimed first")
	ErrNoOrganization      = errors.New("claiming requires an organization")
	ErrInvalidPickupStatus = errors.New("invalid pickup status")
	ErrPickupNotRequired   = errors.New("donation did not request pickup")
	ErrUnknownOrganization = errors.New("organization does not exist")
	ErrValidation          = errors.New("validation failed")

	// errStaleWrite is returned by the repository when a conditional update
	// matched no row: the donation is gone or its state changed under us.
	errStaleWrite = errors.New("donation state changed concurrently")
)
