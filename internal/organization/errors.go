package organization

import "errors"

var (
	ErrNotFound      = errors.New("organization not found")
	ErrMissingName   = errors.New("organization name is required")
	ErrMissingOwner  = errors.New("owner admin id is required")
	ErrOwnerConflict = errors.New("admin already owns an organization")
)
