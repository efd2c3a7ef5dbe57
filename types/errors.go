package types

import "errors"

var (
	// ErrServiceNotFound means a lookup got no responder within the timeout.
	ErrServiceNotFound = errors.New("airshare service not found")
	// ErrNameAlreadyRegistered means a live record with the same name
	// already answers on the network. Registration fails, never overwrites.
	ErrNameAlreadyRegistered = errors.New("airshare name already registered")
	// ErrRoleMismatch means the resolved service does not identify as the
	// role the operation expects.
	ErrRoleMismatch = errors.New("airshare role mismatch")
	// ErrInvalidInput means required content input is empty or missing.
	// Raised before any network activity.
	ErrInvalidInput = errors.New("invalid content input")
)
