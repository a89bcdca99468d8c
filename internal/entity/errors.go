package entity

import "errors"

// Domain errors
var (
	// Auth errors
	ErrOrganizationNotFound = errors.New("organization not found")

	// Generation errors
	ErrInvalidQueryShape = errors.New("generated output is not a SELECT query")

	// Execution errors
	ErrExecFunctionUnavailable = errors.New("generic query execution function unavailable")
	ErrUnknownIntentTable      = errors.New("intent references a table outside the queryable set")
)
