package errors

import "errors"

// Domain errors
var (
	// Scan errors
	ErrTargetUnreachable = errors.New("could not scan URL: target unreachable or blocking automated requests")
	ErrEmptyTarget       = errors.New("target cannot be empty")
	ErrEmptySender       = errors.New("sender address cannot be empty")

	// Breach lookup errors
	ErrEmptyEmail         = errors.New("email is required")
	ErrEmptyPassword      = errors.New("password is required")
	ErrBreachAPIKeyUnset  = errors.New("breach directory API key is not configured")
	ErrBreachAPIFailure   = errors.New("breach API request failed")
	ErrPasswordAPIFailure = errors.New("password range API request failed")

	// Assistant errors
	ErrAssistantKeyUnset = errors.New("remediation assistant API key is not configured")
	ErrAssistantFailure  = errors.New("remediation assistant request failed")
	ErrEmptyFinding      = errors.New("finding message is required")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
)
