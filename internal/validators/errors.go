package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyProviderName   = errors.New("provider name is required")
	ErrProviderNameTooLong = errors.New("provider name exceeds 100 characters")
	ErrInvalidProviderType = errors.New("invalid provider type")
	ErrEmptyCredentials    = errors.New("credentials object is required")

	ErrDisplayNameTooLong = errors.New("display name exceeds 100 characters")
	ErrEmptyTimezone      = errors.New("timezone cannot be empty")

	ErrInvalidDateRange = errors.New("start date is after end date")
)
