// SPDX-License-Identifier: Apache-2.0

package validators

import (
	"context"

	"github.com/costhook/costhook/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldName targets the human-readable provider connection name.
	FieldName = "name"

	// FieldType targets the vendor kind of a provider connection.
	FieldType = "type"

	// FieldCredentials targets the plaintext credentials object of a
	// provider create or update payload.
	FieldCredentials = "credentials"

	// FieldDisplayName targets the optional profile display name.
	FieldDisplayName = "display_name"

	// FieldTimezone targets the profile IANA timezone name.
	FieldTimezone = "timezone"

	// FieldDateRange targets the start/end date pair of a cost filter.
	FieldDateRange = "date_range"
)

// maxNameLength bounds provider names and display names, mirroring the
// varchar(100) columns they land in.
const maxNameLength = 100

// RequestValidator implements the Validator interface for all request-body
// and query-filter models: ProviderCreate, ProviderUpdate,
// UserProfileUpdate, and CostFilters.
//
// It supports both value and pointer receivers for every model type and
// allows optional field-level scoping via variadic field name arguments.
type RequestValidator struct {
}

// NewRequestValidator constructs a new RequestValidator and returns it as
// the Validator interface.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ProviderCreate:
		return v.validateProviderCreate(ctx, value, fields...)
	case *models.ProviderCreate:
		return v.validateProviderCreate(ctx, *value, fields...)

	case models.ProviderUpdate:
		return v.validateProviderUpdate(ctx, value, fields...)
	case *models.ProviderUpdate:
		return v.validateProviderUpdate(ctx, *value, fields...)

	case models.UserProfileUpdate:
		return v.validateProfileUpdate(ctx, value, fields...)
	case *models.UserProfileUpdate:
		return v.validateProfileUpdate(ctx, *value, fields...)

	case models.CostFilters:
		return v.validateCostFilters(ctx, value, fields...)
	case *models.CostFilters:
		return v.validateCostFilters(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateProviderCreate validates a full provider registration payload.
//
// Default validated fields: Name, Type, Credentials. All three are required
// on create.
func (v *RequestValidator) validateProviderCreate(_ context.Context, create models.ProviderCreate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldType, FieldCredentials}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if create.Name == "" {
				return ErrEmptyProviderName
			}
			if len(create.Name) > maxNameLength {
				return ErrProviderNameTooLong
			}
		case FieldType:
			if !models.ValidProviderType(create.Type) {
				return ErrInvalidProviderType
			}
		case FieldCredentials:
			if len(create.Credentials) == 0 {
				return ErrEmptyCredentials
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateProviderUpdate validates a partial provider update.
//
// Every field is optional; set fields must still be well-formed. A nil
// credentials map is "no change" and passes, but an explicitly supplied
// empty object is rejected: it would overwrite the stored secret with
// nothing usable.
func (v *RequestValidator) validateProviderUpdate(_ context.Context, update models.ProviderUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldCredentials}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if update.Name != nil {
				if *update.Name == "" {
					return ErrEmptyProviderName
				}
				if len(*update.Name) > maxNameLength {
					return ErrProviderNameTooLong
				}
			}
		case FieldCredentials:
			if update.Credentials != nil && len(update.Credentials) == 0 {
				return ErrEmptyCredentials
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateProfileUpdate validates a partial profile update. Set fields must
// be well-formed; an update with no fields at all is rejected by the
// service layer, not here.
func (v *RequestValidator) validateProfileUpdate(_ context.Context, update models.UserProfileUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldDisplayName, FieldTimezone}
	}

	for _, f := range fields {
		switch f {
		case FieldDisplayName:
			if update.DisplayName != nil && len(*update.DisplayName) > maxNameLength {
				return ErrDisplayNameTooLong
			}
		case FieldTimezone:
			if update.Timezone != nil && *update.Timezone == "" {
				return ErrEmptyTimezone
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCostFilters validates a parsed cost-record filter set. Individual
// filters are already typed by the query parser; the only cross-field rule
// is date-range ordering.
func (v *RequestValidator) validateCostFilters(_ context.Context, filters models.CostFilters, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldDateRange}
	}

	for _, f := range fields {
		switch f {
		case FieldType:
			if filters.ProviderType != nil && !models.ValidProviderType(*filters.ProviderType) {
				return ErrInvalidProviderType
			}
		case FieldDateRange:
			if filters.StartDate != nil && filters.EndDate != nil &&
				filters.StartDate.After(*filters.EndDate) {
				return ErrInvalidDateRange
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
