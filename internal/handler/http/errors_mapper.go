package http

import (
	"errors"
	"net/http"

	"github.com/costhook/costhook/internal/service"
	"github.com/costhook/costhook/internal/store"
	"github.com/costhook/costhook/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusUnprocessableEntity,

	service.ErrTokenIsExpired:    http.StatusUnauthorized,
	service.ErrInvalidToken:      http.StatusUnauthorized,
	service.ErrUnknownSigningKey: http.StatusUnauthorized,

	service.ErrJWKSFetchFailed:       http.StatusInternalServerError,
	service.ErrCredentialsSealFailed: http.StatusInternalServerError,

	validators.ErrEmptyProviderName:   http.StatusUnprocessableEntity,
	validators.ErrProviderNameTooLong: http.StatusUnprocessableEntity,
	validators.ErrInvalidProviderType: http.StatusUnprocessableEntity,
	validators.ErrEmptyCredentials:    http.StatusUnprocessableEntity,
	validators.ErrDisplayNameTooLong:  http.StatusUnprocessableEntity,
	validators.ErrEmptyTimezone:       http.StatusUnprocessableEntity,
	validators.ErrInvalidDateRange:    http.StatusUnprocessableEntity,

	store.ErrProfileNotFound:  http.StatusNotFound,
	store.ErrProviderNotFound: http.StatusNotFound,

	store.ErrProfileAlreadyExists: http.StatusConflict,
	store.ErrCostRecordNotSaved:   http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
