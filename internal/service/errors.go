package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpired = errors.New("token is expired")
	ErrInvalidToken   = errors.New("token is invalid")

	ErrUnknownSigningKey = errors.New("no signing key matches the token key id")
	ErrJWKSFetchFailed   = errors.New("fetching JWKS document failed")

	ErrCredentialsSealFailed = errors.New("sealing provider credentials failed")
)
