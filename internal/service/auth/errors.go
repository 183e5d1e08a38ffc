package auth

import "errors"

// Authentication errors. Callers outside this package report all of them
// to clients identically.
var (
	// ErrInvalidToken indicates the token is malformed, has a bad signature or
	// uses an algorithm other than HS256
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token's iat or nbf lies in the future
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates no bearer token was presented
	ErrMissingToken = errors.New("authentication token is missing")
)
