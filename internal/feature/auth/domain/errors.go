// Package domain defines domain-level errors for users, shared by every
// feature that resolves a user id.
package domain

import "pokecard_backend/internal/shared/apperr"

var (
	// ErrUserNotFound indicates that no user exists for the given id or username.
	ErrUserNotFound = apperr.New(apperr.NotFound, "user not found")

	// ErrUsernameTaken is returned during registration when the username is already in use.
	ErrUsernameTaken = apperr.New(apperr.Validation, "username already taken")

	// ErrInvalidCredentials is returned for any failed login, whether the
	// username exists or not.
	ErrInvalidCredentials = apperr.New(apperr.InvalidCredential, "invalid username or password")

	// ErrInvalidUsername is returned when the username is empty after trimming.
	ErrInvalidUsername = apperr.New(apperr.Validation, "username is required")

	// ErrWeakPassword is returned when the password is shorter than the configured minimum.
	ErrWeakPassword = apperr.New(apperr.Validation, "password is too short")

	// ErrPasswordTooLong is returned when the password exceeds the accepted size.
	ErrPasswordTooLong = apperr.New(apperr.Validation, "password is too long")
)
