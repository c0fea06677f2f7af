package auth

import "errors"

// ErrInvalidCredentials covers wrong password and unknown email alike, so the
// login response does not reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailInUse is returned when registering an address that already has an
// account.
var ErrEmailInUse = errors.New("an account with this email already exists")

// ErrWeakPassword is returned when the password fails the complexity check.
var ErrWeakPassword = errors.New("password must be at least 6 characters")

// ErrCodeNotVerified is returned when finalization is attempted before the
// emailed code was verified.
var ErrCodeNotVerified = errors.New("verification code not verified")

// ErrRegistrationNotFound is returned when a registration session id is
// unknown or has expired.
var ErrRegistrationNotFound = errors.New("registration session not found or expired")

// CodePendingError signals that registration was initiated and the emailed
// code is now pending verification.
type CodePendingError struct {
	TempID string
}

func (e CodePendingError) Error() string {
	return "verification code pending; tempID: " + e.TempID
}
