package domain

import "errors"

// Profile errors
var (
	ErrProfileNotFound        = errors.New("profile not found")
	ErrProfileAlreadyExists   = errors.New("profile already exists")
	ErrInvalidPreferenceRange = errors.New("invalid preference range: min must not exceed max")
	ErrUnknownProfileField    = errors.New("unknown profile field")
	ErrImmutableProfileField  = errors.New("profile field is immutable")
	ErrInvalidFieldValue      = errors.New("invalid profile field value")
	ErrEmptyProfilePatch      = errors.New("no fields to update")
)

// User and auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotVerified    = errors.New("user not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrOTPNotFound        = errors.New("otp not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidInput       = errors.New("invalid input")
)
