package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdentifierType tells which contact channel a user signs in with.
type IdentifierType string

const (
	IdentifierEmail IdentifierType = "EMAIL"
	IdentifierPhone IdentifierType = "PHONE"
)

func (t IdentifierType) IsValid() bool {
	return t == IdentifierEmail || t == IdentifierPhone
}

type User struct {
	ID              uuid.UUID `json:"userId" db:"user_id"`
	Email           *string   `json:"email,omitempty" db:"email"`
	Phone           *string   `json:"phone,omitempty" db:"phone"`
	PasswordHash    *string   `json:"-" db:"password_hash"`
	IsEmailVerified bool      `json:"isEmailVerified" db:"is_email_verified"`
	IsPhoneVerified bool      `json:"isPhoneVerified" db:"is_phone_verified"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// IsVerified reports whether the given channel has been confirmed with an OTP.
func (u *User) IsVerified(t IdentifierType) bool {
	if t == IdentifierPhone {
		return u.IsPhoneVerified
	}
	return u.IsEmailVerified
}
