package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	Role              Role       `json:"role"`
	PasswordHash      string     `json:"-"`
	PasswordChangedAt time.Time  `json:"-"`
	ResetTokenHash    *string    `json:"-"`
	ResetExpiresAt    *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ChangedPasswordAfter reports whether the user's password was changed
// after the given token issue time. Comparison is at second granularity
// because JWT iat claims carry unix seconds.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	return u.PasswordChangedAt.Truncate(time.Second).After(issuedAt)
}
