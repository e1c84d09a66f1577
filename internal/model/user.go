package model

import (
	"strings"

	"github.com/deppfellow/lightbnb/internal/validation"
)

// User is a row of the users table. Password holds the stored hash and
// never leaves the process as JSON.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// NewUser is the payload accepted by addUser.
type NewUser struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

func (u *NewUser) Validate() error {
	return validation.Struct(u)
}

// NormalizeEmail lower-cases an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
