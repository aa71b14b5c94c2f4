// Package user implements account registration and login for patients and
// insurers. Passwords are stored as bcrypt hashes and sessions are carried
// by signed tokens.
package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/medclaims/medclaims/internal/platform/auth"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginInput is the payload for authentication.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned by register and login: the account plus a bearer
// token for subsequent requests.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
