package auth

import "github.com/flagsapp/flags-backend/internal/users"

// RegisterInput is the decoded register payload.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

// LoginInput is the decoded login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionDTO is returned by both register and login.
type SessionDTO struct {
	Token string        `json:"token"`
	User  users.UserDTO `json:"user"`
}
