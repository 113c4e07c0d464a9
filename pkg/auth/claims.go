package auth

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload carried by every access token.
type Claims struct {
	UserID  string `json:"uid"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"adm,omitempty"`

	jwt.RegisteredClaims
}
