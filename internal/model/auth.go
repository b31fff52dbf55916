package model

import "time"

type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// TokenPayload is the transient identity encrypted into a token's data
// field. It exists only between credential validation and encryption and
// is never persisted.
type TokenPayload struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
}

// VerifiedIdentity is what the downstream guard attaches to the request
// context after a token passes verification. Request-scoped.
type VerifiedIdentity struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ErrorResponse struct {
	Error string `json:"error"`
}
