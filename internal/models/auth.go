package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserInfo describes the authenticated user in login responses. The teacher
// profile is present only for teacher accounts.
type UserInfo struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    UserRole `json:"role"`
	Teacher *Teacher `json:"teacher,omitempty"`
}

// LoginResponse returns the issued token and the identity snapshot.
type LoginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	User    UserInfo `json:"user"`
	Token   string   `json:"token"`
}

// JWTClaims is the token payload: a denormalized snapshot of the identity at
// issuance time. Profile changes after issuance are not reflected until the
// user authenticates again.
type JWTClaims struct {
	UserID  int64    `json:"user_id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    UserRole `json:"role"`
	Teacher *Teacher `json:"teacher,omitempty"`
	jwt.RegisteredClaims
}
