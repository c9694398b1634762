package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest carries the profile tuple delivered by the external
// identity provider after a successful sign-in. The core does not
// validate the provider's token; it only accepts the completed profile.
type LoginRequest struct {
	ID      string `json:"id" binding:"required" validate:"required"`
	Email   string `json:"email" binding:"required,email" validate:"required,email"`
	Name    string `json:"name" binding:"required" validate:"required"`
	Picture string `json:"picture" validate:"omitempty,url"`
}

// LoginResponse returns the session token and the stored profile.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   int64        `json:"expiresAt"`
	User        *UserProfile `json:"user"`
}

// JWTClaims are the access-token claims for the single local user.
type JWTClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}
