// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type ExternalLoginRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AccountResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               string    `json:"role"`
	SubscriptionType   string    `json:"subscription_type"`
	SubscriptionActive bool      `json:"subscription_active"`
	DaysRemaining      int       `json:"days_remaining"`
	DocumentsGenerated int       `json:"documents_generated"`
	CreatedAt          time.Time `json:"created_at"`
}

type AuthResponse struct {
	User   AccountResponse `json:"user"`
	Tokens TokenResponse   `json:"tokens"`
}
