// AngelaMos | 2026
// dto.go

package account

import (
	"time"
)

type CreateAccountRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type UpdateSubscriptionRequest struct {
	SubscriptionType      string     `json:"subscription_type"       validate:"required,oneof=none monthly lifetime"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at" validate:"omitempty"`
}

type AccountResponse struct {
	ID                    string     `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	Role                  string     `json:"role"`
	SubscriptionType      string     `json:"subscription_type"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	IsActive              bool       `json:"is_active"`
	DaysRemaining         int        `json:"days_remaining"`
	DocumentsGenerated    int        `json:"documents_generated"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type ToggleResponse struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

type ListAccountsParams struct {
	Page             int    `json:"page"`
	PageSize         int    `json:"page_size"`
	Search           string `json:"search"`
	Role             string `json:"role"`
	SubscriptionType string `json:"subscription_type"`
}

func (p *ListAccountsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListAccountsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToAccountResponse(a *Account, now time.Time) AccountResponse {
	return AccountResponse{
		ID:                    a.ID,
		Email:                 a.Email,
		Name:                  a.Name,
		Role:                  string(a.Role),
		SubscriptionType:      string(a.SubscriptionType),
		SubscriptionExpiresAt: a.SubscriptionExpiresAt,
		IsActive:              a.IsActive,
		DaysRemaining:         DaysRemaining(a, now),
		DocumentsGenerated:    a.DocumentsGenerated,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}

func ToAccountResponseList(accounts []Account, now time.Time) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, ToAccountResponse(&a, now))
	}
	return responses
}
