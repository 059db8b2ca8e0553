// AngelaMos | 2026
// entity.go

package account

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

type SubscriptionType string

const (
	SubscriptionNone     SubscriptionType = "none"
	SubscriptionMonthly  SubscriptionType = "monthly"
	SubscriptionLifetime SubscriptionType = "lifetime"
)

func (s SubscriptionType) Valid() bool {
	switch s {
	case SubscriptionNone, SubscriptionMonthly, SubscriptionLifetime:
		return true
	}
	return false
}

type Account struct {
	ID                    string           `db:"id"`
	Email                 string           `db:"email"`
	PasswordHash          *string          `db:"password_hash"`
	Name                  string           `db:"name"`
	Role                  Role             `db:"role"`
	SubscriptionType      SubscriptionType `db:"subscription_type"`
	SubscriptionExpiresAt *time.Time       `db:"subscription_expires_at"`
	IsActive              bool             `db:"is_active"`
	ExternalID            *string          `db:"external_id"`
	DocumentsGenerated    int              `db:"documents_generated"`
	CreatedAt             time.Time        `db:"created_at"`
	UpdatedAt             time.Time        `db:"updated_at"`
	DeletedAt             *time.Time       `db:"deleted_at"`
}

func (a *Account) IsDeleted() bool {
	return a.DeletedAt != nil
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
