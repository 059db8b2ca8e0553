// AngelaMos | 2026
// entity.go

package document

import (
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusFailed:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusSent, StatusFailed:
		return true
	case StatusPending:
		return false
	}
	return false
}

type Document struct {
	ID             string     `db:"id"`
	AccountID      *string    `db:"account_id"`
	Template       string     `db:"template"`
	RecipientEmail string     `db:"recipient_email"`
	OrderNumber    string     `db:"order_number"`
	FullName       string     `db:"full_name"`
	Status         Status     `db:"status"`
	StatusDetail   *string    `db:"status_detail"`
	SentAt         *time.Time `db:"sent_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}
