// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/docmailer/internal/auth"
	"github.com/carterperez-dev/docmailer/internal/core"
)

const monthlyDuration = 30 * 24 * time.Hour

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.AccountInfo, error) {
	acct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toAccountInfo(acct), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.AccountInfo, error) {
	acct, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toAccountInfo(acct), nil
}

func (s *Service) GetByExternalID(
	ctx context.Context,
	externalID string,
) (*auth.AccountInfo, error) {
	acct, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return toAccountInfo(acct), nil
}

func (s *Service) CreateExternal(
	ctx context.Context,
	email, name, externalID string,
) (*auth.AccountInfo, error) {
	acct := &Account{
		ID:               uuid.New().String(),
		Email:            strings.ToLower(email),
		Name:             name,
		Role:             RoleUser,
		SubscriptionType: SubscriptionNone,
		IsActive:         true,
		ExternalID:       &externalID,
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		return nil, err
	}

	return toAccountInfo(acct), nil
}

func (s *Service) LinkExternalID(
	ctx context.Context,
	accountID, externalID string,
) error {
	return s.repo.LinkExternalID(ctx, accountID, externalID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	accountID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, accountID, passwordHash)
}

// CheckAccess evaluates whether an account may generate documents right now.
func (s *Service) CheckAccess(
	ctx context.Context,
	accountID string,
) (Decision, error) {
	acct, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return Decision{}, err
	}

	return Decide(acct, time.Now()), nil
}

func (s *Service) CreateAccount(
	ctx context.Context,
	req CreateAccountRequest,
) (*Account, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := Role(req.Role)
	if req.Role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf(
			"create account: invalid role %q: %w",
			req.Role,
			core.ErrInvalidInput,
		)
	}

	acct := &Account{
		ID:               uuid.New().String(),
		Email:            strings.ToLower(req.Email),
		PasswordHash:     &passwordHash,
		Name:             req.Name,
		Role:             role,
		SubscriptionType: SubscriptionNone,
		IsActive:         true,
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		return nil, err
	}

	return acct, nil
}

func (s *Service) GetAccount(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAccounts(
	ctx context.Context,
	params ListAccountsParams,
) ([]Account, int, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) UpdateSubscription(
	ctx context.Context,
	id string,
	req UpdateSubscriptionRequest,
) (*Account, error) {
	subType := SubscriptionType(req.SubscriptionType)
	if !subType.Valid() {
		return nil, fmt.Errorf(
			"update subscription: invalid type %q: %w",
			req.SubscriptionType,
			core.ErrInvalidInput,
		)
	}

	var expiresAt *time.Time
	switch subType {
	case SubscriptionMonthly:
		expiresAt = req.SubscriptionExpiresAt
		if expiresAt == nil {
			exp := time.Now().Add(monthlyDuration)
			expiresAt = &exp
		}
	case SubscriptionNone, SubscriptionLifetime:
		// no expiry carried for these
	}

	if err := s.repo.UpdateSubscription(ctx, id, subType, expiresAt); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) ToggleActive(
	ctx context.Context,
	requesterID, targetID string,
) (*Account, error) {
	if requesterID == targetID {
		return nil, fmt.Errorf(
			"cannot change own active state: %w",
			core.ErrForbidden,
		)
	}

	acct, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetActive(ctx, targetID, !acct.IsActive); err != nil {
		return nil, err
	}

	acct.IsActive = !acct.IsActive
	return acct, nil
}

func (s *Service) CanDeleteAccount(
	ctx context.Context,
	requesterID, targetID string,
) error {
	if requesterID == targetID {
		return fmt.Errorf("cannot delete own account: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return fmt.Errorf("cannot delete admin accounts: %w", core.ErrForbidden)
	}

	return nil
}

func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *Service) Counts(ctx context.Context) (*Counts, error) {
	return s.repo.Counts(ctx)
}

func toAccountInfo(a *Account) *auth.AccountInfo {
	now := time.Now()
	return &auth.AccountInfo{
		ID:                 a.ID,
		Email:              a.Email,
		Name:               a.Name,
		PasswordHash:       a.PasswordHash,
		Role:               string(a.Role),
		SubscriptionType:   string(a.SubscriptionType),
		SubscriptionActive: Decide(a, now).Allowed,
		DaysRemaining:      DaysRemaining(a, now),
		DocumentsGenerated: a.DocumentsGenerated,
		CreatedAt:          a.CreatedAt,
	}
}

var _ auth.AccountProvider = (*Service)(nil)
