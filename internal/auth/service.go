// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/docmailer/internal/core"
	"github.com/carterperez-dev/docmailer/internal/identity"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidExternalAuth = errors.New("external identity verification failed")
)

type AccountInfo struct {
	ID                 string
	Email              string
	Name               string
	PasswordHash       *string
	Role               string
	SubscriptionType   string
	SubscriptionActive bool
	DaysRemaining      int
	DocumentsGenerated int
	CreatedAt          time.Time
}

type AccountProvider interface {
	GetByEmail(ctx context.Context, email string) (*AccountInfo, error)
	GetByID(ctx context.Context, id string) (*AccountInfo, error)
	GetByExternalID(
		ctx context.Context,
		externalID string,
	) (*AccountInfo, error)
	CreateExternal(
		ctx context.Context,
		email, name, externalID string,
	) (*AccountInfo, error)
	LinkExternalID(ctx context.Context, accountID, externalID string) error
	UpdatePassword(ctx context.Context, accountID, passwordHash string) error
}

type IdentityVerifier interface {
	UserInfo(ctx context.Context, accessToken string) identity.Result
}

type Service struct {
	jwt      *JWTManager
	accounts AccountProvider
	identity IdentityVerifier
}

func NewService(
	jwt *JWTManager,
	accounts AccountProvider,
	identityVerifier IdentityVerifier,
) *Service {
	return &Service{
		jwt:      jwt,
		accounts: accounts,
		identity: identityVerifier,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	acct, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		acct.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.accounts.UpdatePassword(ctx, acct.ID, newHash)
	}

	return s.createAuthResponse(acct)
}

func (s *Service) ExternalLogin(
	ctx context.Context,
	req ExternalLoginRequest,
) (*AuthResponse, error) {
	info := s.identity.UserInfo(ctx, req.AccessToken)
	if !info.Available || info.Subject == "" || info.Email == "" {
		return nil, ErrInvalidExternalAuth
	}

	acct, err := s.accounts.GetByExternalID(ctx, info.Subject)
	if err == nil {
		return s.createAuthResponse(acct)
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("get account by external id: %w", err)
	}

	acct, err = s.accounts.GetByEmail(ctx, info.Email)
	if err == nil {
		if linkErr := s.accounts.LinkExternalID(ctx, acct.ID, info.Subject); linkErr != nil {
			return nil, fmt.Errorf("link external id: %w", linkErr)
		}
		return s.createAuthResponse(acct)
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("get account by email: %w", err)
	}

	acct, err = s.accounts.CreateExternal(
		ctx,
		info.Email,
		info.Name,
		info.Subject,
	)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return s.createAuthResponse(acct)
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	accountID string,
) (*AccountResponse, error) {
	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	resp := toAccountResponse(acct)
	return &resp, nil
}

func (s *Service) createAuthResponse(acct *AccountInfo) (*AuthResponse, error) {
	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		AccountID: acct.ID,
		Role:      acct.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	ttl := s.jwt.AccessTokenTTL()

	return &AuthResponse{
		User: toAccountResponse(acct),
		Tokens: TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int(ttl / time.Second),
			ExpiresAt:   time.Now().Add(ttl),
		},
	}, nil
}

func toAccountResponse(acct *AccountInfo) AccountResponse {
	return AccountResponse{
		ID:                 acct.ID,
		Email:              acct.Email,
		Name:               acct.Name,
		Role:               acct.Role,
		SubscriptionType:   acct.SubscriptionType,
		SubscriptionActive: acct.SubscriptionActive,
		DaysRemaining:      acct.DaysRemaining,
		DocumentsGenerated: acct.DocumentsGenerated,
		CreatedAt:          acct.CreatedAt,
	}
}
