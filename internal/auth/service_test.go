// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	"github.com/carterperez-dev/docmailer/internal/core"
	"github.com/carterperez-dev/docmailer/internal/identity"
)

type fakeAccounts struct {
	byID       map[string]*AccountInfo
	byEmail    map[string]*AccountInfo
	byExternal map[string]*AccountInfo

	linkedExternal  map[string]string
	updatedPassword map[string]string
	created         *AccountInfo
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		byID:            map[string]*AccountInfo{},
		byEmail:         map[string]*AccountInfo{},
		byExternal:      map[string]*AccountInfo{},
		linkedExternal:  map[string]string{},
		updatedPassword: map[string]string{},
	}
}

func (f *fakeAccounts) add(acct *AccountInfo) {
	f.byID[acct.ID] = acct
	f.byEmail[acct.Email] = acct
}

func (f *fakeAccounts) GetByID(
	_ context.Context,
	id string,
) (*AccountInfo, error) {
	if acct, ok := f.byID[id]; ok {
		return acct, nil
	}
	return nil, fmt.Errorf("get account: %w", core.ErrNotFound)
}

func (f *fakeAccounts) GetByEmail(
	_ context.Context,
	email string,
) (*AccountInfo, error) {
	if acct, ok := f.byEmail[email]; ok {
		return acct, nil
	}
	return nil, fmt.Errorf("get account by email: %w", core.ErrNotFound)
}

func (f *fakeAccounts) GetByExternalID(
	_ context.Context,
	externalID string,
) (*AccountInfo, error) {
	if acct, ok := f.byExternal[externalID]; ok {
		return acct, nil
	}
	return nil, fmt.Errorf("get account by external id: %w", core.ErrNotFound)
}

func (f *fakeAccounts) CreateExternal(
	_ context.Context,
	email, name, externalID string,
) (*AccountInfo, error) {
	acct := &AccountInfo{
		ID:    "created-" + externalID,
		Email: email,
		Name:  name,
		Role:  "user",
	}
	f.created = acct
	f.add(acct)
	f.byExternal[externalID] = acct
	return acct, nil
}

func (f *fakeAccounts) LinkExternalID(
	_ context.Context,
	accountID, externalID string,
) error {
	f.linkedExternal[accountID] = externalID
	return nil
}

func (f *fakeAccounts) UpdatePassword(
	_ context.Context,
	accountID, passwordHash string,
) error {
	f.updatedPassword[accountID] = passwordHash
	return nil
}

type fakeIdentity struct {
	result identity.Result
}

func (f *fakeIdentity) UserInfo(
	_ context.Context,
	_ string,
) identity.Result {
	return f.result
}

func newTestAuthService(
	t *testing.T,
	accounts *fakeAccounts,
	verifier IdentityVerifier,
) *Service {
	t.Helper()
	if verifier == nil {
		verifier = &fakeIdentity{}
	}
	return NewService(newTestManager(t, testJWTConfig()), accounts, verifier)
}

func passwordAccount(t *testing.T, id, email, password string) *AccountInfo {
	t.Helper()
	hash, err := core.HashPassword(password)
	require.NoError(t, err)
	return &AccountInfo{
		ID:           id,
		Email:        email,
		Name:         "Ada Lovelace",
		PasswordHash: &hash,
		Role:         "user",
	}
}

// legacyPasswordHash encodes with a higher time cost than the current
// parameters so verification triggers an upgrade.
func legacyPasswordHash(t *testing.T, password string) string {
	t.Helper()

	salt := make([]byte, 16)
	_, err := rand.Read(salt)
	require.NoError(t, err)

	hash := argon2.IDKey([]byte(password), salt, 2, 64*1024, 4, 32)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		64*1024,
		2,
		4,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

func TestLoginSuccess(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.add(passwordAccount(t, "acct-1", "ada@example.com", "s3cret-password"))
	svc := newTestAuthService(t, accounts, nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, "acct-1", resp.User.ID)
	assert.Equal(t, "Bearer", resp.Tokens.TokenType)
	assert.Equal(t, int(time.Hour/time.Second), resp.Tokens.ExpiresIn)

	claims, err := newTestManager(t, testJWTConfig()).VerifyAccessToken(
		context.Background(),
		resp.Tokens.AccessToken,
	)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.Equal(t, "user", claims.Role)

	assert.Empty(t, accounts.updatedPassword, "current hash must not be rehashed")
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(t, newFakeAccounts(), nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.add(passwordAccount(t, "acct-1", "ada@example.com", "s3cret-password"))
	svc := newTestAuthService(t, accounts, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, accounts.updatedPassword)
}

func TestLoginRehashUpgrade(t *testing.T) {
	legacy := legacyPasswordHash(t, "s3cret-password")
	accounts := newFakeAccounts()
	accounts.add(&AccountInfo{
		ID:           "acct-1",
		Email:        "ada@example.com",
		PasswordHash: &legacy,
		Role:         "user",
	})
	svc := newTestAuthService(t, accounts, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ada@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	newHash, ok := accounts.updatedPassword["acct-1"]
	require.True(t, ok, "legacy hash must be upgraded on successful login")
	assert.NotEqual(t, legacy, newHash)

	valid, err := core.VerifyPassword("s3cret-password", newHash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestExternalLoginRejectedToken(t *testing.T) {
	svc := newTestAuthService(t, newFakeAccounts(), &fakeIdentity{})

	_, err := svc.ExternalLogin(context.Background(), ExternalLoginRequest{
		AccessToken: "bad",
	})
	assert.ErrorIs(t, err, ErrInvalidExternalAuth)
}

func TestExternalLoginExistingExternalID(t *testing.T) {
	accounts := newFakeAccounts()
	acct := passwordAccount(t, "acct-1", "ada@example.com", "x")
	accounts.add(acct)
	accounts.byExternal["google-123"] = acct

	svc := newTestAuthService(t, accounts, &fakeIdentity{result: identity.Result{
		Available: true,
		Subject:   "google-123",
		Email:     "ada@example.com",
		Name:      "Ada Lovelace",
	}})

	resp, err := svc.ExternalLogin(context.Background(), ExternalLoginRequest{
		AccessToken: "tok",
	})
	require.NoError(t, err)

	assert.Equal(t, "acct-1", resp.User.ID)
	assert.Nil(t, accounts.created)
	assert.Empty(t, accounts.linkedExternal)
}

func TestExternalLoginLinksByEmail(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.add(passwordAccount(t, "acct-1", "ada@example.com", "x"))

	svc := newTestAuthService(t, accounts, &fakeIdentity{result: identity.Result{
		Available: true,
		Subject:   "google-123",
		Email:     "ada@example.com",
		Name:      "Ada Lovelace",
	}})

	resp, err := svc.ExternalLogin(context.Background(), ExternalLoginRequest{
		AccessToken: "tok",
	})
	require.NoError(t, err)

	assert.Equal(t, "acct-1", resp.User.ID)
	assert.Equal(t, "google-123", accounts.linkedExternal["acct-1"])
	assert.Nil(t, accounts.created)
}

func TestExternalLoginCreatesAccount(t *testing.T) {
	accounts := newFakeAccounts()

	svc := newTestAuthService(t, accounts, &fakeIdentity{result: identity.Result{
		Available: true,
		Subject:   "google-123",
		Email:     "new@example.com",
		Name:      "New User",
	}})

	resp, err := svc.ExternalLogin(context.Background(), ExternalLoginRequest{
		AccessToken: "tok",
	})
	require.NoError(t, err)

	require.NotNil(t, accounts.created)
	assert.Equal(t, "new@example.com", accounts.created.Email)
	assert.Equal(t, "New User", accounts.created.Name)
	assert.Equal(t, accounts.created.ID, resp.User.ID)
	assert.Empty(t, accounts.linkedExternal)
}
