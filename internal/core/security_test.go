// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	other, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salt must differ between hashes")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	valid, err := VerifyPassword("s3cret-password", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyPasswordInvalidFormat(t *testing.T) {
	_, err := VerifyPassword("anything", "not-a-phc-string")
	require.Error(t, err)

	_, err = VerifyPassword("anything", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	require.Error(t, err)
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	valid, _, err := VerifyPasswordTimingSafe("s3cret-password", &hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, _, err = VerifyPasswordTimingSafe("wrong-password", &hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyPasswordTimingSafeMissingHash(t *testing.T) {
	valid, newHash, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, newHash)

	empty := ""
	valid, newHash, err = VerifyPasswordTimingSafe("anything", &empty)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Empty(t, newHash)
}

func TestVerifyPasswordWithRehashNoUpgradeNeeded(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	valid, newHash, err := VerifyPasswordWithRehash("s3cret-password", hash)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Empty(t, newHash, "current params must not trigger a rehash")
}
