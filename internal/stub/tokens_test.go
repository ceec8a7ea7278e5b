package stub

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelmatch/config"
)

func testTokenConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Stub = &config.StubConfig{
		Secret:         secret,
		AccessTokenTTL: ttl,
	}
	return cfg
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	svc, err := NewTokenService(testTokenConfig("test_secret_key_very_long_for_testing", 15*time.Minute))
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService(&config.Config{})
	assert.Error(t, err)

	_, err = NewTokenService(testTokenConfig("", time.Minute))
	assert.Error(t, err)
}

func TestTokenService_RejectsBadTokens(t *testing.T) {
	svc, err := NewTokenService(testTokenConfig("test_secret_key_very_long_for_testing", 15*time.Minute))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)

	// token signed with a different secret
	other, err := NewTokenService(testTokenConfig("a_completely_different_secret_key", 15*time.Minute))
	require.NoError(t, err)
	foreign, err := other.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(foreign)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewTokenService(testTokenConfig("test_secret_key_very_long_for_testing", -time.Minute))
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsWrongType(t *testing.T) {
	secret := "test_secret_key_very_long_for_testing"
	svc, err := NewTokenService(testTokenConfig(secret, 15*time.Minute))
	require.NoError(t, err)

	// a structurally valid token whose type claim is not "access"
	claims := jwt.MapClaims{
		"sub":  uuid.NewString(),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
		"type": "refresh",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.Error(t, err)
}
