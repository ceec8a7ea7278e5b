package stub

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"reelmatch/config"
	"reelmatch/internal/errors"
)

// TokenService mints and validates the HS256 access tokens the stub
// hands out. Refresh tokens are opaque and live in the Store.
type TokenService struct {
	secret    string
	accessTTL time.Duration
}

// NewTokenService builds the service from the stub section of the
// config.
func NewTokenService(cfg *config.Config) (*TokenService, error) {
	if cfg.Stub == nil || cfg.Stub.Secret == "" {
		return nil, errors.New("stub jwt secret must be provided")
	}
	return &TokenService{
		secret:    cfg.Stub.Secret,
		accessTTL: cfg.Stub.AccessTokenTTL,
	}, nil
}

// GenerateAccessToken creates a signed access token for the user.
func (s *TokenService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.accessTTL).Unix(),
		"type": "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}
	return signed, nil
}

// ValidateAccessToken parses the token and returns the user id from
// its subject claim.
func (s *TokenService) ValidateAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("unexpected claims type")
	}
	if kind, _ := claims["type"].(string); kind != "access" {
		return uuid.Nil, errors.New("not an access token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("subject missing from token")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "parse subject")
	}
	return userID, nil
}
