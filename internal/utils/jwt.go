package utils

import (
	"errors"
	"fmt"
	"time"

	"bugwise/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an access token when none is configured.
const DefaultTokenTTL = 30 * time.Minute

var (
	ErrTokenCreation  = errors.New("failed to create access token")
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrMissingSubject = errors.New("token has no subject")
)

// JWTClaims custom claims for JWT. Subject holds the username.
type JWTClaims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTUtil provides JWT generation and validation
type JWTUtil struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWTUtil creates a new JWTUtil. A non-positive ttl falls back to DefaultTokenTTL.
func NewJWTUtil(secretKey string, ttl time.Duration) *JWTUtil {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTUtil{secretKey: secretKey, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (ju *JWTUtil) WithClock(now func() time.Time) *JWTUtil {
	ju.now = now
	return ju
}

// TTL returns the configured token lifetime.
func (ju *JWTUtil) TTL() time.Duration { return ju.ttl }

// GenerateToken generates a new JWT token with the configured lifetime.
func (ju *JWTUtil) GenerateToken(subject string, role model.Role) (string, error) {
	return ju.GenerateTokenWithTTL(subject, role, ju.ttl)
}

// GenerateTokenWithTTL generates a token expiring ttl from now.
func (ju *JWTUtil) GenerateTokenWithTTL(subject string, role model.Role, ttl time.Duration) (string, error) {
	if ju.secretKey == "" {
		return "", fmt.Errorf("%w: signing secret is empty", ErrTokenCreation)
	}
	now := ju.now()
	claims := &JWTClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ju.secretKey))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreation, err)
	}
	return tokenString, nil
}

// ValidateToken validates the JWT token
func (ju *JWTUtil) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ju.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ju.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
