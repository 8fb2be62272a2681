package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rewardly/cashback-system/internal/core/domain"
)

// JwtTokenProvider implements ports.TokenProvider with symmetric-key JWTs.
// Secret, algorithm and default TTL come from process-wide configuration and
// never change for the process lifetime. The TTL is per-instance so tests can
// mint already-expired tokens with a negative value.
type JwtTokenProvider struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewJwtTokenProvider builds a provider for the named HMAC algorithm
// (HS256, HS384 or HS512). Unknown algorithms are a configuration error.
func NewJwtTokenProvider(secret, algorithm string, ttl time.Duration) (*JwtTokenProvider, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not symmetric", algorithm)
	}
	return &JwtTokenProvider{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// CreateAccessToken serializes and signs the payload with an absolute expiry
// of now + ttl.
func (p *JwtTokenProvider) CreateAccessToken(payload domain.TokenPayload) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   payload.UserID,
		"user_role": payload.UserRole,
		"exp":       jwt.NewNumericDate(time.Now().UTC().Add(p.ttl)),
	}

	t := jwt.NewWithClaims(p.method, claims)
	signed, err := t.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %v", domain.ErrInternalJwt, err)
	}
	return signed, nil
}

// VerifyAccessToken parses and cryptographically verifies token.
// Expiry after a valid signature yields ErrInvalidToken, as does a decoded
// token missing the required claims (a stale or foreign token, not a codec
// bug). Anything structurally or cryptographically wrong yields
// ErrInternalJwt.
func (p *JwtTokenProvider) VerifyAccessToken(token string) (domain.TokenPayload, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != p.method.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.TokenPayload{}, domain.ErrInvalidToken
		}
		return domain.TokenPayload{}, fmt.Errorf("%w: %v", domain.ErrInternalJwt, err)
	}

	userID, _ := claims["user_id"].(string)
	userRole, _ := claims["user_role"].(string)
	if userID == "" || userRole == "" {
		return domain.TokenPayload{}, domain.ErrInvalidToken
	}

	return domain.TokenPayload{UserID: userID, UserRole: userRole}, nil
}
