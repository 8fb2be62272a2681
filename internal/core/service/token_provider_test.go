package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rewardly/cashback-system/internal/core/domain"
)

const testSecret = "test-secret"

func newTestProvider(t *testing.T, ttl time.Duration) *JwtTokenProvider {
	t.Helper()
	p, err := NewJwtTokenProvider(testSecret, "HS256", ttl)
	if err != nil {
		t.Fatalf("NewJwtTokenProvider: %v", err)
	}
	return p
}

func TestJwtTokenProvider_RoundTrip(t *testing.T) {
	p := newTestProvider(t, time.Hour)

	payload := domain.TokenPayload{
		UserID:   "fec7f1a1-eb68-4d6f-8ba4-47920cea39cb",
		UserRole: domain.RoleUser,
	}

	token, err := p.CreateAccessToken(payload)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	decoded, err := p.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if decoded.UserID != payload.UserID {
		t.Fatalf("expected user id %q, got %q", payload.UserID, decoded.UserID)
	}
	if decoded.UserRole != payload.UserRole {
		t.Fatalf("expected role %q, got %q", payload.UserRole, decoded.UserRole)
	}
}

func TestJwtTokenProvider_ExpiredToken(t *testing.T) {
	p := newTestProvider(t, -10*time.Minute)

	token, err := p.CreateAccessToken(domain.TokenPayload{UserID: "u1", UserRole: domain.RoleUser})
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	if _, err := p.VerifyAccessToken(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJwtTokenProvider_MalformedToken(t *testing.T) {
	p := newTestProvider(t, time.Hour)

	if _, err := p.VerifyAccessToken("not.a.valid.token"); !errors.Is(err, domain.ErrInternalJwt) {
		t.Fatalf("expected ErrInternalJwt for malformed token, got %v", err)
	}
}

func TestJwtTokenProvider_ForeignSignature(t *testing.T) {
	p := newTestProvider(t, time.Hour)

	other, err := NewJwtTokenProvider("other-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewJwtTokenProvider: %v", err)
	}
	token, err := other.CreateAccessToken(domain.TokenPayload{UserID: "u1", UserRole: domain.RoleUser})
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	if _, err := p.VerifyAccessToken(token); !errors.Is(err, domain.ErrInternalJwt) {
		t.Fatalf("expected ErrInternalJwt for foreign signature, got %v", err)
	}
}

func TestJwtTokenProvider_WrongAlgorithm(t *testing.T) {
	p := newTestProvider(t, time.Hour)

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{
		"user_id":   "u1",
		"user_role": domain.RoleUser,
		"exp":       jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tkn.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := p.VerifyAccessToken(signed); !errors.Is(err, domain.ErrInternalJwt) {
		t.Fatalf("expected ErrInternalJwt for wrong algorithm, got %v", err)
	}
}

func TestJwtTokenProvider_MissingClaims(t *testing.T) {
	p := newTestProvider(t, time.Hour)

	// Structurally valid, correctly signed, but missing user_id/user_role:
	// a stale or foreign token, not a codec bug.
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := tkn.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := p.VerifyAccessToken(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing claims, got %v", err)
	}
}

func TestNewJwtTokenProvider_RejectsUnknownAlgorithms(t *testing.T) {
	if _, err := NewJwtTokenProvider(testSecret, "HS999", time.Hour); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
	if _, err := NewJwtTokenProvider(testSecret, "RS256", time.Hour); err == nil {
		t.Fatal("expected error for asymmetric algorithm")
	}
}
