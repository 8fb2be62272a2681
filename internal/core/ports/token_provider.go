package ports

import "github.com/rewardly/cashback-system/internal/core/domain"

// TokenProvider mints and verifies access tokens. The platform ships a single
// signed-claims (JWT) implementation; an opaque-token strategy with
// server-side storage would be a second implementation behind this interface.
type TokenProvider interface {
	CreateAccessToken(payload domain.TokenPayload) (string, error)
	VerifyAccessToken(token string) (domain.TokenPayload, error)
}
