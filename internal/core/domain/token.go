package domain

import "errors"

// TokenTypeBearer is the only token type issued by the platform.
const TokenTypeBearer = "bearer"

// ErrInvalidToken covers tokens that are expired, missing required claims,
// or that resolve to a user who no longer exists or is inactive. The client
// must re-authenticate.
var ErrInvalidToken = errors.New("invalid token")

// ErrInternalJwt covers structurally malformed tokens and signature or
// algorithm failures. These may indicate tampering and are never detailed
// to the client.
var ErrInternalJwt = errors.New("internal jwt error")

// TokenPayload is the claim set embedded in an access token.
type TokenPayload struct {
	UserID   string
	UserRole string
}

// Token is the credential returned on a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
