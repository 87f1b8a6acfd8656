package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a JWT token. The registered ID (jti)
// is what logout revokes.
type TokenClaims struct {
	jwt.RegisteredClaims
	AccountID uint   `json:"account_id"`
	Username  string `json:"username"`
}

// Identity returns the requester the token authenticates
func (c *TokenClaims) Identity() Identity {
	return Identity{AccountID: c.AccountID, Username: c.Username}
}
