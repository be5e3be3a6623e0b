package auth

import (
	"github.com/angelmondragon/caffeineveins/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityPayload captures the data available when minting a token.
type IdentityPayload struct {
	Username string
	Role     enums.UserRole
	JTI      string
}

// IdentityClaims is the typed JWT the app sends on every request.
type IdentityClaims struct {
	Username string         `json:"username"`
	Role     enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
