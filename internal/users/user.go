// Package users describes the signed-in identity the shop is driven by.
// Credentials and sign-up live elsewhere; this package only carries who is
// acting and in which role.
package users

import (
	"strings"

	"github.com/angelmondragon/caffeineveins/pkg/enums"
	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
)

// DefaultAdmin is the account the mobile app provisions on first launch.
const DefaultAdmin = "gengar"

// User is the current identity: a username and a role.
type User struct {
	Username string         `json:"username"`
	Role     enums.UserRole `json:"role"`
}

func New(username string, role enums.UserRole) (User, error) {
	u := User{Username: strings.TrimSpace(username), Role: role}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

func (u User) Validate() error {
	if u.Username == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "username is required")
	}
	if !u.Role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown role")
	}
	return nil
}

func (u User) IsAdmin() bool {
	return u.Role == enums.UserRoleAdmin
}

// Key identifies the user's session. Usernames are case-insensitive.
func (u User) Key() string {
	return strings.ToLower(u.Username)
}
