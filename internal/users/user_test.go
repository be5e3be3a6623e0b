package users

import (
	"testing"

	"github.com/angelmondragon/caffeineveins/pkg/enums"
	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
)

func TestNewValidates(t *testing.T) {
	u, err := New("  Gengar ", enums.UserRoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "Gengar" || !u.IsAdmin() {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.Key() != "gengar" {
		t.Fatalf("session key should be case-insensitive, got %q", u.Key())
	}

	if _, err := New(" ", enums.UserRoleCustomer); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("blank username should be unauthorized, got %v", err)
	}
	if _, err := New("ash", enums.UserRole("owner")); err == nil {
		t.Fatal("unknown role should be rejected")
	}
}

func TestCustomerIsNotAdmin(t *testing.T) {
	u := User{Username: "ash", Role: enums.UserRoleCustomer}
	if u.IsAdmin() {
		t.Fatal("customer must not be admin")
	}
}
