package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestAdminPolicyCheck(t *testing.T) {
	p := NewAdminPolicy([]string{" Secretaria@Example.com ", ""})

	claims := func(sub, role, email, appRole string) *Claims {
		return &Claims{
			Email:            email,
			Role:             role,
			AppMetadata:      AppMetadata{Role: appRole},
			RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
		}
	}

	assert.NoError(t, p.Check(claims("u1", RoleAuthenticated, "secretaria@example.com", "")))
	assert.NoError(t, p.Check(claims("u2", RoleAuthenticated, "coord@example.com", "admin")))

	assert.ErrorIs(t, p.Check(claims("", "anon", "", "")), ErrNotAuthenticated)
	assert.ErrorIs(t, p.Check(claims("u1", "anon", "secretaria@example.com", "")), ErrNotAuthenticated)
	assert.ErrorIs(t, p.Check(claims("", RoleAuthenticated, "secretaria@example.com", "")), ErrNotAuthenticated)
	assert.ErrorIs(t, p.Check(nil), ErrNotAuthenticated)
	assert.ErrorIs(t, p.Check(claims("u3", RoleAuthenticated, "visitor@example.com", "")), ErrNotAdmin)
}

func TestAdminPolicyAllowsEmail(t *testing.T) {
	p := NewAdminPolicy([]string{"secretaria@example.com"})
	assert.True(t, p.AllowsEmail("SECRETARIA@example.com "))
	assert.False(t, p.AllowsEmail(""))
	assert.False(t, p.AllowsEmail("attacker@example.com"))

	assert.False(t, NewAdminPolicy(nil).AllowsEmail("secretaria@example.com"))
}
