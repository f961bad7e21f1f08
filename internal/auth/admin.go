package auth

import (
	"errors"
	"strings"
)

const (
	// RoleAuthenticated is the role claim of a signed-in user. The public
	// anon key carries "anon" instead.
	RoleAuthenticated = "authenticated"

	adminAppRole = "admin"
)

var (
	// ErrNotAuthenticated is returned for tokens that do not belong to a signed-in user.
	ErrNotAuthenticated = errors.New("token does not belong to a signed-in user")

	// ErrNotAdmin is returned for signed-in users without admin rights.
	ErrNotAdmin = errors.New("user is not an admin")
)

// AdminPolicy decides which signed-in users may use the admin area. A user
// is an admin when their email is listed or their app_metadata role is "admin".
type AdminPolicy struct {
	emails map[string]bool
}

func NewAdminPolicy(emails []string) AdminPolicy {
	p := AdminPolicy{emails: map[string]bool{}}
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			p.emails[e] = true
		}
	}
	return p
}

// AllowsEmail reports whether email is on the admin list.
func (p AdminPolicy) AllowsEmail(email string) bool {
	email = normalizeEmail(email)
	return email != "" && p.emails[email]
}

// Check returns ErrNotAuthenticated or ErrNotAdmin when claims may not
// reach the admin area.
func (p AdminPolicy) Check(c *Claims) error {
	if c == nil || c.Subject == "" || c.Role != RoleAuthenticated {
		return ErrNotAuthenticated
	}
	if c.AppMetadata.Role == adminAppRole || p.AllowsEmail(c.Email) {
		return nil
	}
	return ErrNotAdmin
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
