// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity flags this service consumes. Route guards read
// the roles; coupon eligibility reads the student flags. Issuing tokens is
// the auth service's job, not this one's.
type Claims struct {
	UserID              string   `json:"user_id"`
	Roles               []string `json:"roles,omitempty"`
	UserType            string   `json:"user_type,omitempty"`
	StudentVerification string   `json:"student_verification,omitempty"` // pending, approved, rejected
	jwt.RegisteredClaims
}

// HasRole checks if the claims contain a specific role
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if user is an admin (including super admin)
func (c *Claims) IsAdmin() bool {
	return c.HasRole("admin") || c.HasRole("super_admin")
}

// IsStudent reports whether this is a student-type account.
func (c *Claims) IsStudent() bool {
	return c.UserType == "student"
}

// StudentVerified reports whether the account holds an approved student
// verification record.
func (c *Claims) StudentVerified() bool {
	return c.StudentVerification == "approved"
}

// VerifyAudience checks if the expected audience is listed in the claims.
func (c *Claims) VerifyAudience(audience string, required bool) bool {
	if len(c.Audience) == 0 {
		return !required
	}

	for _, aud := range c.Audience {
		if aud == audience {
			return true
		}
	}
	return false
}
