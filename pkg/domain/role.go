package domain

import (
	"strings"

	dErrors "talentnet/pkg/domain-errors"
)

// Role is the account class of a viewer.
// Invariant: the value is one of the supported roles; ANONYMOUS marks a request
// without a session.
//
// Usage: construct via ParseRole at trust boundaries (token claims, store rows);
// direct casting bypasses validation.
type Role string

const (
	RoleProfessional Role = "PROFESSIONAL"
	RoleEmployer     Role = "EMPLOYER"
	RoleAgency       Role = "AGENCY"
	RoleAdmin        Role = "ADMIN"
	RoleAnonymous    Role = "ANONYMOUS"
)

var validRoles = map[Role]bool{
	RoleProfessional: true,
	RoleEmployer:     true,
	RoleAgency:       true,
	RoleAdmin:        true,
	RoleAnonymous:    true,
}

// ParseRole constructs a Role from external input. Matching is case-insensitive.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(strings.ToUpper(s))
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported role: "+s)
	}
	return r, nil
}

// IsValid reports whether r is a supported role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// IsHiring reports whether the role browses candidates on behalf of a company.
func (r Role) IsHiring() bool {
	return r == RoleEmployer || r == RoleAgency
}

func (r Role) String() string {
	return string(r)
}
