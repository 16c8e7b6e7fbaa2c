package session

import (
	"fmt"
)

// Role is the closed set of user roles the gateway recognises. Role checks
// happen at the session-write boundary so an unknown role string can never
// circulate through the views.
type Role string

const (
	RoleConsumer Role = "Consumer"
	RoleBusiness Role = "Business"
	RoleAdmin    Role = "Admin"
)

// ParseRole validates v against the closed role set. Unknown values are
// rejected rather than silently passed through.
func ParseRole(v string) (Role, error) {
	switch Role(v) {
	case RoleConsumer:
		return RoleConsumer, nil
	case RoleBusiness:
		return RoleBusiness, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", v)
	}
}

// Session is the identity of the authenticated user for the lifetime of a
// login. One instance per browser session; overwritten on login, deleted on
// logout. The token is opaque and never inspected here.
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Token  string `json:"token"`
}

// DisplayName returns the user's name, falling back to an anonymous default
// when the session is missing fields.
func (s *Session) DisplayName() string {
	if s == nil || s.Name == "" {
		return "User"
	}
	return s.Name
}
