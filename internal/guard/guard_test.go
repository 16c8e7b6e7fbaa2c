package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supplyline-web/server/internal/session"
)

func consumer() *session.Session {
	return &session.Session{UserID: "u-1", Name: "Priya", Role: session.RoleConsumer, Token: "tok"}
}

func TestDecideAllowsMatchingRole(t *testing.T) {
	got := Decide(consumer(), []session.Role{session.RoleConsumer})
	assert.Equal(t, Allow, got)
}

func TestDecideWrongRoleIsUnauthorized(t *testing.T) {
	// A Consumer asking for a Business-gated view never renders.
	got := Decide(consumer(), []session.Role{session.RoleBusiness})
	assert.Equal(t, Unauthorized, got)
}

func TestDecideNoSessionRedirectsToLogin(t *testing.T) {
	for _, allowed := range [][]session.Role{
		nil,
		{session.RoleConsumer},
		{session.RoleConsumer, session.RoleBusiness, session.RoleAdmin},
	} {
		assert.Equal(t, RedirectLogin, Decide(nil, allowed))
	}
}

func TestDecideMissingTokenRedirectsToLogin(t *testing.T) {
	sess := consumer()
	sess.Token = ""
	assert.Equal(t, RedirectLogin, Decide(sess, []session.Role{session.RoleConsumer}))
}

func TestDecideUnknownRoleIsUnauthorized(t *testing.T) {
	sess := consumer()
	sess.Role = session.Role("Superuser")
	got := Decide(sess, []session.Role{session.RoleConsumer, session.RoleBusiness})
	assert.Equal(t, Unauthorized, got)
}

func TestDecideMultipleAllowedRoles(t *testing.T) {
	got := Decide(consumer(), []session.Role{session.RoleBusiness, session.RoleConsumer})
	assert.Equal(t, Allow, got)
}
