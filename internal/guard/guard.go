// Package guard decides whether a request may reach a role-gated view.
// The decision is a pure function of the session; the gin middleware only
// translates the outcome into a response.
package guard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline-web/server/internal/session"
)

// Outcome is the result of a guard decision.
type Outcome int

const (
	// Allow renders the protected view.
	Allow Outcome = iota
	// RedirectLogin means no session is present.
	RedirectLogin
	// Unauthorized means a session exists but its role is not allowed.
	Unauthorized
)

// sessionKey is the gin context key the middleware stores the session under.
const sessionKey = "guard.session"

// Decide applies the route-guard contract: no session redirects to login,
// a role outside allowed is unauthorized, anything else renders. A session
// whose role matches none of the known roles is unauthorized, never a crash.
func Decide(sess *session.Session, allowed []session.Role) Outcome {
	if sess == nil || sess.Token == "" {
		return RedirectLogin
	}
	for _, role := range allowed {
		if sess.Role == role {
			return Allow
		}
	}
	return Unauthorized
}

// Loader resolves the current request to a session, or nil when there is
// none. *session.Store fits via an adapter in the web package.
type Loader func(c *gin.Context) *session.Session

// RequireRole builds a gin middleware enforcing the guard decision for the
// allowed roles. On Allow the session is attached to the request context.
func RequireRole(load Loader, allowed ...session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := load(c)
		switch Decide(sess, allowed) {
		case RedirectLogin:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required", "redirect": "/login"})
		case Unauthorized:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not authorized", "redirect": "/unauthorized"})
		default:
			c.Set(sessionKey, sess)
			c.Next()
		}
	}
}

// FromContext returns the session attached by RequireRole, or nil when the
// route was not guarded.
func FromContext(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
