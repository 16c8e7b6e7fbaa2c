package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errx "github.com/supplyline-web/server/internal/core/error"
	"github.com/supplyline-web/server/internal/users"
	logx "github.com/supplyline-web/server/pkg/logger"
)

// handleLogin authenticates the form against the marketplace API, writes
// the session and answers with the role's dashboard route.
func (s *Server) handleLogin(c *gin.Context) {
	var creds users.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		banner(c, errx.Validation("invalid login form"))
		return
	}

	sess, err := s.users.Login(c.Request.Context(), creds)
	if err != nil {
		banner(c, err)
		return
	}

	// A fresh sid on every login; the old cart (if any) stays with the old
	// anonymous session and is never resurrected.
	sid := uuid.NewString()
	if err := s.sessions.Put(c.Request.Context(), sid, sess); err != nil {
		banner(c, err)
		return
	}
	c.SetCookie(sessionCookie, sid, 0, "/", "", false, true)

	logx.Info().Str("userID", sess.UserID).Str("role", string(sess.Role)).Msg("user logged in")
	c.JSON(http.StatusOK, gin.H{
		"name":     sess.Name,
		"role":     sess.Role,
		"redirect": users.DashboardRoute(sess.Role),
	})
}

// handleSignup registers a new account. The browser follows up with a
// normal login.
func (s *Server) handleSignup(c *gin.Context) {
	var reg users.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		banner(c, errx.Validation("invalid signup form"))
		return
	}

	if err := s.users.Signup(c.Request.Context(), reg); err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"redirect": "/login"})
}

// handleLogout clears the session and drops its cart.
func (s *Server) handleLogout(c *gin.Context) {
	sid, err := c.Cookie(sessionCookie)
	if err == nil && sid != "" {
		if err := s.sessions.Delete(c.Request.Context(), sid); err != nil {
			logx.Warn().Err(err).Msg("failed to delete session on logout")
		}
		s.carts.Drop(sid)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"redirect": "/"})
}
