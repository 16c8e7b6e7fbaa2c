package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleFeedbackList serves the admin feedback screen.
func (s *Server) handleFeedbackList(c *gin.Context) {
	feedbacks, err := s.feedback.List(c.Request.Context())
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedbacks})
}

// handleFeedbackDelete removes one submission.
func (s *Server) handleFeedbackDelete(c *gin.Context) {
	if err := s.feedback.Delete(c.Request.Context(), c.Param("id")); err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// handleUserList serves the admin account screen.
func (s *Server) handleUserList(c *gin.Context) {
	accounts, err := s.users.List(c.Request.Context())
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": accounts})
}

// handleUserDelete removes one account.
func (s *Server) handleUserDelete(c *gin.Context) {
	if err := s.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
