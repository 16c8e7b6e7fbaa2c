package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	errx "github.com/supplyline-web/server/internal/core/error"
	"github.com/supplyline-web/server/internal/guard"
)

// handleCompanyRequest files a listing request for the signed-in buyer's
// company. The response carries the Pending entry the view appends locally
// without waiting for a re-fetch.
func (s *Server) handleCompanyRequest(c *gin.Context) {
	var body struct {
		CompanyName string `json:"companyName"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.CompanyName) == "" {
		banner(c, errx.Validation("company name is required"))
		return
	}

	sess := guard.FromContext(c)
	req, err := s.companies.Create(c.Request.Context(), body.CompanyName, sess.DisplayName())
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"request": req})
}

// handleUserCompanyRequests lists the buyer's own requests with status.
func (s *Server) handleUserCompanyRequests(c *gin.Context) {
	sess := guard.FromContext(c)

	requests, err := s.companies.UserRequests(c.Request.Context(), sess.DisplayName())
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// handleCompanyRequests serves the admin approval screen: both lists in one
// response, each from its own fetch.
func (s *Server) handleCompanyRequests(c *gin.Context) {
	pending, err := s.companies.Pending(c.Request.Context())
	if err != nil {
		banner(c, err)
		return
	}
	approved, err := s.companies.Approved(c.Request.Context())
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending, "approved": approved})
}

// handleCompanyApprove promotes one pending request and answers with the
// re-fetched approved list; the pending side is the caller's to drop.
func (s *Server) handleCompanyApprove(c *gin.Context) {
	if err := s.companies.Approve(c.Request.Context(), c.Param("id")); err != nil {
		banner(c, err)
		return
	}

	approved, err := s.companies.Approved(c.Request.Context())
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": approved})
}

// handleCompanyDelete removes a request or approved company; the caller
// drops the id from both of its lists on success.
func (s *Server) handleCompanyDelete(c *gin.Context) {
	if err := s.companies.Delete(c.Request.Context(), c.Param("id")); err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
