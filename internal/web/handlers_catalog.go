package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline-web/server/internal/catalog"
	errx "github.com/supplyline-web/server/internal/core/error"
	"github.com/supplyline-web/server/internal/feedback"
)

// handleCompanyList serves the supplier browse view. Filtering runs here
// over the already-fetched list, one pass per keystroke from the browser.
func (s *Server) handleCompanyList(c *gin.Context) {
	companies, err := s.catalog.ApprovedCompanies(c.Request.Context())
	if err != nil {
		banner(c, err)
		return
	}

	filtered := catalog.Filter(companies, c.Query("search"))
	c.JSON(http.StatusOK, gin.H{"companies": filtered})
}

// handlePlaceOrder serves the product grid for one supplier. Without a
// company id the browser belongs back on the company list.
func (s *Server) handlePlaceOrder(c *gin.Context) {
	companyID := c.Query("company")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company is required", "redirect": "/companylist"})
		return
	}

	products, err := s.catalog.Products(c.Request.Context(), companyID)
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// handleFeedbackSubmit accepts the feedback form.
func (s *Server) handleFeedbackSubmit(c *gin.Context) {
	var f feedback.Feedback
	if err := c.ShouldBindJSON(&f); err != nil {
		banner(c, errx.Validation("invalid feedback form"))
		return
	}

	if err := s.feedback.Submit(c.Request.Context(), f); err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"redirect": "/consumerdashboard"})
}
