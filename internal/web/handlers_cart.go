package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline-web/server/internal/catalog"
	errx "github.com/supplyline-web/server/internal/core/error"
)

// handleCartAdd increments the session cart's line for the posted product.
// The browser carries the product forward from the product grid, so no
// second catalog fetch happens here.
func (s *Server) handleCartAdd(c *gin.Context) {
	var p catalog.Product
	if err := c.ShouldBindJSON(&p); err != nil || p.ID == "" {
		banner(c, errx.Validation("a product with an id is required"))
		return
	}

	sid := s.sid(c)
	s.carts.Add(sid, p)
	s.renderCart(c, sid)
}

// handleCartRemove decrements one unit; the line disappears at zero.
func (s *Server) handleCartRemove(c *gin.Context) {
	sid := s.sid(c)
	s.carts.Remove(sid, c.Param("id"))
	s.renderCart(c, sid)
}

// handleCartView shows the cart-review screen's data.
func (s *Server) handleCartView(c *gin.Context) {
	s.renderCart(c, s.sid(c))
}

func (s *Server) renderCart(c *gin.Context, sid string) {
	snap := s.carts.Snapshot(sid)
	c.JSON(http.StatusOK, gin.H{
		"items": snap.Lines(),
		"total": snap.Total(),
	})
}
