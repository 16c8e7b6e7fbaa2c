package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline-web/server/internal/chat"
)

// handleChatHistory is the one bulk fetch the chat view issues on entry.
func (s *Server) handleChatHistory(c *gin.Context) {
	msgs, err := s.history.History(c.Request.Context())
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// handleChatSocket joins the push channel for the duration of the chat
// view. The socket is opened on view entry and closed on view exit; the
// sender name comes from the session, an anonymous visitor chats as the
// default display name.
func (s *Server) handleChatSocket(c *gin.Context) {
	sender := s.currentSession(c).DisplayName()
	if err := chat.ServeWS(s.hub, c.Writer, c.Request, sender); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "websocket upgrade failed"})
	}
}
