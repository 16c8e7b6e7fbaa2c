package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errx "github.com/supplyline-web/server/internal/core/error"
	"github.com/supplyline-web/server/internal/guard"
	"github.com/supplyline-web/server/internal/order"
)

// handleOrderSubmit places the session's cart as an order. A failed
// submission leaves the cart untouched; the only retry is the user pressing
// the button again.
func (s *Server) handleOrderSubmit(c *gin.Context) {
	sid := s.sid(c)
	buyer := s.currentSession(c).DisplayName()

	sub, err := s.orders.Submit(c.Request.Context(), sid, buyer)
	if err != nil {
		banner(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":    sub,
		"redirect": "/consumerdashboard",
	})
}

// handleConsumerOrders lists the signed-in consumer's orders with their
// delivery status.
func (s *Server) handleConsumerOrders(c *gin.Context) {
	sess := guard.FromContext(c)

	orders, err := s.orders.List(c.Request.Context(), sess.Name)
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// trackedOrder decorates an order with its tracking-bar percentage and
// shipment-timeline step.
type trackedOrder struct {
	order.Order
	ShortID  string `json:"shortId"`
	Progress int    `json:"progress"`
	Step     int    `json:"step"`
}

func track(orders []order.Order) []trackedOrder {
	out := make([]trackedOrder, len(orders))
	for i, o := range orders {
		out[i] = trackedOrder{
			Order:    o,
			ShortID:  o.ShortID(),
			Progress: o.Status.Progress(),
			Step:     o.Status.Step(),
		}
	}
	return out
}

// handleTrackOrder is the consumer's read-only tracking view: their orders,
// searchable, each with a progress percentage.
func (s *Server) handleTrackOrder(c *gin.Context) {
	sess := guard.FromContext(c)

	orders, err := s.orders.List(c.Request.Context(), sess.Name)
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": track(order.Search(orders, c.Query("search")))})
}

// handleManageOrders is the seller's order list across all buyers.
func (s *Server) handleManageOrders(c *gin.Context) {
	orders, err := s.orders.List(c.Request.Context(), "")
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// handleTrackShipments is the seller's shipment timeline across all orders.
func (s *Server) handleTrackShipments(c *gin.Context) {
	orders, err := s.orders.List(c.Request.Context(), "")
	if err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": track(order.Search(orders, c.Query("search")))})
}

// handleOrderStatus PUTs one status advance for the seller. The target must
// be a status the views actually expose a move to; anything else is
// rejected before the network call.
func (s *Server) handleOrderStatus(c *gin.Context) {
	var body struct {
		Status order.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		banner(c, errx.Validation("a status is required"))
		return
	}

	switch body.Status {
	case order.StatusShipped, order.StatusDelivered, order.StatusCancelled:
	default:
		banner(c, errx.Validation("status cannot be set from this view"))
		return
	}

	if err := s.orders.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status); err != nil {
		banner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": body.Status})
}
