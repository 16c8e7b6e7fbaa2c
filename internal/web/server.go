// Package web is the HTTP surface of the storefront gateway. Routes mirror
// the browser app's paths; every handler fetches what it needs per request,
// renders JSON, and converts failures into a single short error banner.
package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/supplyline-web/server/internal/cart"
	"github.com/supplyline-web/server/internal/catalog"
	"github.com/supplyline-web/server/internal/chat"
	"github.com/supplyline-web/server/internal/company"
	"github.com/supplyline-web/server/internal/core"
	errx "github.com/supplyline-web/server/internal/core/error"
	"github.com/supplyline-web/server/internal/feedback"
	"github.com/supplyline-web/server/internal/guard"
	"github.com/supplyline-web/server/internal/order"
	"github.com/supplyline-web/server/internal/session"
	"github.com/supplyline-web/server/internal/users"
	logx "github.com/supplyline-web/server/pkg/logger"
)

const sessionCookie = "supplyline_sid"

// Config holds the HTTP listener settings.
type Config struct {
	Addr string `split_words:"true" default:":8080"`
}

// Server wires every view's dependencies behind one gin engine.
type Server struct {
	env       core.Environment
	sessions  *session.Store
	carts     *cart.Store
	catalog   *catalog.Service
	orders    *order.Service
	companies *company.Service
	feedback  *feedback.Service
	users     *users.Service
	hub       *chat.Hub
	history   *chat.HistoryService
}

type Deps struct {
	Env       core.Environment
	Sessions  *session.Store
	Carts     *cart.Store
	Catalog   *catalog.Service
	Orders    *order.Service
	Companies *company.Service
	Feedback  *feedback.Service
	Users     *users.Service
	Hub       *chat.Hub
	History   *chat.HistoryService
}

func NewServer(d Deps) *Server {
	return &Server{
		env:       d.Env,
		sessions:  d.Sessions,
		carts:     d.Carts,
		catalog:   d.Catalog,
		orders:    d.Orders,
		companies: d.Companies,
		feedback:  d.Feedback,
		users:     d.Users,
		hub:       d.Hub,
		history:   d.History,
	}
}

// Router builds the gin engine with the full route table.
func (s *Server) Router() *gin.Engine {
	if s.env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	load := s.sessionLoader()

	// Public views.
	r.POST("/login", s.handleLogin)
	r.POST("/signup", s.handleSignup)
	r.POST("/logout", s.handleLogout)
	r.GET("/companylist", s.handleCompanyList)
	r.GET("/placeorder", s.handlePlaceOrder)
	r.GET("/cart", s.handleCartView)
	r.POST("/cart/items", s.handleCartAdd)
	r.DELETE("/cart/items/:id", s.handleCartRemove)
	r.POST("/orders", s.handleOrderSubmit)
	r.POST("/feedback", s.handleFeedbackSubmit)
	r.GET("/messages", s.handleChatHistory)
	r.GET("/ws", s.handleChatSocket)

	// Consumer views.
	consumer := r.Group("/", guard.RequireRole(load, session.RoleConsumer))
	consumer.GET("/consumerdashboard", s.handleDashboard)
	consumer.GET("/consumer-orders", s.handleConsumerOrders)
	consumer.GET("/trackorder", s.handleTrackOrder)

	// Business views.
	business := r.Group("/", guard.RequireRole(load, session.RoleBusiness))
	business.GET("/buyerdashboard", s.handleDashboard)
	business.GET("/manageorders", s.handleManageOrders)
	business.PUT("/orders/:id/status", s.handleOrderStatus)
	business.GET("/trackshipments", s.handleTrackShipments)
	business.GET("/addcompany", s.handleUserCompanyRequests)
	business.POST("/addcompany", s.handleCompanyRequest)

	// Admin views.
	admin := r.Group("/", guard.RequireRole(load, session.RoleAdmin))
	admin.GET("/admindashboard", s.handleDashboard)
	admin.GET("/company-requests", s.handleCompanyRequests)
	admin.PUT("/company-requests/:id/approve", s.handleCompanyApprove)
	admin.DELETE("/company-requests/:id", s.handleCompanyDelete)
	admin.GET("/manage-feedback", s.handleFeedbackList)
	admin.DELETE("/manage-feedback/:id", s.handleFeedbackDelete)
	admin.GET("/manage-users", s.handleUserList)
	admin.DELETE("/manage-users/:id", s.handleUserDelete)

	return r
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	srv := &http.Server{Addr: cfg.Addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		logx.Info().Str("addr", cfg.Addr).Msg("storefront gateway listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logx.Info().Msg("shutting down")
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// sid returns the request's session id, minting a cookie when none exists
// so anonymous visitors can still hold a cart.
func (s *Server) sid(c *gin.Context) string {
	if v, err := c.Cookie(sessionCookie); err == nil && v != "" {
		return v
	}
	v := uuid.NewString()
	c.SetCookie(sessionCookie, v, 0, "/", "", false, true)
	return v
}

// currentSession resolves the request to a stored session, nil when absent.
func (s *Server) currentSession(c *gin.Context) *session.Session {
	v, err := c.Cookie(sessionCookie)
	if err != nil || v == "" {
		return nil
	}
	sess, err := s.sessions.Get(c.Request.Context(), v)
	if err != nil {
		logx.Warn().Err(err).Msg("session lookup failed")
		return nil
	}
	return sess
}

func (s *Server) sessionLoader() guard.Loader {
	return func(c *gin.Context) *session.Session {
		return s.currentSession(c)
	}
}

// banner renders err as the view-boundary error shape: one short message,
// prior state untouched, nothing retried.
func banner(c *gin.Context, err error) {
	c.JSON(errx.StatusOf(err), gin.H{"error": errx.MessageOf(err)})
}

// handleDashboard answers the per-role landing pages with the identity the
// guard attached.
func (s *Server) handleDashboard(c *gin.Context) {
	sess := guard.FromContext(c)
	c.JSON(http.StatusOK, gin.H{
		"name": sess.DisplayName(),
		"role": sess.Role,
	})
}
