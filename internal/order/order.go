// Package order turns a cart into an order and tracks the order lifecycle
// against the marketplace API.
package order

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/supplyline-web/server/internal/cart"
	errx "github.com/supplyline-web/server/internal/core/error"
	"github.com/supplyline-web/server/internal/upstream"
	logx "github.com/supplyline-web/server/pkg/logger"
)

// Item is one line of a placed order.
type Item struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is an order as the marketplace API reports it.
type Order struct {
	ID             string          `json:"_id"`
	BuyerName      string          `json:"buyerName"`
	Items          []Item          `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         Status          `json:"status"`
	DeliveryStatus string          `json:"deliveryStatus,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ShortID is the display form of the order id, matching the tracking views.
func (o Order) ShortID() string {
	id := o.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// Submission is the payload POSTed to create an order. The total is
// computed here from the cart and trusted by the client thereafter; the
// marketplace API is not assumed to recompute it.
type Submission struct {
	Items       []Item          `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      Status          `json:"status"`
	BuyerName   string          `json:"buyerName"`
}

// Service owns order submission, listing and status updates. It holds the
// cart store so a successful submission can discard the session's cart.
type Service struct {
	api   *upstream.Client
	carts *cart.Store
}

func NewService(api *upstream.Client, carts *cart.Store) *Service {
	return &Service{api: api, carts: carts}
}

// BuildSubmission copies the cart into an order payload. The cart itself is
// untouched.
func BuildSubmission(c *cart.Cart, buyerName string) Submission {
	lines := c.Lines()
	items := make([]Item, len(lines))
	for i, l := range lines {
		items[i] = Item{Name: l.Product.Name, Quantity: l.Quantity, Price: l.Product.Price}
	}
	return Submission{
		Items:       items,
		TotalAmount: c.Total(),
		Status:      StatusPending,
		BuyerName:   buyerName,
	}
}

// Submit places the session's cart as an order. An empty cart is rejected
// before any network call. On success the cart is dropped; on failure it is
// retained unchanged, so an explicit resubmission is the only retry path.
// Nothing here prevents a duplicate order on an accidental double submit.
func (s *Service) Submit(ctx context.Context, sid, buyerName string) (Submission, error) {
	c := s.carts.Snapshot(sid)
	if c.Empty() {
		return Submission{}, errx.Validation("cart is empty")
	}

	sub := BuildSubmission(c, buyerName)
	if err := s.api.Post(ctx, "/api/orders", sub, nil); err != nil {
		logx.Error().Err(err).Str("buyer", buyerName).Msg("failed to place order")
		return Submission{}, err
	}

	s.carts.Drop(sid)
	logx.Info().Str("buyer", buyerName).Str("total", sub.TotalAmount.String()).Msg("order placed")
	return sub, nil
}

// List fetches orders, optionally scoped to one buyer. An empty buyerName
// returns every order (the seller and admin views).
func (s *Service) List(ctx context.Context, buyerName string) ([]Order, error) {
	var query url.Values
	if buyerName != "" {
		query = url.Values{"buyerName": {buyerName}}
	}

	var orders []Order
	if err := s.api.Get(ctx, "/api/orders", query, &orders); err != nil {
		logx.Error().Err(err).Str("buyer", buyerName).Msg("failed to fetch orders")
		return nil, err
	}
	return orders, nil
}

// UpdateStatus PUTs the new status for one order. The caller applies the
// status to its local copy only after this returns nil; a failure leaves
// the list showing the pre-transition status.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	path := fmt.Sprintf("/api/orders/%s", orderID)
	body := map[string]Status{"status": status}

	if err := s.api.Put(ctx, path, body, nil); err != nil {
		logx.Error().Err(err).Str("orderID", orderID).Str("status", string(status)).Msg("failed to update order status")
		return err
	}
	return nil
}

// Search filters orders by a case-insensitive substring of the order id or
// buyer name, order preserved.
func Search(orders []Order, query string) []Order {
	if query == "" {
		return orders
	}
	q := strings.ToLower(query)
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.ID), q) || strings.Contains(strings.ToLower(o.BuyerName), q) {
			out = append(out, o)
		}
	}
	return out
}
