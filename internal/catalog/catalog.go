// Package catalog serves the browse views: approved supplier companies and
// the products each one offers. Entities come from the marketplace API and
// are immutable from this side; filtering happens locally over the fetched
// list.
package catalog

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/supplyline-web/server/internal/upstream"
	logx "github.com/supplyline-web/server/pkg/logger"
)

// Company is a supplier a consumer can order from.
type Company struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (c Company) DisplayName() string { return c.Name }

// Product is a single orderable item.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

func (p Product) DisplayName() string { return p.Name }

// Named is anything with a display name the browse views can filter on.
type Named interface {
	DisplayName() string
}

// Filter returns the items whose display name contains query,
// case-insensitively, order preserved. An empty query keeps everything.
func Filter[T Named](items []T, query string) []T {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.DisplayName()), q) {
			out = append(out, item)
		}
	}
	return out
}

// Service fetches browse data from the marketplace API.
type Service struct {
	api *upstream.Client
}

func NewService(api *upstream.Client) *Service {
	return &Service{api: api}
}

// ApprovedCompanies lists the suppliers available to order from. On failure
// the caller gets the error and an empty list; there is no retry.
func (s *Service) ApprovedCompanies(ctx context.Context) ([]Company, error) {
	var companies []Company
	if err := s.api.Get(ctx, "/api/companies/approved", nil, &companies); err != nil {
		logx.Error().Err(err).Msg("failed to fetch approved companies")
		return nil, err
	}
	return companies, nil
}

// Products lists the catalog for one company. When the marketplace API is
// unreachable the built-in fallback catalog is served instead so the order
// flow stays usable.
func (s *Service) Products(ctx context.Context, companyID string) ([]Product, error) {
	query := url.Values{"company": {companyID}}

	var products []Product
	if err := s.api.Get(ctx, "/api/products", query, &products); err != nil {
		logx.Warn().Err(err).Str("companyID", companyID).Msg("product fetch failed, serving fallback catalog")
		return FallbackProducts(), nil
	}
	return products, nil
}
