// Package company implements the company request/approval workflow: a
// buyer asks for their company to be listed, an admin approves or deletes.
package company

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/supplyline-web/server/internal/upstream"
	logx "github.com/supplyline-web/server/pkg/logger"
)

// RequestStatus is the lifecycle of a company request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
)

// Request is a company listing request. Approval moves it out of the
// pending set and into the approved set.
type Request struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	RequestedBy string        `json:"requestedBy"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Service talks to the marketplace API's company endpoints.
type Service struct {
	api *upstream.Client
}

func NewService(api *upstream.Client) *Service {
	return &Service{api: api}
}

// Create submits a new company request. The requester view appends the
// returned entry locally without a re-fetch; if the POST succeeded
// server-side but the response was lost, a later refresh can reveal a
// duplicate. That gap is accepted.
func (s *Service) Create(ctx context.Context, companyName, requestedBy string) (Request, error) {
	body := map[string]string{"companyName": companyName, "requestedBy": requestedBy}
	if err := s.api.Post(ctx, "/api/companies/request", body, nil); err != nil {
		logx.Error().Err(err).Str("company", companyName).Msg("failed to create company request")
		return Request{}, err
	}

	return Request{
		Name:        companyName,
		RequestedBy: requestedBy,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}, nil
}

// Pending lists requests awaiting approval.
func (s *Service) Pending(ctx context.Context) ([]Request, error) {
	var requests []Request
	if err := s.api.Get(ctx, "/api/companies/pending", nil, &requests); err != nil {
		logx.Error().Err(err).Msg("failed to fetch pending company requests")
		return nil, err
	}
	return requests, nil
}

// Approved lists companies already approved for the catalog.
func (s *Service) Approved(ctx context.Context) ([]Request, error) {
	var companies []Request
	if err := s.api.Get(ctx, "/api/companies/approved", nil, &companies); err != nil {
		logx.Error().Err(err).Msg("failed to fetch approved companies")
		return nil, err
	}
	return companies, nil
}

// UserRequests lists the requests one user has filed, whatever their state.
func (s *Service) UserRequests(ctx context.Context, user string) ([]Request, error) {
	query := url.Values{"user": {user}}

	var requests []Request
	if err := s.api.Get(ctx, "/api/companies/user-requests", query, &requests); err != nil {
		logx.Error().Err(err).Str("user", user).Msg("failed to fetch user company requests")
		return nil, err
	}
	return requests, nil
}

// Approve promotes a pending request. The caller drops the id from its
// pending list and re-fetches the approved list; the approved side is never
// updated optimistically.
func (s *Service) Approve(ctx context.Context, id string) error {
	if err := s.api.Put(ctx, fmt.Sprintf("/api/companies/approve/%s", id), nil, nil); err != nil {
		logx.Error().Err(err).Str("id", id).Msg("failed to approve company request")
		return err
	}
	return nil
}

// Delete removes a request or an approved company. On success the caller
// drops the id from both of its local lists unconditionally.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/api/companies/delete/%s", id)); err != nil {
		logx.Error().Err(err).Str("id", id).Msg("failed to delete company")
		return err
	}
	return nil
}
