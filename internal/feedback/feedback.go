// Package feedback covers the customer feedback form and the admin view
// that lists and deletes submissions.
package feedback

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	errx "github.com/supplyline-web/server/internal/core/error"
	"github.com/supplyline-web/server/internal/upstream"
	logx "github.com/supplyline-web/server/pkg/logger"
)

// Feedback is one submission. Append-only from this side; only an admin
// deletes.
type Feedback struct {
	ID          string    `json:"_id,omitempty"`
	CompanyName string    `json:"companyName"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email"`
	Rating      int       `json:"rating"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// Validate applies the form's required/format checks. All fields are
// required and the rating must sit in 1..5.
func (f Feedback) Validate() error {
	if strings.TrimSpace(f.CompanyName) == "" {
		return errx.Validation("company name is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		return errx.Validation("email is required")
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return errx.Validation("invalid email address")
	}
	if f.Rating < 1 || f.Rating > 5 {
		return errx.Validation("rating must be between 1 and 5")
	}
	if strings.TrimSpace(f.Message) == "" {
		return errx.Validation("feedback message is required")
	}
	return nil
}

// Service talks to the marketplace API's feedback endpoints.
type Service struct {
	api *upstream.Client
}

func NewService(api *upstream.Client) *Service {
	return &Service{api: api}
}

// Submit validates and posts one feedback entry.
func (s *Service) Submit(ctx context.Context, f Feedback) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.api.Post(ctx, "/api/feedback", f, nil); err != nil {
		logx.Error().Err(err).Str("company", f.CompanyName).Msg("failed to submit feedback")
		return err
	}
	return nil
}

// List returns every submission for the admin view.
func (s *Service) List(ctx context.Context) ([]Feedback, error) {
	var feedbacks []Feedback
	if err := s.api.Get(ctx, "/api/feedback", nil, &feedbacks); err != nil {
		logx.Error().Err(err).Msg("failed to fetch feedback")
		return nil, err
	}
	return feedbacks, nil
}

// Delete removes one submission by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/api/feedback/%s", id)); err != nil {
		logx.Error().Err(err).Str("id", id).Msg("failed to delete feedback")
		return err
	}
	return nil
}
