// Package users covers authentication against the marketplace API and the
// admin user list.
package users

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	errx "github.com/supplyline-web/server/internal/core/error"
	"github.com/supplyline-web/server/internal/session"
	"github.com/supplyline-web/server/internal/upstream"
	logx "github.com/supplyline-web/server/pkg/logger"
)

// User is an account as the marketplace API reports it.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate applies the login form's required/format checks.
func (c Credentials) Validate() error {
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return errx.Validation("invalid email address")
	}
	if len(c.Password) < 6 {
		return errx.Validation("password must be at least 6 characters")
	}
	if _, err := session.ParseRole(c.Role); err != nil {
		return errx.Validation("select a valid role")
	}
	return nil
}

// Registration is the signup form.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate applies the signup form's required/format checks.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errx.Validation("name is required")
	}
	return Credentials{Email: r.Email, Password: r.Password, Role: r.Role}.Validate()
}

// loginResponse is the shape the marketplace API returns on login.
type loginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Service talks to the marketplace API's user endpoints.
type Service struct {
	api *upstream.Client
}

func NewService(api *upstream.Client) *Service {
	return &Service{api: api}
}

// Login authenticates against the marketplace API and builds the session to
// write. The role coming back is validated against the closed enum before
// anything is stored; an unknown role fails the login rather than leaking
// into the views.
func (s *Service) Login(ctx context.Context, creds Credentials) (session.Session, error) {
	if err := creds.Validate(); err != nil {
		return session.Session{}, err
	}

	var resp loginResponse
	if err := s.api.Post(ctx, "/api/users/login", creds, &resp); err != nil {
		logx.Warn().Err(err).Str("email", creds.Email).Msg("login rejected by marketplace API")
		return session.Session{}, err
	}
	if resp.User == nil || resp.Token == "" {
		return session.Session{}, errx.New(nil, 502, "login response missing user or token")
	}

	role, err := session.ParseRole(resp.User.Role)
	if err != nil {
		logx.Error().Err(err).Str("userID", resp.User.ID).Msg("marketplace API returned unknown role")
		return session.Session{}, errx.New(err, 502, "account has an unrecognised role")
	}

	return session.Session{
		UserID: resp.User.ID,
		Name:   resp.User.Name,
		Role:   role,
		Token:  resp.Token,
	}, nil
}

// Signup registers a new account. The caller still logs in afterwards; no
// session is created here.
func (s *Service) Signup(ctx context.Context, reg Registration) error {
	if err := reg.Validate(); err != nil {
		return err
	}
	if err := s.api.Post(ctx, "/api/users/signup", reg, nil); err != nil {
		logx.Error().Err(err).Str("email", reg.Email).Msg("signup failed")
		return err
	}
	return nil
}

// List returns every account for the admin view.
func (s *Service) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.api.Get(ctx, "/api/users", nil, &users); err != nil {
		logx.Error().Err(err).Msg("failed to fetch users")
		return nil, err
	}
	return users, nil
}

// Delete removes one account by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/api/users/%s", id)); err != nil {
		logx.Error().Err(err).Str("id", id).Msg("failed to delete user")
		return err
	}
	return nil
}

// DashboardRoute maps a role to its landing page after login.
func DashboardRoute(role session.Role) string {
	switch role {
	case session.RoleConsumer:
		return "/consumerdashboard"
	case session.RoleBusiness:
		return "/buyerdashboard"
	case session.RoleAdmin:
		return "/admindashboard"
	default:
		return "/login"
	}
}
