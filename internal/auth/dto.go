package auth

import (
	"net/url"
	"strings"
	"time"

	"github.com/niastore/nia-storefront/internal/users"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) BindForm(values url.Values) {
	r.Email = strings.TrimSpace(values.Get("email"))
	r.Password = values.Get("password")
}

// RegisterRequest carries the account fields for self-service registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Name     string `json:"name" validate:"required,max=120"`
}

func (r *RegisterRequest) BindForm(values url.Values) {
	r.Email = strings.TrimSpace(values.Get("email"))
	r.Password = values.Get("password")
	r.Name = strings.TrimSpace(values.Get("name"))
}

// LoginResponse contains the access token and the authenticated user.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
	User        *users.UserDTO `json:"user"`
}
