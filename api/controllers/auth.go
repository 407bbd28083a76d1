package controllers

import (
	"net/http"

	"github.com/niastore/nia-storefront/api/middleware"
	"github.com/niastore/nia-storefront/api/responses"
	"github.com/niastore/nia-storefront/api/validators"
	"github.com/niastore/nia-storefront/internal/auth"
	"github.com/niastore/nia-storefront/internal/cart"
	"github.com/niastore/nia-storefront/pkg/config"
	"github.com/niastore/nia-storefront/pkg/enums"
	"github.com/niastore/nia-storefront/pkg/logger"
)

var loginForm = FormDescriptor{
	Action: "/login",
	Method: http.MethodPost,
	Fields: []FormField{
		{Name: "email", Type: "email", Required: true},
		{Name: "password", Type: "password", Required: true},
	},
}

var registerForm = FormDescriptor{
	Action: "/register",
	Method: http.MethodPost,
	Fields: []FormField{
		{Name: "name", Type: "text", Required: true},
		{Name: "email", Type: "email", Required: true},
		{Name: "password", Type: "password", Required: true},
	},
}

func LoginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, loginForm)
	}
}

func RegisterForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, registerForm)
	}
}

// AuthLogin verifies credentials, opens a session and sets the token cookie.
func AuthLogin(svc auth.Service, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.LoginRequest
		if err := validators.DecodeBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		middleware.SetTokenCookie(w, sessionCfg, result.AccessToken, result.ExpiresAt)
		redirect := "/"
		if result.User.IsAdmin {
			redirect = "/admin"
		}
		writeFlash(w, http.StatusOK, result, enums.FlashLevelSuccess, "Welcome back, "+result.User.Name+"!", redirect)
	}
}

func AuthRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.RegisterRequest
		if err := validators.DecodeBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeFlash(w, http.StatusCreated, user, enums.FlashLevelSuccess, "Account created! Please log in.", "/login")
	}
}

// AuthLogout revokes the session, drops the visitor cart and clears the cookie.
func AuthLogout(svc auth.Service, carts cart.Service, sessionCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if p, ok := middleware.PrincipalFromContext(ctx); ok {
			if err := svc.Logout(ctx, p.AccessID); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
		}
		if visitor := middleware.VisitorIDFromContext(ctx); visitor != "" {
			if err := carts.Drop(ctx, visitor); err != nil && logg != nil {
				logg.Error(ctx, "logout.cart_drop_failed", err)
			}
		}
		middleware.ClearTokenCookie(w, sessionCfg)
		writeFlash(w, http.StatusOK, nil, enums.FlashLevelInfo, "You have been logged out.", "/")
	}
}
