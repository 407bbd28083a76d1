package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/niastore/nia-storefront/pkg/config"
	"github.com/niastore/nia-storefront/pkg/logger"
)

// Visitor ensures every request carries an opaque visitor id cookie. Carts are
// keyed by this id; it is reissued when missing or malformed.
func Visitor(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := ""
			if cookie, err := r.Cookie(cfg.VisitorCookie); err == nil {
				if parsed, err := uuid.Parse(strings.TrimSpace(cookie.Value)); err == nil {
					visitorID = parsed.String()
				}
			}
			if visitorID == "" {
				visitorID = uuid.NewString()
			}
			// Refreshed on every request so the cookie outlives the cart ttl.
			http.SetCookie(w, &http.Cookie{
				Name:     cfg.VisitorCookie,
				Value:    visitorID,
				Path:     "/",
				MaxAge:   int(cfg.VisitorTTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.SecureCookies,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithVisitorID(r.Context(), visitorID)
			if logg != nil {
				ctx = logg.WithVisitorID(ctx, visitorID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
