package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/niastore/nia-storefront/api/responses"
	pkgAuth "github.com/niastore/nia-storefront/pkg/auth"
	"github.com/niastore/nia-storefront/pkg/auth/session"
	"github.com/niastore/nia-storefront/pkg/config"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"github.com/niastore/nia-storefront/pkg/logger"
)

// Authenticate resolves the caller from the Authorization bearer header or the
// token cookie. Anonymous requests pass through untouched. A bad bearer token is
// rejected; a bad cookie is cleared and the request continues anonymously.
func Authenticate(cfg config.JWTConfig, sessionCfg config.SessionConfig, verifier session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, fromHeader := bearerToken(r)
			if token == "" {
				if cookie, err := r.Cookie(sessionCfg.TokenCookie); err == nil {
					token = strings.TrimSpace(cookie.Value)
				}
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			reject := func(err error) {
				if fromHeader {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
				ClearTokenCookie(w, sessionCfg)
				next.ServeHTTP(w, r)
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				reject(pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.ID == "" || claims.UserID == 0 {
				reject(pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					reject(pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired"))
					return
				}
			}

			ctx := WithPrincipal(r.Context(), Principal{
				UserID:   claims.UserID,
				Name:     claims.Name,
				IsAdmin:  claims.IsAdmin,
				AccessID: claims.ID,
			})
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin rejects anonymous requests.
func RequireLogin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); !ok {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "Please log in to continue.").WithRedirect("/login"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetTokenCookie stores the access token in an HttpOnly cookie.
func SetTokenCookie(w http.ResponseWriter, cfg config.SessionConfig, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearTokenCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func bearerToken(r *http.Request) (string, bool) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", false
	}
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	return raw, true
}
