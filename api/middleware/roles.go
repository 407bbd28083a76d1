package middleware

import (
	"net/http"

	"github.com/niastore/nia-storefront/api/responses"
	pkgerrors "github.com/niastore/nia-storefront/pkg/errors"
	"github.com/niastore/nia-storefront/pkg/logger"
)

// RequireAdmin allows only authenticated users carrying the admin flag.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "Please log in to continue.").WithRedirect("/login"))
				return
			}
			if !principal.IsAdmin {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "admin access required").WithRedirect("/"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
