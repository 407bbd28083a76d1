package controllers

import (
	"net/http"

	"github.com/niastore/nia-storefront/api/middleware"
	"github.com/niastore/nia-storefront/api/responses"
	"github.com/niastore/nia-storefront/pkg/config"
)

type link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type homeResponse struct {
	StoreName string  `json:"store_name"`
	User      *string `json:"user,omitempty"`
	Links     []link  `json:"links"`
}

// Home returns the store name and an index of the public routes.
func Home(cfg config.AppConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := homeResponse{
			StoreName: cfg.StoreName,
			Links: []link{
				{Rel: "products", Href: "/products"},
				{Rel: "cart", Href: "/cart"},
				{Rel: "checkout", Href: "/checkout"},
				{Rel: "contact", Href: "/contact"},
			},
		}
		if p, ok := middleware.PrincipalFromContext(r.Context()); ok {
			name := p.Name
			resp.User = &name
			resp.Links = append(resp.Links, link{Rel: "logout", Href: "/logout"})
			if p.IsAdmin {
				resp.Links = append(resp.Links, link{Rel: "admin", Href: "/admin"})
			}
		} else {
			resp.Links = append(resp.Links, link{Rel: "login", Href: "/login"}, link{Rel: "register", Href: "/register"})
		}
		responses.WriteSuccess(w, resp)
	}
}
