package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/niastore/nia-storefront/api/controllers"
	"github.com/niastore/nia-storefront/api/middleware"
	"github.com/niastore/nia-storefront/internal/auth"
	"github.com/niastore/nia-storefront/internal/cart"
	"github.com/niastore/nia-storefront/internal/checkout"
	"github.com/niastore/nia-storefront/internal/media"
	"github.com/niastore/nia-storefront/internal/messages"
	"github.com/niastore/nia-storefront/internal/orders"
	"github.com/niastore/nia-storefront/internal/products"
	"github.com/niastore/nia-storefront/pkg/auth/session"
	"github.com/niastore/nia-storefront/pkg/config"
	"github.com/niastore/nia-storefront/pkg/logger"
	pkgredis "github.com/niastore/nia-storefront/pkg/redis"
)

// keyValueStore is the redis surface used by the rate limiter and the
// idempotency guard.
type keyValueStore interface {
	pkgredis.IdempotencyStore
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

type requestObserver interface {
	Observe(method, route string, status int, elapsed time.Duration)
}

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Store    keyValueStore
	Sessions session.AccessSessionChecker
	Gatherer prometheus.Gatherer
	Observer requestObserver

	Auth     auth.Service
	Products products.Service
	Cart     cart.Service
	Checkout checkout.Service
	Messages messages.Service
	Orders   orders.Service
	Images   media.ImageStore
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.Observer),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App))
		r.Get("/ready", controllers.HealthReady(cfg.App, map[string]controllers.Pinger{
			"db":    deps.DB,
			"redis": deps.Redis,
		}, logg))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	if cfg.App.StaticDir != "" {
		files := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.App.StaticDir)))
		r.Method(http.MethodGet, "/static/*", files)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Group(func(r chi.Router) {
		r.Use(
			middleware.Visitor(cfg.Session, logg),
			middleware.Authenticate(cfg.JWT, cfg.Session, deps.Sessions, logg),
			middleware.Idempotency(deps.Store, logg),
		)

		r.Get("/", controllers.Home(cfg.App))
		r.Get("/products", controllers.Products(deps.Products, logg))

		getAndPost(r, "/add_to_cart/{id}", controllers.AddToCart(deps.Cart, logg))
		r.Get("/cart", controllers.ViewCart(deps.Cart, logg))
		getAndPost(r, "/remove_from_cart/{id}", controllers.RemoveFromCart(deps.Cart, logg))
		getAndPost(r, "/clear_cart", controllers.ClearCart(deps.Cart, logg))

		r.Get("/contact", controllers.ContactForm())
		r.Post("/contact", controllers.ContactSubmit(deps.Messages, logg))

		r.Get("/checkout", controllers.CheckoutSummary(deps.Checkout, logg))
		r.Post("/checkout", controllers.CheckoutSubmit(deps.Checkout, logg))

		r.Get("/login", controllers.LoginForm())
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Store, logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, cfg.Session, logg))
		r.Get("/register", controllers.RegisterForm())
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Store, logg)).
			Post("/register", controllers.AuthRegister(deps.Auth, logg))
		getAndPost(r.With(middleware.RequireLogin(logg)), "/logout", controllers.AuthLogout(deps.Auth, deps.Cart, cfg.Session, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/admin", controllers.AdminProducts(deps.Products, logg))
			r.Post("/admin", controllers.AdminCreateProduct(deps.Products, deps.Images, cfg.Uploads, logg))
			r.Get("/admin/orders", controllers.AdminOrders(deps.Orders, logg))
			r.Get("/admin/messages", controllers.AdminMessages(deps.Messages, logg))
			getAndPost(r, "/delete_product/{id}", controllers.DeleteProduct(deps.Products, logg))
		})
	})

	return r
}

// getAndPost registers a mutating link route for both methods.
func getAndPost(r chi.Router, pattern string, h http.HandlerFunc) {
	r.Get(pattern, h)
	r.Post(pattern, h)
}
