// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"emberguard/internal/app"
)

// Services bundles the application services the server routes to.
type Services struct {
	Catalog  *app.CatalogService
	Carts    *app.CartService
	Tasks    *app.TaskService
	Checkout *app.CheckoutService
	Auth     *app.AuthService
}

// OIDCConfig holds a discovered SSO provider. The zero value disables SSO.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	catalog  *app.CatalogService
	carts    *app.CartService
	tasks    *app.TaskService
	checkout *app.CheckoutService
	authSvc  *app.AuthService

	oidcConfig      OIDCConfig
	trustRemoteUser bool
	webDir          string
	logger          *log.Logger
	metrics         *metrics
}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string) *Server {
	return &Server{
		catalog:  svc.Catalog,
		carts:    svc.Carts,
		tasks:    svc.Tasks,
		checkout: svc.Checkout,
		authSvc:  svc.Auth,
		webDir:   webDir,
		logger:   log.StandardLogger(),
		metrics:  newMetrics(),
	}
}

// WithOIDC enables single sign-on through cfg.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithForwardAuth trusts the Remote-User header set by an authenticating
// reverse proxy.
func (s *Server) WithForwardAuth() *Server {
	s.trustRemoteUser = true
	return s
}

// WithLogger replaces the access logger.
func (s *Server) WithLogger(l *log.Logger) *Server {
	s.logger = l
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	s.route(api, "/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	s.route(api, "/catalog/products", s.handleProducts)
	s.route(api, "/catalog/products/{id}", s.handleProduct)
	s.route(api, "/catalog/categories", s.handleCategories)
	s.route(api, "/catalog/bundles", s.handleBundles)

	s.route(api, "/cart", s.handleCart)
	s.route(api, "/cart/items", s.handleCartItems)
	s.route(api, "/cart/items/{id}", s.handleCartItem)
	s.route(api, "/cart/bundles/{id}", s.handleCartBundle)
	s.route(api, "/cart/clear", s.handleCartClear)
	s.route(api, "/cart/toggle", s.handleCartToggle)
	s.route(api, "/cart/open", s.handleCartOpen)

	s.route(api, "/tasks", s.handleTasks)
	s.route(api, "/tasks/{id}", s.handleTask)
	s.route(api, "/tasks/{id}/completion", s.handleTaskCompletion)
	s.route(api, "/progress", s.handleProgress)

	s.route(api, "/checkout/summary", s.handleCheckoutSummary)
	s.route(api, "/checkout/orders", s.handleOrders)

	s.route(api, "/auth/login", s.handleLogin)
	s.route(api, "/auth/logout", s.handleLogout)
	s.route(api, "/auth/setup", s.handleSetupUser)
	s.route(api, "/auth/me", s.handleMe)
	s.route(api, "/auth/config", s.handleConfig)
	s.route(api, "/auth/sso/login", s.handleSSOLogin)
	s.route(api, "/auth/sso/callback", s.handleSSOCallback)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", s.workspaceMiddleware(s.userMiddleware(api))))
	root.Handle("/metrics", s.metrics.handler())
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}

// route registers h on mux with request metrics labelled by pattern.
func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.metrics.instrument(pattern, h))
}
