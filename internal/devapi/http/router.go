package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/devapi/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"

	_ "github.com/aussiebroadwan/storefront/api/devapi" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	prefix       string
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	UserService  *service.UserService
	RolesService *service.RolesService

	// CredentialLimit guards register and login, SessionLimit the token
	// lookups. Set before ApplyRoutes to override the httpx profiles.
	CredentialLimit httpx.RateLimitConfig
	SessionLimit    httpx.RateLimitConfig
}

// NewRouter mounts every route under prefix, e.g. "/app". An empty prefix
// mounts at the root.
func NewRouter(prefix string, verifier jwtx.Verifier, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		prefix:       strings.TrimRight(prefix, "/"),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,

		CredentialLimit: httpx.StrictLimit,
		SessionLimit:    httpx.LenientLimit,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle(r.prefix+"/swagger/", httpSwagger.Handler(
		httpSwagger.URL(r.prefix+"/swagger/doc.json"),
	))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront Development API
//	@version		0.1.0
//	@description	Minimal shop backend for developing the storefront client: accounts, session tokens and role lookups.
//	@description
//	@description				Tokens are HS256 JWTs. Send them as "Authorization: Bearer {token}".
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/storefront
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/app
//
//	@schemes					http
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService:  r.UserService,
		RolesService: r.RolesService,
	}

	// Credential endpoints - strict rate limit by IP (brute force prevention)
	r.Mux.Handle("POST "+r.prefix+"/users/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.CredentialLimit),
		),
	)
	r.Mux.Handle("POST "+r.prefix+"/users/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.CredentialLimit),
		),
	)

	// Session lookups - the storefront calls these on navigation, so lenient
	r.Mux.Handle("GET "+r.prefix+"/users/loginToken",
		httpx.Chain(http.HandlerFunc(h.HandleLoginToken),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(r.SessionLimit),
		),
	)
	r.Mux.Handle("POST "+r.prefix+"/users/check-admin",
		httpx.Chain(http.HandlerFunc(h.HandleCheckAdmin),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(r.SessionLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET "+r.prefix+"/livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.SessionLimit),
		),
	)
}
