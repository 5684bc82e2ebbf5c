package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/internal/service"
	"github.com/Ihsas01/admin-project-management/internal/store"
	"github.com/Ihsas01/admin-project-management/pkg/httpx"
	"github.com/Ihsas01/admin-project-management/pkg/jwtx"
	"github.com/Ihsas01/admin-project-management/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	UserService    *service.UserService
	ProjectService *service.ProjectService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerProjects()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /invites - admin operation, moderate rate limit by user
	inviteHandler := &InviteCreateHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/invites",
		httpx.Chain(inviteHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(domain.RoleAdmin.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /register - public signup endpoint, strict rate limit by IP
	redeemHandler := &InviteRedeemHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(redeemHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	adminOnly := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(domain.RoleAdmin.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/users", adminOnly(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/users/{id}", adminOnly(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PATCH /v1/users/{id}/role", adminOnly(http.HandlerFunc(h.HandleUpdateRole)))
	r.Mux.Handle("PATCH /v1/users/{id}/status", adminOnly(http.HandlerFunc(h.HandleUpdateStatus)))
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectService: r.ProjectService}

	// Reads are open to every authenticated role; writes need ADMIN or
	// MANAGER.
	authenticated := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}
	managers := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole(domain.RoleAdmin.String(), domain.RoleManager.String()),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/projects", authenticated(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /v1/projects/{id}", authenticated(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("POST /v1/projects", managers(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PATCH /v1/projects/{id}", managers(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /v1/projects/{id}", managers(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll these frequently, so limits are lenient.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
