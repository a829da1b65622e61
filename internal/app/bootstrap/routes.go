// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	adminfeature "github.com/dalemusser/stratascout/internal/app/features/admin"
	contactfeature "github.com/dalemusser/stratascout/internal/app/features/contact"
	dataapifeature "github.com/dalemusser/stratascout/internal/app/features/dataapi"
	errorsfeature "github.com/dalemusser/stratascout/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/stratascout/internal/app/features/events"
	healthfeature "github.com/dalemusser/stratascout/internal/app/features/health"
	sitefeature "github.com/dalemusser/stratascout/internal/app/features/site"
	appresources "github.com/dalemusser/stratascout/internal/app/resources"
	"github.com/dalemusser/stratascout/internal/app/store/audit"
	messagestore "github.com/dalemusser/stratascout/internal/app/store/messages"
	"github.com/dalemusser/stratascout/internal/app/store/ratelimit"
	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/auditlog"
	"github.com/dalemusser/stratascout/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// requestTimeout bounds every route except the event stream.
const requestTimeout = 30 * time.Second

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Route groups:
//   - public site, preferences and contact form: session + CSRF
//   - /admin: session + CSRF, guarded by RequireAdmin
//   - /data: JSON sync API, open CORS, exempt from CSRF (password in body)
//   - /events: Server-Sent Events, exempt from CSRF and from the request timeout
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	// Create audit store and logger for security and content event tracking.
	auditStore := audit.New(deps.MongoDatabase)
	auditLogger := auditlog.New(auditStore, logger, auditlog.Config{
		Auth:    appCfg.AuditLogAuth,
		Content: appCfg.AuditLogContent,
	})

	// Rate limiting for wrong passwords. Left nil when disabled so the
	// handlers skip the checks.
	var adminLimiter adminfeature.Limiter
	var dataLimiter dataapifeature.Limiter
	if appCfg.RateLimitEnabled {
		rl := ratelimit.New(deps.MongoDatabase, appCfg.RateLimitAttempts, appCfg.RateLimitWindow, appCfg.RateLimitLockout)
		adminLimiter, dataLimiter = rl, rl
	}

	messages := messagestore.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	r.Use(chimw.RequestID)

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: loads the admin into context if signed in.
	r.Use(sessionMgr.LoadSessionAdmin)

	// CSRF protection with path-based exemption for the JSON and event routes.
	// Cookie name is "stratascout_csrf" to avoid collisions with other services
	// on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("stratascout_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	r.Use(csrfExempt(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...), "/data", "/events"))

	// Per-request application state (language, theme, admin session).
	r.Use(appstate.Middleware)

	// 404 page for unmatched routes. Set before mounting so the mounted
	// subrouters inherit it.
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	// ─────────────────────────────────────────────────────────────────────────────
	// Event stream: long-lived, so it is kept out of the timeout group.
	// ─────────────────────────────────────────────────────────────────────────────
	eventsHandler := eventsfeature.NewHandler(deps.Live.Hub(), logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	r.Group(func(r chi.Router) {
		// Request timeout middleware: prevents requests from hanging indefinitely.
		r.Use(chimw.Timeout(requestTimeout))

		// Health check endpoints for load balancers and orchestrators
		healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Live, appCfg.ContentMode, logger)
		r.Mount("/health", healthfeature.Routes(healthHandler))
		healthfeature.MountRootEndpoints(r, healthHandler)

		// /assets/* serves embedded assets (bundled into the binary)
		r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

		// Public site and preference toggles
		siteHandler := sitefeature.NewHandler(deps.Live, secure, logger)
		r.Mount("/", sitefeature.Routes(siteHandler))

		// Contact form
		notify := contactfeature.Notifier{InboxURL: appCfg.BaseURL + "/admin/messages"}
		if deps.Mailer != nil && appCfg.ContactNotifyTo != "" {
			notify.Sender = deps.Mailer
			notify.To = appCfg.ContactNotifyTo
		}
		contactHandler := contactfeature.NewHandler(messages, notify, auditLogger, logger)
		r.Mount("/contact", contactfeature.Routes(contactHandler))

		// Content editor
		adminHandler := adminfeature.NewHandler(adminfeature.Deps{
			Content:  deps.Live,
			Sessions: sessionMgr,
			Limiter:  adminLimiter,
			Inbox:    messages,
			Activity: auditStore,
			Audit:    auditLogger,
		}, errLog, logger)
		r.Mount("/admin", adminfeature.Routes(adminHandler, sessionMgr.RequireAdmin))

		// Sync API. In remote mode the authoritative endpoint lives elsewhere.
		if appCfg.ContentMode != ModeRemote {
			dataHandler := dataapifeature.NewHandler(deps.Live, dataLimiter, auditLogger, logger)
			r.Mount("/data", dataapifeature.Routes(dataHandler))
		}

		// Error pages
		r.Get("/forbidden", errorsHandler.Forbidden)
		r.Get("/unauthorized", errorsHandler.Unauthorized)
	})

	return r, nil
}

// csrfExempt applies protect to every request except those under the listed
// path prefixes.
func csrfExempt(protect func(http.Handler) http.Handler, prefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			for _, p := range prefixes {
				if req.URL.Path == p || len(req.URL.Path) > len(p) && req.URL.Path[:len(p)+1] == p+"/" {
					next.ServeHTTP(w, req)
					return
				}
			}
			protected.ServeHTTP(w, req)
		})
	}
}
