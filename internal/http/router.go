// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/skatsaros/go-forms-backend/internal/auth"
	"github.com/skatsaros/go-forms-backend/internal/config"
	"github.com/skatsaros/go-forms-backend/internal/email"
	"github.com/skatsaros/go-forms-backend/internal/http/handlers"
	"github.com/skatsaros/go-forms-backend/internal/http/middleware"
	"github.com/skatsaros/go-forms-backend/internal/services"
	"github.com/skatsaros/go-forms-backend/internal/storage"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, the edge session filter, health and metrics
// endpoints, and then mounts the public and authenticated API surfaces.
//
// store may be nil when no object store is configured; attachment endpoints
// then answer 503 while the rest of the API keeps working.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS, security headers, gzip
//  9. Edge session filter (page redirects, before routing)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store storage.ObjectStore, mailer email.Sender, provider auth.Provider, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (bearer tokens and confirmation
	// hashes must never reach the logs)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"apikey",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB; files go straight to the object
	// store, never through this API)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
		CSP:          "default-src 'self'; img-src 'self' data:",
	}))

	// Compress JSON listings; QR PNGs are already compressed and gzip skips them
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedExtensions([]string{".png"})))

	// 9) Edge session filter: page-level redirects for browser navigation
	r.Use(middleware.EdgeFilter(middleware.EdgeFilterOptions{}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Interactive API docs (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/store/mailer
	formSvc := services.NewFormService(db)
	subSvc := services.NewSubmissionService(db, store, mailer)
	uploadSvc := services.NewUploadService(store)
	commentSvc := services.NewCommentService(db, cfg.CommentCacheTTL)
	h := handlers.New(formSvc, subSvc, uploadSvc, commentSvc, provider, cfg.AppBaseURL)

	// Auth confirmation runs outside the API prefix: it is the redirect
	// target of emailed links. A fixed window per IP slows brute-forcing of
	// token hashes.
	confirmRL := middleware.NewFixedWindow(cfg.ConfirmRateMax, cfg.ConfirmRateEvery)
	r.GET("/auth/confirm", func(c *gin.Context) {
		// Browser-facing endpoint: a tripped limit redirects instead of
		// answering 429 JSON.
		if !confirmRL.Allow(c.ClientIP()) {
			handlers.ConfirmAuthError(c, "rate_limited")
			c.Abort()
			return
		}
		c.Next()
	}, h.ConfirmAuth)

	apiBase := cfg.APIBasePath // e.g. "/api"
	api := groupWithPrefix(r, apiBase)

	// Public surface: anyone holding a share link
	{
		api.GET("/submit/:id", h.GetPublicForm)
		api.POST("/submit/:id", h.Submit)
		api.POST("/upload-url", h.CreateUploadURL)
	}

	// Authenticated surface
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(provider))
	{
		// Forms
		authed.POST("/forms", h.CreateForm)
		authed.GET("/forms", h.ListForms)
		authed.GET("/forms/:id", h.GetForm)
		authed.PUT("/forms/:id", h.UpdateForm)
		authed.DELETE("/forms/:id", h.DeleteForm)
		authed.GET("/forms/:id/submissions", h.ListFormSubmissions)
		authed.GET("/forms/:id/qr", h.FormQR)

		// Comment board
		authed.GET("/comments", h.ListComments)
		authed.POST("/comments", h.CreateComment)
		authed.GET("/comments/:id", h.GetComment)
		authed.PUT("/comments/:id", h.UpdateComment)
		authed.DELETE("/comments/:id", h.DeleteComment)
		authed.POST("/comments/:id/like", h.LikeComment)
		authed.DELETE("/comments/:id/like", h.UnlikeComment)
		authed.GET("/comments/:id/responses", h.ListCommentResponses)
		authed.POST("/comments/:id/responses", h.CreateCommentResponse)

		// Session teardown
		authed.POST("/auth/signout", h.SignOut)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
