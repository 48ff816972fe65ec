// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database paths, object storage, email
// delivery, rate limiting, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// StorageConfig defines the MinIO-compatible object store used for form
// attachments. AccessKey/SecretKey are service-role credentials; they are
// never exposed to clients, which only ever see short-lived presigned URLs.
type StorageConfig struct {
	Endpoint  string        // STORAGE_ENDPOINT (e.g. "minio:9000")
	AccessKey string        // STORAGE_ACCESS_KEY
	SecretKey string        // STORAGE_SECRET_KEY
	Bucket    string        // STORAGE_BUCKET (e.g. "form-files")
	UseSSL    bool          // STORAGE_USE_SSL
	UploadTTL time.Duration // STORAGE_UPLOAD_TTL: presigned URL lifetime
}

// EmailConfig defines the transactional email provider used to relay
// submissions to the form owner's configured recipient.
type EmailConfig struct {
	APIKey      string // EMAIL_API_KEY (Resend)
	FromAddress string // EMAIL_FROM (e.g. "noreply@example.com")
}

// AuthConfig defines the hosted auth provider. Sessions, signup, and token
// issuance are entirely the provider's business; this service only verifies
// tokens and one-time confirmation hashes against it.
type AuthConfig struct {
	URL    string // AUTH_URL (provider base URL)
	APIKey string // AUTH_API_KEY (public/anon key sent with every call)
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-forms-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath      string // SQLite path
	AppBaseURL  string // absolute base URL for links (QR codes, redirects, emails)
	DefaultLang string // fallback language tag for emails and redirects

	// Rate limiting
	RateRPS          float64       // tokens per second (>= 0)
	RateBurst        int           // bucket size (>= 1)
	ConfirmRateMax   int           // auth-confirm attempts per IP per window
	ConfirmRateEvery time.Duration // auth-confirm fixed window length

	// Listing cache
	CommentCacheTTL time.Duration // staleness bound for the comments listing cache

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// External services
	Storage StorageConfig
	Email   EmailConfig
	Auth    AuthConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api")),

		// App
		DBPath:      getenv("DB_PATH", "app.db"),
		AppBaseURL:  strings.TrimRight(getenv("APP_BASE_URL", "http://localhost:8080"), "/"),
		DefaultLang: getenv("DEFAULT_LANG", "zh-CN"),

		// Rate limiting
		RateRPS:          getfloat("RATE_RPS", 5.0),
		RateBurst:        getint("RATE_BURST", 10),
		ConfirmRateMax:   getint("CONFIRM_RATE_MAX", 10),
		ConfirmRateEvery: getdur("CONFIRM_RATE_WINDOW", time.Minute),

		// Listing cache
		CommentCacheTTL: getdur("COMMENT_CACHE_TTL", 5*time.Minute),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// External services
		Storage: StorageConfig{
			Endpoint:  getenv("STORAGE_ENDPOINT", ""),
			AccessKey: getenv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getenv("STORAGE_SECRET_KEY", ""),
			Bucket:    getenv("STORAGE_BUCKET", "form-files"),
			UseSSL:    getbool("STORAGE_USE_SSL", true),
			UploadTTL: getdur("STORAGE_UPLOAD_TTL", 15*time.Minute),
		},
		Email: EmailConfig{
			APIKey:      getenv("EMAIL_API_KEY", ""),
			FromAddress: getenv("EMAIL_FROM", "onboarding@resend.dev"),
		},
		Auth: AuthConfig{
			URL:    strings.TrimRight(getenv("AUTH_URL", ""), "/"),
			APIKey: getenv("AUTH_API_KEY", ""),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-forms-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.AppBaseURL) == "" {
		return cfg, errors.New("APP_BASE_URL must not be empty")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.ConfirmRateMax < 1 {
		return cfg, errors.New("CONFIRM_RATE_MAX must be >= 1")
	}
	if cfg.ConfirmRateEvery <= 0 {
		return cfg, errors.New("CONFIRM_RATE_WINDOW must be > 0")
	}
	if cfg.CommentCacheTTL <= 0 {
		return cfg, errors.New("COMMENT_CACHE_TTL must be > 0")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if strings.TrimSpace(cfg.Storage.Bucket) == "" {
		return cfg, errors.New("STORAGE_BUCKET must not be empty")
	}
	if cfg.Storage.UploadTTL <= 0 {
		return cfg, errors.New("STORAGE_UPLOAD_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
