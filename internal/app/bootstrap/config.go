// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATASCOUT"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, content_mode, etc.
//   - Environment variables: STRATASCOUT_MONGO_URI, STRATASCOUT_CONTENT_MODE, etc.
//   - Command-line flags: --mongo_uri, --content_mode, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "stratascout", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "stratascout-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Editor secret
	{Name: "admin_password", Default: "admin2026", Desc: "Shared admin password, plaintext or a bcrypt hash"},

	// Content backend
	{Name: "content_mode", Default: ModeMongo, Desc: "Content backend: 'mongo', 'remote' or 'local'"},
	{Name: "remote_url", Default: "", Desc: "Remote /data endpoint (remote mode)"},
	{Name: "remote_poll_interval", Default: "1m", Desc: "How often the content is re-read to pick up external changes"},
	{Name: "cache_dir", Default: "./data", Desc: "Directory for the local content cache"},
	{Name: "cache_watch", Default: true, Desc: "Watch the cache file for writes by other processes"},
	{Name: "seed_file", Default: "", Desc: "YAML file merged over the default document on first start"},

	// Rate limiting configuration
	{Name: "rate_limit_enabled", Default: true, Desc: "Throttle repeated wrong passwords"},
	{Name: "rate_limit_attempts", Default: 5, Desc: "Max failed attempts before lockout"},
	{Name: "rate_limit_window", Default: "15m", Desc: "Time window for counting failed attempts"},
	{Name: "rate_limit_lockout", Default: "15m", Desc: "Lockout duration after exceeding limit"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_content", Default: "all", Desc: "Content event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@example.com", Desc: "From email address"},
	{Name: "mail_from_name", Default: "StrataScout", Desc: "From display name"},

	// Contact form
	{Name: "contact_notify_to", Default: "", Desc: "Email address notified of new contact messages (blank disables)"},
	{Name: "contact_retention", Default: "2160h", Desc: "Remove read contact messages older than this (0 keeps them)"},
	{Name: "base_url", Default: "http://localhost:8080", Desc: "Public site URL used in notification links"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STRATASCOUT_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),

		CSRFKey:       appValues.String("csrf_key"),
		AdminPassword: appValues.String("admin_password"),

		// Content backend
		ContentMode:        strings.ToLower(strings.TrimSpace(appValues.String("content_mode"))),
		RemoteURL:          strings.TrimSpace(appValues.String("remote_url")),
		RemotePollInterval: appValues.Duration("remote_poll_interval", time.Minute),
		CacheDir:           appValues.String("cache_dir"),
		CacheWatch:         appValues.Bool("cache_watch"),
		SeedFile:           appValues.String("seed_file"),

		// Rate limiting
		RateLimitEnabled:  appValues.Bool("rate_limit_enabled"),
		RateLimitAttempts: appValues.Int("rate_limit_attempts"),
		RateLimitWindow:   appValues.Duration("rate_limit_window", 15*time.Minute),
		RateLimitLockout:  appValues.Duration("rate_limit_lockout", 15*time.Minute),

		// Audit logging
		AuditLogAuth:    appValues.String("audit_log_auth"),
		AuditLogContent: appValues.String("audit_log_content"),

		// Email/SMTP
		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		// Contact form
		ContactNotifyTo:  strings.TrimSpace(appValues.String("contact_notify_to")),
		ContactRetention: appValues.Duration("contact_retention", 90*24*time.Hour),
		BaseURL:          strings.TrimRight(appValues.String("base_url"), "/"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.ContentMode {
	case ModeMongo, ModeLocal:
	case ModeRemote:
		if appCfg.RemoteURL == "" {
			return fmt.Errorf("content_mode %q requires remote_url", ModeRemote)
		}
		u, err := url.Parse(appCfg.RemoteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid remote_url %q", appCfg.RemoteURL)
		}
	default:
		return fmt.Errorf("unknown content_mode %q (want mongo, remote or local)", appCfg.ContentMode)
	}

	if strings.TrimSpace(appCfg.AdminPassword) == "" {
		return fmt.Errorf("admin_password must not be empty")
	}
	if !auditlog.Valid(appCfg.AuditLogAuth) || !auditlog.Valid(appCfg.AuditLogContent) {
		return fmt.Errorf("audit_log_auth and audit_log_content must be one of all, db, log, off")
	}
	if appCfg.AdminPassword == "admin2026" && coreCfg.Env == "prod" {
		logger.Warn("admin_password is the default; set STRATASCOUT_ADMIN_PASSWORD")
	}

	return nil
}
