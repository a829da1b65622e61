// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Content modes select where the site document lives.
const (
	ModeMongo  = "mongo"  // MongoDB is authoritative and this service hosts /data
	ModeRemote = "remote" // another service's /data endpoint is authoritative
	ModeLocal  = "local"  // the local cache file is authoritative
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: stratascout-session)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// AdminPassword is the shared editor secret, plaintext or a bcrypt hash.
	AdminPassword string

	// Content backend
	ContentMode        string        // mongo, remote or local
	RemoteURL          string        // /data endpoint consumed in remote mode
	RemotePollInterval time.Duration // how often remote content is re-read (default: 1m)
	CacheDir           string        // directory holding scoutGroupData.json
	CacheWatch         bool          // watch the cache file for writes by other processes
	SeedFile           string        // optional YAML document merged over the defaults on first start

	// Rate limiting configuration
	RateLimitEnabled  bool          // Enable throttling of wrong passwords (default: true)
	RateLimitAttempts int           // Max failed attempts before lockout (default: 5)
	RateLimitWindow   time.Duration // Time window for counting failed attempts (default: 15m)
	RateLimitLockout  time.Duration // Lockout duration after exceeding limit (default: 15m)

	// Audit logging configuration
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	AuditLogAuth    string // Sign-in, lockout and sign-out events
	AuditLogContent string // Content edits, API saves and contact messages

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name

	// Contact form
	ContactNotifyTo  string        // recipient for new contact messages (blank disables mail)
	ContactRetention time.Duration // read messages older than this are removed (0 keeps them)
	BaseURL          string        // public site URL, used for links in notification mail
}
