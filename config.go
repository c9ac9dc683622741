package webark

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/webark/webark/content"
	"github.com/webark/webark/remote"
)

// SiteConfig holds all configuration for a webark site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "WebArk")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and meta tags
	Email       string `yaml:"email"`       // Contact address shown in the footer

	Addr         string `yaml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `yaml:"database_path"` // SQLite path (default "data/webark.db")
	StaticDir    string `yaml:"static_dir"`    // User assets and uploads (default "public")

	RemoteURL     string        `yaml:"remote_url"`     // Content backend (default remote.DefaultBaseURL)
	RemoteTimeout time.Duration `yaml:"remote_timeout"` // Per-request timeout (default 10s)

	AdminPassword string `yaml:"admin_password"` // Required: admin login password
	SessionSecret string `yaml:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `yaml:"cookie_secure"`  // Set true for HTTPS

	LoginAttempts int           `yaml:"login_attempts"` // Failed logins allowed per window (default 5)
	LoginWindow   time.Duration `yaml:"login_window"`   // default 1m

	LogLevel string `yaml:"log_level"` // debug, info, warn, error (default "info")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "WebArk"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/webark.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.RemoteURL == "" {
		c.RemoteURL = remote.DefaultBaseURL
	}
	if c.RemoteTimeout == 0 {
		c.RemoteTimeout = 10 * time.Second
	}
	if c.LoginAttempts == 0 {
		c.LoginAttempts = 5
	}
	if c.LoginWindow == 0 {
		c.LoginWindow = time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Info returns the settings safe to hand to templates.
func (c SiteConfig) Info() SiteInfo {
	return SiteInfo{Name: c.Name, URL: c.URL, Description: c.Description, Email: c.Email}
}

// Validate reports missing required settings.
func (c SiteConfig) Validate() error {
	var errs []error
	if c.AdminPassword == "" {
		errs = append(errs, errors.New("webark: AdminPassword is required"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("webark: SessionSecret is required"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads path as YAML when it exists, then applies WEBARK_*
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("webark: read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("webark: parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *SiteConfig) applyEnv() error {
	strs := map[string]*string{
		"WEBARK_SITE_NAME":        &c.Name,
		"WEBARK_SITE_URL":         &c.URL,
		"WEBARK_SITE_DESCRIPTION": &c.Description,
		"WEBARK_SITE_EMAIL":       &c.Email,
		"WEBARK_ADDR":             &c.Addr,
		"WEBARK_DATABASE_PATH":    &c.DatabasePath,
		"WEBARK_STATIC_DIR":       &c.StaticDir,
		"WEBARK_REMOTE_URL":       &c.RemoteURL,
		"WEBARK_ADMIN_PASSWORD":   &c.AdminPassword,
		"WEBARK_SESSION_SECRET":   &c.SessionSecret,
		"WEBARK_LOG_LEVEL":        &c.LogLevel,
	}
	for key, dst := range strs {
		*dst = EnvOr(key, *dst)
	}
	if v := os.Getenv("WEBARK_COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("webark: WEBARK_COOKIE_SECURE: %w", err)
		}
		c.CookieSecure = b
	}
	if v := os.Getenv("WEBARK_LOGIN_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("webark: WEBARK_LOGIN_ATTEMPTS: %w", err)
		}
		c.LoginAttempts = n
	}
	if v := os.Getenv("WEBARK_LOGIN_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("webark: WEBARK_LOGIN_WINDOW: %w", err)
		}
		c.LoginWindow = d
	}
	if v := os.Getenv("WEBARK_REMOTE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("webark: WEBARK_REMOTE_TIMEOUT: %w", err)
		}
		c.RemoteTimeout = d
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger sets the application logger (default zap.NewNop()).
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// WithRemote replaces the backend client, e.g. with a test double.
func WithRemote(api content.RemoteAPI) Option {
	return func(a *App) {
		a.remote = api
	}
}

// WithContentOptions passes options through to content.NewFacade.
func WithContentOptions(opts ...content.Option) Option {
	return func(a *App) {
		a.contentOpts = append(a.contentOpts, opts...)
	}
}
