package webark

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/webark/webark/auth"
	"github.com/webark/webark/cart"
	"github.com/webark/webark/content"
	"github.com/webark/webark/kv"
)

const (
	adminSession   = "admin_session"
	visitorSession = "visitor"
	flashSession   = "flash"
	visitorKey     = "id"
)

func (a *App) setupMiddleware() error {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())
	e.Pre(middleware.MethodOverrideWithConfig(middleware.MethodOverrideConfig{
		Getter: middleware.MethodFromForm("_method"),
	}))

	reqLog := a.log.Named("http")
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("ip", v.RemoteIP),
			}
			if v.Error != nil {
				reqLog.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			reqLog.Info("request", fields...)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	metrics, err := echoprometheus.MiddlewareConfig{
		Namespace:  "webark",
		Registerer: a.registry,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/") || c.Path() == "/metrics"
		},
		DoNotUseRequestPathFor404: true,
	}.ToMiddleware()
	if err != nil {
		return err
	}
	e.Use(metrics)

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'",
		HSTSMaxAge:            31536000,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:     middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.Config.CookieSecure,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public") ||
				path == "/sitemap.xml" || path == "/feed.xml" ||
				path == "/robots.txt" || path == "/metrics"
		},
	}))

	e.Use(cacheControlMiddleware)
	return nil
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case strings.HasPrefix(path, "/admin"), strings.HasPrefix(path, "/cart"),
			strings.HasPrefix(path, "/contact"), path == "/metrics":
			c.Response().Header().Set("Cache-Control", "no-store")
		default:
			// Pages carry the visitor's cart count, flashes and session cookie.
			c.Response().Header().Set("Cache-Control", "private, no-cache")
			c.Response().Header().Add(echo.HeaderVary, "Cookie")
		}
		return next(c)
	}
}

func (a *App) metricsHandler() echo.HandlerFunc {
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: a.registry})
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// guard returns the admin gate backed by the request's cookie session.
func (a *App) guard(c echo.Context) (*auth.Guard, error) {
	return auth.NewGuard(kv.NewSession(c, adminSession), a.Config.AdminPassword)
}

// IsAdmin reports whether the request carries an authenticated session.
func (a *App) IsAdmin(c echo.Context) bool {
	g, err := a.guard(c)
	if err != nil {
		return false
	}
	return g.IsAuthenticated()
}

func (a *App) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !a.IsAdmin(c) {
			return c.Redirect(http.StatusSeeOther, "/admin/")
		}
		return next(c)
	}
}

// visitorID returns the visitor's id, minting one on first use.
func visitorID(c echo.Context) (string, error) {
	s := kv.NewSession(c, visitorSession)
	id, ok, err := s.Get(visitorKey)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}
	id = content.NewID()
	if err := s.Set(visitorKey, id); err != nil {
		return "", err
	}
	return id, nil
}

// cartFor loads the visitor's cart from the shared state table.
func (a *App) cartFor(c echo.Context) (*cart.Cart, error) {
	id, err := visitorID(c)
	if err != nil {
		return nil, err
	}
	return cart.New(kv.WithPrefix(a.state, "visitor/"+id), cart.WithLogger(a.log.Named("cart")))
}

// flash queues a notice for the next rendered page.
func flash(c echo.Context, kind NoticeKind, text string) {
	sess, err := session.Get(flashSession, c)
	if err != nil {
		return
	}
	b, err := json.Marshal(Notice{Kind: kind, Text: text})
	if err != nil {
		return
	}
	sess.AddFlash(string(b))
	_ = sess.Save(c.Request(), c.Response())
}

// takeFlashes drains queued notices.
func takeFlashes(c echo.Context) []Notice {
	sess, err := session.Get(flashSession, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.Request(), c.Response())
	out := make([]Notice, 0, len(raw))
	for _, r := range raw {
		s, ok := r.(string)
		if !ok {
			continue
		}
		var n Notice
		if err := json.Unmarshal([]byte(s), &n); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
