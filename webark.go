// Package webark is the agency website: public pages over a content façade,
// a shopping cart, a contact form, and an admin area for editing content.
//
// Callers provide the page components via the ViewFuncs struct; webark owns
// the handler logic, middleware, and local persistence.
package webark

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/webark/webark/content"
	"github.com/webark/webark/kv"
	"github.com/webark/webark/remote"
)

// ViewFuncs holds the page components the handlers render. This is the
// inversion-of-control point that lets callers own every template.
type ViewFuncs struct {
	Home           func(HomePage) templ.Component
	Services       func(ServicesPage) templ.Component
	Service        func(ServicePage) templ.Component
	About          func(Layout) templ.Component
	Blog           func(BlogPage) templ.Component
	Post           func(PostPage) templ.Component
	Work           func(WorkPage) templ.Component
	Careers        func(CareersPage) templ.Component
	Contact        func(ContactPage) templ.Component
	Cart           func(CartPage) templ.Component
	PrivacyPolicy  func(Layout) templ.Component
	TermsOfService func(Layout) templ.Component

	AdminLogin     func(AdminLoginPage) templ.Component
	AdminDashboard func(AdminDashboardPage) templ.Component
	AdminBlog      func(AdminBlogPage) templ.Component
	AdminBlogForm  func(AdminBlogForm) templ.Component
	AdminCareers   func(AdminCareersPage) templ.Component
	AdminCareer    func(AdminCareerForm) templ.Component
	AdminWork      func(AdminWorkPage) templ.Component
	AdminWorkForm  func(AdminWorkForm) templ.Component
	AdminServices  func(AdminServicesPage) templ.Component
	AdminImages    func(AdminImagesPage) templ.Component
	AdminMessages  func(AdminMessagesPage) templ.Component

	NotFound    func(Layout) templ.Component
	ServerError func(Layout) templ.Component
}

// App wires the store, content façade, handlers, and middleware together.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Content *content.Facade
	Views   ViewFuncs

	log          *zap.Logger
	remote       content.RemoteAPI
	contentOpts  []content.Option
	registry     *prometheus.Registry
	state        *kv.SQLite
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	initialized  bool
}

// New creates an App with the given configuration and views. Nothing is
// opened until Init or Start.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		log:    zap.NewNop(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the database, builds the content façade, and registers
// middleware and routes. Start calls it when needed; tests call it directly
// and drive a.Echo through httptest.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("webark: init store: %w", err)
	}
	a.Store = store

	state, err := kv.NewSQLite(store.DB())
	if err != nil {
		return fmt.Errorf("webark: init state: %w", err)
	}
	a.state = state

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if a.remote == nil {
		metrics, err := remote.NewMetrics(a.registry)
		if err != nil {
			return fmt.Errorf("webark: register remote metrics: %w", err)
		}
		client, err := remote.New(a.Config.RemoteURL,
			remote.WithHTTPClient(&http.Client{Timeout: a.Config.RemoteTimeout}),
			remote.WithLogger(a.log.Named("remote")),
			remote.WithMetrics(metrics),
		)
		if err != nil {
			return fmt.Errorf("webark: init remote: %w", err)
		}
		a.remote = client
	}

	opts := append([]content.Option{content.WithLogger(a.log.Named("content"))}, a.contentOpts...)
	facade, err := content.NewFacade(a.remote, opts...)
	if err != nil {
		return fmt.Errorf("webark: init content: %w", err)
	}
	a.Content = facade

	a.loginLimiter = NewLoginLimiter(a.Config.LoginAttempts, a.Config.LoginWindow)

	if err := a.setupMiddleware(); err != nil {
		return err
	}
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

// Start initializes the app if needed and serves until the server stops.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.log.Info("listening", zap.String("addr", a.Config.Addr), zap.String("remote", a.Config.RemoteURL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the limiter goroutine and the database. Call it when the
// app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedAssets())))))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/metrics", a.metricsHandler())

	e.GET("/", a.handleHome)
	e.GET("/services/", a.handleServices)
	e.GET("/services/:id/", a.handleService)
	e.GET("/about/", a.handleAbout)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/work/", a.handleWork)
	e.GET("/careers/", a.handleCareers)
	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)
	e.GET("/privacy-policy/", a.handlePrivacy)
	e.GET("/terms-of-service/", a.handleTerms)

	e.GET("/cart/", a.handleCart)
	e.POST("/cart/add/", a.handleCartAdd)
	e.POST("/cart/update/", a.handleCartUpdate)
	e.POST("/cart/remove/", a.handleCartRemove)
	e.POST("/cart/clear/", a.handleCartClear)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", a.handleAdminLogout)

	admin := e.Group("/admin", a.requireAdmin)
	admin.GET("/dashboard/", a.handleDashboard)

	admin.GET("/blog/", a.handleAdminBlog)
	admin.GET("/blog/:id/", a.handleAdminBlogEdit)
	admin.POST("/blog/save/", a.handleAdminBlogSave)
	admin.DELETE("/blog/:id/", a.handleAdminBlogDelete)

	admin.GET("/careers/", a.handleAdminCareers)
	admin.GET("/careers/:id/", a.handleAdminCareerEdit)
	admin.POST("/careers/save/", a.handleAdminCareerSave)
	admin.DELETE("/careers/:id/", a.handleAdminCareerDelete)

	admin.GET("/work/", a.handleAdminWork)
	admin.GET("/work/:id/", a.handleAdminWorkEdit)
	admin.POST("/work/save/", a.handleAdminWorkSave)
	admin.DELETE("/work/:id/", a.handleAdminWorkDelete)

	admin.GET("/services/", a.handleAdminServices)
	admin.POST("/services/save/", a.handleAdminServiceSave)

	admin.GET("/images/", a.handleImageList)
	admin.POST("/images/upload/", a.handleImageUpload)
	admin.DELETE("/images/:filename/", a.handleImageDelete)

	admin.GET("/messages/", a.handleMessages)
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.log
}

// requestTimeout bounds the remote calls a single page makes.
const requestTimeout = 15 * time.Second
