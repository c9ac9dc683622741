package webark

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/webark/webark/content"
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	services := a.Content.Services.List(ctx)
	work := a.Content.Work.List(ctx)
	posts := a.Content.Blog.Latest(ctx, 3)

	return Render(c, a.Views.Home(HomePage{
		Layout:   a.layout(c, a.Config.Name, ""),
		Services: services.Value,
		Work:     featuredWork(work.Value, 3),
		Posts:    posts.Value,
		Degraded: !services.OK() || !work.OK(),
	}))
}

// featuredWork prefers items flagged featured and tops up with the rest.
func featuredWork(items []content.WorkItem, n int) []content.WorkItem {
	out := make([]content.WorkItem, 0, n)
	for _, it := range items {
		if it.Featured && len(out) < n {
			out = append(out, it)
		}
	}
	for _, it := range items {
		if !it.Featured && len(out) < n {
			out = append(out, it)
		}
	}
	return out
}

func (a *App) handleServices(c echo.Context) error {
	res := a.Content.Services.List(c.Request().Context())
	return Render(c, a.Views.Services(ServicesPage{
		Layout:   a.layout(c, "Services", ""),
		Services: res.Value,
		Degraded: !res.OK(),
	}))
}

func (a *App) handleService(c echo.Context) error {
	ctx := c.Request().Context()
	res := a.Content.Services.Get(ctx, c.Param("id"))
	switch res.Status {
	case content.StatusNotFound:
		return echo.ErrNotFound
	case content.StatusDegraded:
		return echo.NewHTTPError(http.StatusServiceUnavailable).SetInternal(res.Err)
	}
	work := a.Content.Work.ForService(ctx, res.Value.ID)
	return Render(c, a.Views.Service(ServicePage{
		Layout:   a.layout(c, res.Value.Title, res.Value.ShortDescription),
		Service:  res.Value,
		Work:     work.Value,
		Degraded: !work.OK(),
	}))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, a.Views.About(a.layout(c, "About", "")))
}

func (a *App) handleBlog(c echo.Context) error {
	ctx := c.Request().Context()
	category := c.QueryParam("category")
	posts := a.Content.Blog.ByCategory(ctx, category)
	cats := a.Content.Blog.Categories(ctx)
	featured := a.Content.Blog.Featured(ctx)

	return Render(c, a.Views.Blog(BlogPage{
		Layout:     a.layout(c, "Blog", ""),
		Posts:      posts.Value,
		Featured:   featured.Value,
		Categories: cats.Value,
		Category:   category,
	}))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	res := a.Content.Blog.GetBySlug(ctx, c.Param("slug"))
	if res.Status == content.StatusNotFound {
		return echo.ErrNotFound
	}
	post := res.Value
	all := a.Content.Blog.List(ctx)

	l := a.layout(c, post.Title, post.Excerpt)
	l.Meta.OGType = "article"
	return Render(c, a.Views.Post(PostPage{
		Layout:  l,
		Post:    post,
		Related: content.Related(post, all.Value),
	}))
}

func (a *App) handleWork(c echo.Context) error {
	ctx := c.Request().Context()
	var work content.Result[[]content.WorkItem]
	if svc := c.QueryParam("service"); svc != "" && svc != "all" {
		work = a.Content.Work.ForService(ctx, svc)
	} else {
		work = a.Content.Work.List(ctx)
	}
	services := a.Content.Services.List(ctx)

	return Render(c, a.Views.Work(WorkPage{
		Layout:   a.layout(c, "Our Work", ""),
		Items:    work.Value,
		Services: services.Value,
		Degraded: !work.OK() || !services.OK(),
	}))
}

func (a *App) handleCareers(c echo.Context) error {
	jobs := a.Content.Careers.Active(c.Request().Context())
	return Render(c, a.Views.Careers(CareersPage{
		Layout: a.layout(c, "Careers", ""),
		Jobs:   jobs.Value,
	}))
}

func (a *App) handlePrivacy(c echo.Context) error {
	return Render(c, a.Views.PrivacyPolicy(a.layout(c, "Privacy Policy", "")))
}

func (a *App) handleTerms(c echo.Context) error {
	return Render(c, a.Views.TermsOfService(a.layout(c, "Terms of Service", "")))
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	posts := a.Content.Blog.Latest(ctx, 0)
	services := a.Content.Services.List(ctx)
	return a.renderSitemap(c, posts.Value, services.Value)
}

func (a *App) handleFeed(c echo.Context) error {
	posts := a.Content.Blog.Latest(c.Request().Context(), 20)
	return a.renderRSS(c, posts.Value)
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Disallow: /cart/\n")
	fmt.Fprintf(&b, "Sitemap: %s/sitemap.xml\n", strings.TrimRight(a.Config.URL, "/"))
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.errorLayout(c, "Page not found")))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		_ = RenderStatus(c, code, a.Views.ServerError(a.errorLayout(c, "Something went wrong")))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

// errorLayout avoids touching sessions or the cart, which may be what failed.
func (a *App) errorLayout(c echo.Context, title string) Layout {
	return Layout{
		Site:      a.Config.Info(),
		Meta:      PageMeta{Title: title, OGType: "website"},
		Path:      c.Request().URL.Path,
		CSRFToken: CsrfToken(c),
	}
}
