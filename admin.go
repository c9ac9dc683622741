package webark

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/webark/webark/content"
)

const newID = "new"

func (a *App) handleAdmin(c echo.Context) error {
	if !a.IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(AdminLoginPage{Layout: a.layout(c, "Admin", "")}))
	}
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard/")
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	g, err := a.guard(c)
	if err != nil {
		return err
	}
	ok, err := g.Login(c.FormValue("password"))
	if err != nil {
		return err
	}
	if !ok {
		a.loginLimiter.Record(ip)
		a.log.Warn("admin login failed", zap.String("ip", ip))
		return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(AdminLoginPage{
			Layout:    a.layout(c, "Admin", ""),
			ShowError: true,
		}))
	}
	a.log.Info("admin login", zap.String("ip", ip))
	return c.Redirect(http.StatusSeeOther, "/admin/dashboard/")
}

func (a *App) handleAdminLogout(c echo.Context) error {
	g, err := a.guard(c)
	if err != nil {
		return err
	}
	if err := g.Logout(); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// loadDashboard gathers the overview counts concurrently. Remote failures
// become warnings; local failures abort.
func (a *App) loadDashboard(ctx context.Context) (Dashboard, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	d := Dashboard{
		BlogCount:   a.Content.Blog.Count(),
		CareerCount: a.Content.Careers.Count(),
	}
	var work content.Result[[]content.WorkItem]
	var services content.Result[[]content.Service]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		work = a.Content.Work.List(gctx)
		return nil
	})
	g.Go(func() error {
		services = a.Content.Services.List(gctx)
		return nil
	})
	g.Go(func() error {
		n, err := a.Store.CountMessages(gctx)
		d.MessageCount = n
		return err
	})
	g.Go(func() error {
		n, err := a.Store.CountImages(gctx)
		d.ImageCount = n
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d.WorkCount = len(work.Value)
	d.ServiceCount = len(services.Value)
	if !work.OK() {
		d.Warnings = append(d.Warnings, "Work items could not be loaded from the server.")
	}
	if !services.OK() {
		d.Warnings = append(d.Warnings, "Services could not be loaded from the server.")
	}
	if active := a.Content.Careers.Active(ctx); active.OK() {
		d.ActiveCareers = len(active.Value)
	}
	d.RecentPosts = a.Content.Blog.Latest(ctx, 5).Value
	return d, nil
}

func (a *App) handleDashboard(c echo.Context) error {
	d, err := a.loadDashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(AdminDashboardPage{
		Layout:    a.layout(c, "Dashboard", ""),
		Dashboard: d,
	}))
}

// --- blog ---

func (a *App) handleAdminBlog(c echo.Context) error {
	posts := a.Content.Blog.Latest(c.Request().Context(), 0)
	return Render(c, a.Views.AdminBlog(AdminBlogPage{
		Layout: a.layout(c, "Blog posts", ""),
		Posts:  posts.Value,
	}))
}

func (a *App) handleAdminBlogEdit(c echo.Context) error {
	id := c.Param("id")
	if id == newID {
		return Render(c, a.Views.AdminBlogForm(AdminBlogForm{Layout: a.layout(c, "New post", ""), IsNew: true}))
	}
	res := a.Content.Blog.Get(c.Request().Context(), id)
	if res.Status == content.StatusNotFound {
		return echo.ErrNotFound
	}
	return Render(c, a.Views.AdminBlogForm(AdminBlogForm{Layout: a.layout(c, "Edit post", ""), Post: res.Value}))
}

func (a *App) handleAdminBlogSave(c echo.Context) error {
	post := content.BlogPost{
		ID:            strings.TrimSpace(c.FormValue("id")),
		Title:         c.FormValue("title"),
		Slug:          content.Slugify(c.FormValue("slug")),
		Content:       c.FormValue("content"),
		Excerpt:       strings.TrimSpace(c.FormValue("excerpt")),
		FeaturedImage: strings.TrimSpace(c.FormValue("featuredImage")),
		Category:      strings.TrimSpace(c.FormValue("category")),
		Author:        strings.TrimSpace(c.FormValue("author")),
		Date:          strings.TrimSpace(c.FormValue("date")),
		Tags:          SplitList(c.FormValue("tags")),
		Featured:      c.FormValue("featured") != "",
	}
	if post.Date != "" {
		if _, err := time.Parse("2006-01-02", post.Date); err != nil {
			return a.rejectBlogForm(c, post, "Invalid date format. Use YYYY-MM-DD.")
		}
	}
	res := a.Content.Blog.Save(c.Request().Context(), post)
	if !res.OK() {
		return a.rejectBlogForm(c, post, saveFailureText(res.Err))
	}
	flash(c, NoticeSuccess, "Post saved.")
	return c.Redirect(http.StatusSeeOther, "/admin/blog/")
}

func (a *App) rejectBlogForm(c echo.Context, post content.BlogPost, msg string) error {
	l := a.layout(c, "Edit post", "")
	l.Notices = append(l.Notices, Notice{Kind: NoticeError, Text: msg})
	return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.AdminBlogForm(AdminBlogForm{
		Layout: l,
		Post:   post,
		IsNew:  post.ID == "",
	}))
}

func (a *App) handleAdminBlogDelete(c echo.Context) error {
	res := a.Content.Blog.Delete(c.Request().Context(), c.Param("id"))
	notifyDelete(c, res, "Post")
	return c.Redirect(http.StatusSeeOther, "/admin/blog/")
}

// --- careers ---

func (a *App) handleAdminCareers(c echo.Context) error {
	jobs := a.Content.Careers.List(c.Request().Context())
	return Render(c, a.Views.AdminCareers(AdminCareersPage{
		Layout: a.layout(c, "Careers", ""),
		Jobs:   jobs.Value,
	}))
}

func (a *App) handleAdminCareerEdit(c echo.Context) error {
	id := c.Param("id")
	if id == newID {
		return Render(c, a.Views.AdminCareer(AdminCareerForm{
			Layout: a.layout(c, "New posting", ""),
			Job:    content.JobPosting{IsActive: true},
			IsNew:  true,
		}))
	}
	res := a.Content.Careers.Get(c.Request().Context(), id)
	if res.Status == content.StatusNotFound {
		return echo.ErrNotFound
	}
	return Render(c, a.Views.AdminCareer(AdminCareerForm{Layout: a.layout(c, "Edit posting", ""), Job: res.Value}))
}

func (a *App) handleAdminCareerSave(c echo.Context) error {
	job := content.JobPosting{
		ID:               strings.TrimSpace(c.FormValue("id")),
		Title:            c.FormValue("title"),
		Department:       strings.TrimSpace(c.FormValue("department")),
		Location:         strings.TrimSpace(c.FormValue("location")),
		Type:             strings.TrimSpace(c.FormValue("type")),
		Description:      strings.TrimSpace(c.FormValue("description")),
		Requirements:     FilterEmpty(strings.Split(c.FormValue("requirements"), "\n")),
		Responsibilities: FilterEmpty(strings.Split(c.FormValue("responsibilities"), "\n")),
		Posted:           strings.TrimSpace(c.FormValue("posted")),
		Deadline:         strings.TrimSpace(c.FormValue("deadline")),
		IsActive:         c.FormValue("isActive") != "",
	}
	res := a.Content.Careers.Save(c.Request().Context(), job)
	if !res.OK() {
		l := a.layout(c, "Edit posting", "")
		l.Notices = append(l.Notices, Notice{Kind: NoticeError, Text: saveFailureText(res.Err)})
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.AdminCareer(AdminCareerForm{
			Layout: l,
			Job:    job,
			IsNew:  job.ID == "",
		}))
	}
	flash(c, NoticeSuccess, "Job posting saved.")
	return c.Redirect(http.StatusSeeOther, "/admin/careers/")
}

func (a *App) handleAdminCareerDelete(c echo.Context) error {
	res := a.Content.Careers.Delete(c.Request().Context(), c.Param("id"))
	notifyDelete(c, res, "Job posting")
	return c.Redirect(http.StatusSeeOther, "/admin/careers/")
}

// --- work ---

func (a *App) handleAdminWork(c echo.Context) error {
	res := a.Content.Work.List(c.Request().Context())
	return Render(c, a.Views.AdminWork(AdminWorkPage{
		Layout:   a.layout(c, "Work", ""),
		Items:    res.Value,
		Degraded: !res.OK(),
	}))
}

func (a *App) handleAdminWorkEdit(c echo.Context) error {
	ctx := c.Request().Context()
	services := a.Content.Services.List(ctx)
	id := c.Param("id")
	if id == newID {
		return Render(c, a.Views.AdminWorkForm(AdminWorkForm{
			Layout:   a.layout(c, "New work item", ""),
			Services: services.Value,
			IsNew:    true,
		}))
	}
	res := a.Content.Work.Get(ctx, id)
	switch res.Status {
	case content.StatusNotFound:
		return echo.ErrNotFound
	case content.StatusDegraded:
		return echo.NewHTTPError(http.StatusBadGateway).SetInternal(res.Err)
	}
	return Render(c, a.Views.AdminWorkForm(AdminWorkForm{
		Layout:   a.layout(c, "Edit work item", ""),
		Item:     res.Value,
		Services: services.Value,
	}))
}

func (a *App) handleAdminWorkSave(c echo.Context) error {
	ctx := c.Request().Context()
	item := content.WorkItem{
		ID:           strings.TrimSpace(c.FormValue("id")),
		Title:        strings.TrimSpace(c.FormValue("title")),
		Description:  strings.TrimSpace(c.FormValue("description")),
		ServiceID:    strings.TrimSpace(c.FormValue("serviceId")),
		Link:         strings.TrimSpace(c.FormValue("link")),
		Image:        strings.TrimSpace(c.FormValue("image")),
		Date:         strings.TrimSpace(c.FormValue("date")),
		Featured:     c.FormValue("featured") != "",
		Client:       strings.TrimSpace(c.FormValue("client")),
		Technologies: SplitList(c.FormValue("technologies")),
	}
	if item.Technologies == nil {
		item.Technologies = []string{}
	}
	res := a.Content.Work.Save(ctx, item)
	if !res.OK() {
		l := a.layout(c, "Edit work item", "")
		l.Notices = append(l.Notices, Notice{Kind: NoticeError, Text: saveFailureText(res.Err)})
		return RenderStatus(c, http.StatusBadGateway, a.Views.AdminWorkForm(AdminWorkForm{
			Layout:   l,
			Item:     item,
			Services: a.Content.Services.List(ctx).Value,
			IsNew:    item.ID == "",
		}))
	}
	flash(c, NoticeSuccess, "Work item saved.")
	return c.Redirect(http.StatusSeeOther, "/admin/work/")
}

func (a *App) handleAdminWorkDelete(c echo.Context) error {
	res := a.Content.Work.Delete(c.Request().Context(), c.Param("id"))
	notifyDelete(c, res, "Work item")
	return c.Redirect(http.StatusSeeOther, "/admin/work/")
}

// --- services ---

func (a *App) handleAdminServices(c echo.Context) error {
	res := a.Content.Services.List(c.Request().Context())
	return Render(c, a.Views.AdminServices(AdminServicesPage{
		Layout:   a.layout(c, "Services", ""),
		Services: res.Value,
		Degraded: !res.OK(),
	}))
}

func (a *App) handleAdminServiceSave(c echo.Context) error {
	ctx := c.Request().Context()
	svc := content.Service{
		ID:               strings.TrimSpace(c.FormValue("id")),
		Title:            strings.TrimSpace(c.FormValue("title")),
		ShortDescription: strings.TrimSpace(c.FormValue("shortDescription")),
		Description:      strings.TrimSpace(c.FormValue("description")),
		Icon:             strings.TrimSpace(c.FormValue("icon")),
		Image:            strings.TrimSpace(c.FormValue("image")),
		Features:         FilterEmpty(strings.Split(c.FormValue("features"), "\n")),
	}
	if svc.ID != "" {
		// The form does not edit portfolio items; carry them over.
		if cur := a.Content.Services.Get(ctx, svc.ID); cur.OK() {
			svc.PortfolioItems = cur.Value.PortfolioItems
		}
	}
	res := a.Content.Services.Save(ctx, svc)
	if !res.OK() {
		flash(c, NoticeError, saveFailureText(res.Err))
	} else {
		flash(c, NoticeSuccess, "Service saved.")
	}
	return c.Redirect(http.StatusSeeOther, "/admin/services/")
}

// notifyDelete flashes the outcome of a delete.
func notifyDelete(c echo.Context, res content.Result[bool], what string) {
	switch res.Status {
	case content.StatusOK:
		flash(c, NoticeSuccess, what+" deleted.")
	case content.StatusNotFound:
		flash(c, NoticeWarning, what+" was already gone.")
	default:
		flash(c, NoticeError, "Delete failed: "+res.Err.Error())
	}
}

func saveFailureText(err error) string {
	var verr *content.ValidationError
	if errors.As(err, &verr) {
		if verr.Field == "" {
			return "Save failed: " + verr.Msg + "."
		}
		return strings.ToUpper(verr.Field[:1]) + verr.Field[1:] + " " + verr.Msg + "."
	}
	if err == nil {
		return "Save failed."
	}
	return "Save failed: " + err.Error()
}
