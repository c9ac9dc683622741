package webark

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// layout builds the shared page chrome. It drains pending flash notices, so
// call it once per rendered page.
func (a *App) layout(c echo.Context, title, description string) Layout {
	l := Layout{
		Site: a.Config.Info(),
		Meta: PageMeta{
			Title:       title,
			Description: description,
			URL:         BuildURL(a.Config.URL, c.Request().URL.Path),
			OGType:      "website",
		},
		Path:      c.Request().URL.Path,
		CSRFToken: CsrfToken(c),
		IsAdmin:   a.IsAdmin(c),
		Notices:   takeFlashes(c),
	}
	if l.Meta.Description == "" {
		l.Meta.Description = a.Config.Description
	}
	if cart, err := a.cartFor(c); err == nil {
		l.CartCount = cart.TotalItems()
	} else {
		a.log.Warn("load cart for layout", zap.Error(err))
	}
	return l
}
