package webark

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/webark/webark/cart"
)

func (a *App) handleCart(c echo.Context) error {
	crt, err := a.cartFor(c)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Cart(CartPage{
		Layout:     a.layout(c, "Cart", ""),
		Items:      crt.Items(),
		TotalItems: crt.TotalItems(),
		TotalPrice: crt.TotalPrice(),
	}))
}

// handleCartAdd adds one of a service package. Price comes from the form,
// as the catalogue has no prices of its own.
func (a *App) handleCartAdd(c echo.Context) error {
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	crt, err := a.cartFor(c)
	if err != nil {
		return err
	}
	item := cart.Item{
		ID:    id,
		Name:  strings.TrimSpace(c.FormValue("name")),
		Price: price,
		Image: c.FormValue("image"),
	}
	if err := crt.Add(item); err != nil {
		return err
	}
	flash(c, NoticeSuccess, "Added "+item.Name+" to your cart.")
	return c.Redirect(http.StatusSeeOther, redirectTarget(c, "/cart/"))
}

func (a *App) handleCartUpdate(c echo.Context) error {
	n, err := strconv.Atoi(c.FormValue("quantity"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	crt, err := a.cartFor(c)
	if err != nil {
		return err
	}
	if err := crt.SetQuantity(c.FormValue("id"), n); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cart/")
}

func (a *App) handleCartRemove(c echo.Context) error {
	crt, err := a.cartFor(c)
	if err != nil {
		return err
	}
	if err := crt.Remove(c.FormValue("id")); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/cart/")
}

func (a *App) handleCartClear(c echo.Context) error {
	crt, err := a.cartFor(c)
	if err != nil {
		return err
	}
	if err := crt.Clear(); err != nil {
		return err
	}
	flash(c, NoticeSuccess, "Cart cleared.")
	return c.Redirect(http.StatusSeeOther, "/cart/")
}

// redirectTarget returns the form's "next" path when it is local. Browsers
// read a backslash as a slash and drop tabs and newlines, so any of those
// could turn "/..." into a protocol-relative URL.
func redirectTarget(c echo.Context, fallback string) string {
	next := c.FormValue("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}
	if strings.ContainsFunc(next, func(r rune) bool { return r == '\\' || r < 0x20 || r == 0x7f }) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return fallback
	}
	return next
}
