package webark

import (
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const maxMessageLen = 5000

func (a *App) handleContact(c echo.Context) error {
	return a.renderContact(c, http.StatusOK, ContactForm{
		Service: c.QueryParam("service"),
		Subject: c.QueryParam("subject"),
	})
}

func (a *App) handleContactSubmit(c echo.Context) error {
	form := ContactForm{
		Name:    strings.TrimSpace(c.FormValue("name")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		Phone:   strings.TrimSpace(c.FormValue("phone")),
		Subject: strings.TrimSpace(c.FormValue("subject")),
		Service: strings.TrimSpace(c.FormValue("service")),
		Message: strings.TrimSpace(c.FormValue("message")),
	}
	if errs := form.Validate(); len(errs) > 0 {
		form.Errors = errs
		return a.renderContact(c, http.StatusUnprocessableEntity, form)
	}

	id, err := a.Store.SaveMessage(c.Request().Context(), Message{
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Subject:   form.Subject,
		Service:   form.Service,
		Body:      form.Message,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	a.log.Info("contact message stored", zap.Int64("id", id), zap.String("service", form.Service))
	flash(c, NoticeSuccess, "Message sent. We'll get back to you soon.")
	return c.Redirect(http.StatusSeeOther, "/contact/")
}

// Validate returns field errors keyed by form field name.
func (f ContactForm) Validate() map[string]string {
	errs := make(map[string]string)
	if f.Name == "" {
		errs["name"] = "Name is required."
	}
	if f.Email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs["email"] = "Enter a valid email address."
	}
	if f.Message == "" {
		errs["message"] = "Message is required."
	} else if len(f.Message) > maxMessageLen {
		errs["message"] = "Message is too long."
	}
	return errs
}

func (a *App) renderContact(c echo.Context, code int, form ContactForm) error {
	services := a.Content.Services.List(c.Request().Context())
	return RenderStatus(c, code, a.Views.Contact(ContactPage{
		Layout:   a.layout(c, "Contact", ""),
		Form:     form,
		Services: services.Value,
	}))
}

func (a *App) handleMessages(c echo.Context) error {
	msgs, err := a.Store.ListMessages(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminMessages(AdminMessagesPage{
		Layout:   a.layout(c, "Messages", ""),
		Messages: msgs,
	}))
}
