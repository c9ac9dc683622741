// Package views is the stock look of a webark site: one html/template file
// per page, wrapped as templ components so they plug into webark.ViewFuncs.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/webark/webark"
	"github.com/webark/webark/cart"
	"github.com/webark/webark/content"
	"github.com/webark/webark/markdown"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"markdown": func(src string) (template.HTML, error) {
		s, err := markdown.ToHTML(src)
		return template.HTML(s), err
	},
	"money": func(v float64) string {
		return fmt.Sprintf("$%.2f", v)
	},
	"lineTotal": func(it cart.Item) float64 {
		return it.Price * float64(it.Quantity)
	},
	"del": func(action, token string) deleteForm {
		return deleteForm{Action: action, Token: token}
	},
	"serviceForm": func(svc any, token string) serviceForm {
		return serviceForm{Service: svc, Token: token}
	},
	"joinList":  webark.JoinList,
	"join":      strings.Join,
	"hasPrefix": strings.HasPrefix,
	"eqFold":    strings.EqualFold,
	"orgJSON": func(site webark.SiteInfo) template.JS {
		return template.JS(webark.OrganizationJsonLD(site))
	},
	"postJSON": func(p content.BlogPost, site webark.SiteInfo) template.JS {
		return template.JS(webark.BlogPostingJsonLD(p, site))
	},
}

type deleteForm struct {
	Action string
	Token  string
}

// serviceForm feeds the shared service editor; Service is nil for a new one.
type serviceForm struct {
	Service any
	Token   string
}

type set struct {
	base *template.Template
}

func (s set) page(name string) *template.Template {
	t := template.Must(s.base.Clone())
	return template.Must(t.ParseFS(files, "templates/"+name+".html"))
}

// view binds a page template to its data type.
func view[T any](s set, name string) func(T) templ.Component {
	t := s.page(name)
	return func(data T) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return t.ExecuteTemplate(w, "layout", data)
		})
	}
}

// Default returns the stock views. It panics if a template fails to parse,
// which can only happen when the embedded files are broken.
func Default() webark.ViewFuncs {
	s := set{base: template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/layout.html"))}
	return webark.ViewFuncs{
		Home:           view[webark.HomePage](s, "home"),
		Services:       view[webark.ServicesPage](s, "services"),
		Service:        view[webark.ServicePage](s, "service"),
		About:          view[webark.Layout](s, "about"),
		Blog:           view[webark.BlogPage](s, "blog"),
		Post:           view[webark.PostPage](s, "post"),
		Work:           view[webark.WorkPage](s, "work"),
		Careers:        view[webark.CareersPage](s, "careers"),
		Contact:        view[webark.ContactPage](s, "contact"),
		Cart:           view[webark.CartPage](s, "cart"),
		PrivacyPolicy:  view[webark.Layout](s, "privacy"),
		TermsOfService: view[webark.Layout](s, "terms"),

		AdminLogin:     view[webark.AdminLoginPage](s, "admin_login"),
		AdminDashboard: view[webark.AdminDashboardPage](s, "admin_dashboard"),
		AdminBlog:      view[webark.AdminBlogPage](s, "admin_blog"),
		AdminBlogForm:  view[webark.AdminBlogForm](s, "admin_blog_form"),
		AdminCareers:   view[webark.AdminCareersPage](s, "admin_careers"),
		AdminCareer:    view[webark.AdminCareerForm](s, "admin_career_form"),
		AdminWork:      view[webark.AdminWorkPage](s, "admin_work"),
		AdminWorkForm:  view[webark.AdminWorkForm](s, "admin_work_form"),
		AdminServices:  view[webark.AdminServicesPage](s, "admin_services"),
		AdminImages:    view[webark.AdminImagesPage](s, "admin_images"),
		AdminMessages:  view[webark.AdminMessagesPage](s, "admin_messages"),

		NotFound:    view[webark.Layout](s, "not_found"),
		ServerError: view[webark.Layout](s, "server_error"),
	}
}
