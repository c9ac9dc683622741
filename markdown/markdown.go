// Package markdown renders post bodies, written in Markdown or raw HTML, to
// sanitized HTML and exposes them as templ components.
package markdown

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"sync"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown with GitHub extensions and passes embedded HTML
// through, then strips anything the UGC policy does not allow.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New returns a Renderer. It is safe for concurrent use.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+#-]+$`)).OnElements("code")
	p.AllowAttrs("id").Matching(regexp.MustCompile(`^[\w-]+$`)).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoFollowOnFullyQualifiedLinks(true)

	return &Renderer{md: md, policy: p}
}

// Render writes the sanitized HTML for src to w.
func (r *Renderer) Render(w io.Writer, src string) error {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return err
	}
	_, err := r.policy.SanitizeReader(&buf).WriteTo(w)
	return err
}

// HTML returns the sanitized HTML for src.
func (r *Renderer) HTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, src); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Component returns a templ.Component that renders src.
func (r *Renderer) Component(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.Render(w, src)
	})
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
)

func shared() *Renderer {
	defaultOnce.Do(func() { defaultRenderer = New() })
	return defaultRenderer
}

// Markdown returns a templ.Component that renders content with the shared
// Renderer.
func Markdown(content string) templ.Component {
	return shared().Component(content)
}

// ToHTML renders content with the shared Renderer.
func ToHTML(content string) (string, error) {
	return shared().HTML(content)
}
