package views_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webark/webark"
	"github.com/webark/webark/cart"
	"github.com/webark/webark/content"
	"github.com/webark/webark/views"
)

func render(t *testing.T, fn func(context.Context, *bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(context.Background(), &buf))
	return buf.String()
}

func layout() webark.Layout {
	return webark.Layout{
		Site:      webark.SiteInfo{Name: "WebArk", URL: "https://webark.test", Email: "hi@webark.test"},
		Meta:      webark.PageMeta{Title: "Home", OGType: "website"},
		Path:      "/",
		CSRFToken: "tok",
		CartCount: 3,
		Notices:   []webark.Notice{{Kind: webark.NoticeSuccess, Text: "Saved <b>ok</b>"}},
	}
}

func TestDefaultFillsEveryView(t *testing.T) {
	v := views.Default()
	assert.NotNil(t, v.Home)
	assert.NotNil(t, v.AdminMessages)
	assert.NotNil(t, v.ServerError)
}

func TestLayoutChrome(t *testing.T) {
	v := views.Default()
	out := render(t, func(ctx context.Context, b *bytes.Buffer) error {
		return v.About(layout()).Render(ctx, b)
	})
	assert.Contains(t, out, "<title>Home | WebArk</title>")
	assert.Contains(t, out, "Cart (3)")
	assert.Contains(t, out, "mailto:hi@webark.test")
	assert.Contains(t, out, "Saved &lt;b&gt;ok&lt;/b&gt;")
	assert.Contains(t, out, `"@type":"Organization"`)
	assert.NotContains(t, out, "/admin/logout/")
}

func TestPostRendersMarkdown(t *testing.T) {
	v := views.Default()
	page := webark.PostPage{
		Layout: layout(),
		Post: content.BlogPost{
			Title:    "Hello",
			Slug:     "hello",
			Category: "Go",
			Content:  "# Intro\n\nSome *emphasis* here.\n\n<script>alert(1)</script>",
		},
	}
	out := render(t, func(ctx context.Context, b *bytes.Buffer) error {
		return v.Post(page).Render(ctx, b)
	})
	assert.Contains(t, out, `<h1 id="intro">Intro</h1>`)
	assert.Contains(t, out, "<em>emphasis</em>")
	assert.NotContains(t, out, "alert(1)")
	assert.Contains(t, out, `"@type":"BlogPosting"`)
}

func TestCartTotals(t *testing.T) {
	v := views.Default()
	page := webark.CartPage{
		Layout:     layout(),
		Items:      []cart.Item{{ID: "web", Name: "Web", Price: 12.5, Quantity: 2}},
		TotalItems: 2,
		TotalPrice: 25,
	}
	out := render(t, func(ctx context.Context, b *bytes.Buffer) error {
		return v.Cart(page).Render(ctx, b)
	})
	assert.Contains(t, out, "$12.50")
	assert.Contains(t, out, "$25.00")
	assert.Contains(t, out, `name="_csrf" value="tok"`)
}

func TestDegradedBanner(t *testing.T) {
	v := views.Default()
	out := render(t, func(ctx context.Context, b *bytes.Buffer) error {
		return v.Work(webark.WorkPage{Layout: layout(), Degraded: true}).Render(ctx, b)
	})
	assert.Contains(t, out, "Some content could not be loaded")
	assert.Contains(t, out, "No projects to show yet.")
}
