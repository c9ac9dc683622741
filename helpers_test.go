package webark

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/webark/webark/content"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog", "my-post"}, "https://example.com/blog/my-post/"},
		{"https://example.com/", []string{"services", "web"}, "https://example.com/services/web/"},
		{"http://localhost:3000", []string{"/about/"}, "http://localhost:3000/about/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"go, web ,,", []string{"go", "web"}},
		{"one\ntwo\r\n three", []string{"one", "two", "three"}},
	}
	for _, tt := range tests {
		if got := SplitList(tt.input); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("SplitList(%q) = %#v, want %#v", tt.input, got, tt.expected)
		}
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	post := content.BlogPost{Title: "T", Slug: "t", Excerpt: "E", Date: "2024-01-01", Author: "Jane", Tags: []string{"a", "b"}}
	var data map[string]any
	if err := json.Unmarshal([]byte(BlogPostingJsonLD(post, SiteInfo{Name: "WebArk", URL: "https://webark.test"})), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data["url"] != "https://webark.test/blog/t/" {
		t.Errorf("unexpected url %v", data["url"])
	}
	if data["keywords"] != "a, b" {
		t.Errorf("unexpected keywords %v", data["keywords"])
	}
	author, _ := data["author"].(map[string]any)
	if author["name"] != "Jane" {
		t.Errorf("unexpected author %v", data["author"])
	}
}

func TestContactFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		form   ContactForm
		fields []string
	}{
		{"valid", ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hi"}, nil},
		{"empty", ContactForm{}, []string{"email", "message", "name"}},
		{"bad email", ContactForm{Name: "Ada", Email: "nope", Message: "Hi"}, []string{"email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()
			if len(errs) != len(tt.fields) {
				t.Fatalf("expected errors on %v, got %v", tt.fields, errs)
			}
			for _, f := range tt.fields {
				if _, ok := errs[f]; !ok {
					t.Errorf("expected an error on %q, got %v", f, errs)
				}
			}
		})
	}
}

func TestSaveFailureText(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{&content.ValidationError{Field: "title", Msg: "is required"}, "Title is required."},
		{&content.ValidationError{Msg: "is invalid"}, "Save failed: is invalid."},
		{errors.New("boom"), "Save failed: boom"},
		{nil, "Save failed."},
	}
	for _, tt := range tests {
		if got := saveFailureText(tt.err); got != tt.expected {
			t.Errorf("saveFailureText(%v) = %q, want %q", tt.err, got, tt.expected)
		}
	}
}
