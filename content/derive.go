package content

import (
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const (
	dateLayout      = "2006-01-02"
	excerptMaxRunes = 160
	excerptEllipsis = "…"
)

var stripTags = bluemonday.StrictPolicy()

// Slugify derives a URL slug from a title: lower-cased, every character other
// than ASCII letters, digits, underscore and space dropped, and runs of spaces
// joined by single hyphens.
//
//	Slugify("Hello, World!  Foo") == "hello-world-foo"
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// NewID returns a fresh record id. Ids are UUIDv7, so they sort by creation
// time like the millisecond timestamps they replace but do not collide when
// two records are created in the same millisecond.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Today returns the current date in the YYYY-MM-DD form stored on records.
func Today(now time.Time) string {
	return now.Format(dateLayout)
}

// Excerpt returns a plain-text teaser for an HTML or Markdown body: tags are
// stripped, whitespace collapsed, and the text cut on a word boundary.
func Excerpt(body string) string {
	text := html.UnescapeString(stripTags.Sanitize(body))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= excerptMaxRunes {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:excerptMaxRunes])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + excerptEllipsis
}

// normalizeList trims entries and drops empty ones. It never returns nil so
// records serialize with [] rather than null.
func normalizeList(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
