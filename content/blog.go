package content

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BlogRepository is the fixture-backed store of blog posts.
type BlogRepository struct {
	posts *Collection[BlogPost]
	env   *env
}

var _ Repository[BlogPost] = (*BlogRepository)(nil)

func newBlogRepository(seed []BlogPost, e *env) *BlogRepository {
	return &BlogRepository{
		posts: NewCollection(func(p BlogPost) string { return p.ID }, seed),
		env:   e,
	}
}

// List returns a copy of every post in insertion order.
func (r *BlogRepository) List(ctx context.Context) Result[[]BlogPost] {
	return ok(r.posts.All())
}

// Get returns the post with the given id.
func (r *BlogRepository) Get(ctx context.Context, id string) Result[BlogPost] {
	if p, found := r.posts.Get(id); found {
		return ok(p)
	}
	return notFound[BlogPost]()
}

// GetBySlug returns the first post whose slug matches.
func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) Result[BlogPost] {
	p, found := r.posts.Find(func(p BlogPost) bool { return p.Slug == slug })
	if !found {
		return notFound[BlogPost]()
	}
	return ok(p)
}

// Save inserts or replaces a post by id. A missing id, slug, date or excerpt is
// filled in before the post is stored.
func (r *BlogRepository) Save(ctx context.Context, p BlogPost) Result[BlogPost] {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return failed[BlogPost](&ValidationError{Field: "title", Msg: "is required"})
	}
	if p.ID == "" {
		p.ID = r.env.newID()
	}
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Date == "" {
		p.Date = Today(r.env.now())
	}
	if strings.TrimSpace(p.Excerpt) == "" {
		p.Excerpt = Excerpt(p.Content)
	}
	p.Tags = normalizeList(p.Tags)

	replaced := r.posts.Upsert(p)
	r.env.log.Debug("blog post saved",
		zap.String("id", p.ID), zap.String("slug", p.Slug), zap.Bool("replaced", replaced))
	return ok(p)
}

// Delete removes the post with the given id.
func (r *BlogRepository) Delete(ctx context.Context, id string) Result[bool] {
	if !r.posts.Delete(id) {
		return notFound[bool]()
	}
	r.env.log.Debug("blog post deleted", zap.String("id", id))
	return ok(true)
}

// Count returns the number of posts.
func (r *BlogRepository) Count() int {
	return r.posts.Len()
}

// Latest returns up to n posts, newest first. n <= 0 returns all of them.
func (r *BlogRepository) Latest(ctx context.Context, n int) Result[[]BlogPost] {
	posts := r.posts.All()
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date > posts[j].Date })
	if n > 0 && len(posts) > n {
		posts = posts[:n]
	}
	return ok(posts)
}

// ByCategory returns posts in the given category, compared case-insensitively.
// An empty category or "all" returns every post.
func (r *BlogRepository) ByCategory(ctx context.Context, category string) Result[[]BlogPost] {
	category = strings.TrimSpace(category)
	all := r.posts.All()
	if category == "" || strings.EqualFold(category, "all") {
		return ok(all)
	}
	filtered := make([]BlogPost, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	return ok(filtered)
}

// Categories returns the distinct categories in title case, sorted.
func (r *BlogRepository) Categories(ctx context.Context) Result[[]string] {
	title := cases.Title(language.English)
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range r.posts.All() {
		c := strings.TrimSpace(p.Category)
		if c == "" {
			continue
		}
		c = title.String(strings.ToLower(c))
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return ok(out)
}

// Featured returns the posts flagged as featured.
func (r *BlogRepository) Featured(ctx context.Context) Result[[]BlogPost] {
	out := []BlogPost{}
	for _, p := range r.posts.All() {
		if p.Featured {
			out = append(out, p)
		}
	}
	return ok(out)
}

// Related returns other posts that share the category or a tag with current.
func Related(current BlogPost, posts []BlogPost) []BlogPost {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tagSet[strings.ToLower(t)] = struct{}{}
	}
	var related []BlogPost
	for _, p := range posts {
		if p.ID == current.ID {
			continue
		}
		if current.Category != "" && strings.EqualFold(p.Category, current.Category) {
			related = append(related, p)
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[strings.ToLower(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}
