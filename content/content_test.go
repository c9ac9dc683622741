package content

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeAPI is an in-memory RemoteAPI; setting err makes every call fail.
type fakeAPI struct {
	work     []WorkItem
	services []Service
	err      error
	calls    []string
	nextID   int
}

func (f *fakeAPI) ListWork(ctx context.Context) ([]WorkItem, error) {
	f.calls = append(f.calls, "GET /work")
	if f.err != nil {
		return nil, f.err
	}
	return append([]WorkItem(nil), f.work...), nil
}

func (f *fakeAPI) CreateWork(ctx context.Context, item WorkItem) (WorkItem, error) {
	f.calls = append(f.calls, "POST /work")
	if f.err != nil {
		return WorkItem{}, f.err
	}
	f.nextID++
	item.ID = fmt.Sprintf("w%d", f.nextID)
	f.work = append(f.work, item)
	return item, nil
}

func (f *fakeAPI) UpdateWork(ctx context.Context, item WorkItem) (WorkItem, error) {
	f.calls = append(f.calls, "PUT /work/"+item.ID)
	if f.err != nil {
		return WorkItem{}, f.err
	}
	for i := range f.work {
		if f.work[i].ID == item.ID {
			f.work[i] = item
		}
	}
	return item, nil
}

func (f *fakeAPI) DeleteWork(ctx context.Context, id string) error {
	f.calls = append(f.calls, "DELETE /work/"+id)
	return f.err
}

func (f *fakeAPI) ListServices(ctx context.Context) ([]Service, error) {
	f.calls = append(f.calls, "GET /services")
	if f.err != nil {
		return nil, f.err
	}
	return f.services, nil
}

func (f *fakeAPI) CreateService(ctx context.Context, s Service) (Service, error) {
	f.calls = append(f.calls, "POST /services")
	if f.err != nil {
		return Service{}, f.err
	}
	f.services = append(f.services, s)
	return s, nil
}

func (f *fakeAPI) UpdateService(ctx context.Context, s Service) (Service, error) {
	f.calls = append(f.calls, "PUT /services/"+s.ID)
	if f.err != nil {
		return Service{}, f.err
	}
	return s, nil
}

var fixedNow = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func newTestFacade(t *testing.T, api RemoteAPI) *Facade {
	t.Helper()
	n := 0
	f, err := NewFacade(api,
		WithLogger(zaptest.NewLogger(t)),
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("gen-%d", n)
		}),
	)
	require.NoError(t, err)
	return f
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!  Foo", "hello-world-foo"},
		{"The Future of Web Development", "the-future-of-web-development"},
		{"  Trim me  ", "trim-me"},
		{"snake_case stays", "snake_case-stays"},
		{"C++ & Go: 2024", "c-go-2024"},
		{"Café", "caf"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Hello world & friends", Excerpt("<p>Hello <b>world</b> &amp; friends</p>"))

	long := "<p>"
	for i := 0; i < 60; i++ {
		long += "word "
	}
	long += "</p>"
	got := Excerpt(long)
	assert.LessOrEqual(t, len([]rune(got)), excerptMaxRunes+1)
	assert.True(t, len(got) > 0 && got[len(got)-len(excerptEllipsis):] == excerptEllipsis)
}

func TestNewIDIsUniqueAndNonEmpty(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestLoadEmbeddedFixtures(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)
	require.Len(t, fx.Posts, 2)
	require.Len(t, fx.Jobs, 1)

	p := fx.Posts[0]
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "future-of-web-development", p.Slug)
	assert.Equal(t, "2023-06-15", p.Date)
	assert.True(t, p.Featured)
	assert.Equal(t, []string{"WebAssembly", "Edge Computing", "AI", "Future Tech"}, p.Tags)
	assert.Contains(t, p.Content, "<h2>1. WebAssembly</h2>")

	j := fx.Jobs[0]
	assert.Equal(t, "Senior Frontend Developer", j.Title)
	assert.True(t, j.IsActive)
	assert.Len(t, j.Requirements, 3)
}

func TestLoadFixturesFSDerivesMissingFields(t *testing.T) {
	fsys := fstest.MapFS{
		"seed/blog/a.md":        {Data: []byte("---\nid: \"a\"\ntitle: Hello, World!  Foo\n---\n<p>Body text</p>\n")},
		"seed/careers.yaml":     {Data: []byte("[]\n")},
		"seed/blog/ignored.md~": {Data: []byte("junk")},
	}
	fx, err := LoadFixturesFS(fsys, "seed")
	require.NoError(t, err)
	require.Len(t, fx.Posts, 1)
	assert.Equal(t, "hello-world-foo", fx.Posts[0].Slug)
	assert.Equal(t, "Body text", fx.Posts[0].Excerpt)
	assert.Empty(t, fx.Jobs)
}

func TestBlogSaveNewThenGet(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t, &fakeAPI{})
	before := f.Blog.Count()

	in := BlogPost{
		Title:    "Hello, World!  Foo",
		Content:  "<p>Launch notes</p>",
		Category: "News",
		Author:   "Ada",
		Tags:     []string{" go ", "", "web"},
	}
	saved := f.Blog.Save(ctx, in)
	require.True(t, saved.OK(), saved.Err)
	assert.Equal(t, "gen-1", saved.Value.ID)
	assert.Equal(t, "hello-world-foo", saved.Value.Slug)
	assert.Equal(t, "2024-03-09", saved.Value.Date)
	assert.Equal(t, "Launch notes", saved.Value.Excerpt)
	assert.Equal(t, []string{"go", "web"}, saved.Value.Tags)

	got := f.Blog.Get(ctx, "gen-1")
	require.True(t, got.OK())
	if diff := cmp.Diff(saved.Value, got.Value); diff != "" {
		t.Errorf("Get mismatch (-saved +got):\n%s", diff)
	}

	bySlug := f.Blog.GetBySlug(ctx, "hello-world-foo")
	require.True(t, bySlug.OK())
	assert.Equal(t, "gen-1", bySlug.Value.ID)

	list := f.Blog.List(ctx)
	assert.Len(t, list.Value, before+1)
}

func TestBlogSaveExistingReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t, &fakeAPI{})
	before := f.Blog.List(ctx).Value

	edited := before[0]
	edited.Title = "Edited title"
	res := f.Blog.Save(ctx, edited)
	require.True(t, res.OK())

	after := f.Blog.List(ctx).Value
	require.Len(t, after, len(before))
	assert.Equal(t, "Edited title", after[0].Title)
	assert.Equal(t, before[0].Slug, after[0].Slug, "explicit slug is kept")
	assert.Equal(t, before[1], after[1])
}

func TestBlogSaveRequiresTitle(t *testing.T) {
	f := newTestFacade(t, &fakeAPI{})
	res := f.Blog.Save(context.Background(), BlogPost{Content: "x"})
	assert.Equal(t, StatusFailed, res.Status)
	var ve *ValidationError
	require.ErrorAs(t, res.Err, &ve)
	assert.Equal(t, "title", ve.Field)
}

func TestBlogDelete(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t, &fakeAPI{})
	n := f.Blog.Count()

	res := f.Blog.Delete(ctx, "1")
	assert.True(t, res.OK())
	assert.True(t, res.Value)
	assert.Equal(t, n-1, f.Blog.Count())

	res = f.Blog.Delete(ctx, "1")
	assert.Equal(t, StatusNotFound, res.Status)
	assert.False(t, res.Value)
	assert.ErrorIs(t, res.Err, ErrNotFound)
	assert.Equal(t, n-1, f.Blog.Count())
}

func TestBlogListIsACopy(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t, &fakeAPI{})
	list := f.Blog.List(ctx).Value
	list[0].Title = "mutated"
	assert.NotEqual(t, "mutated", f.Blog.Get(ctx, list[0].ID).Value.Title)
}

func TestBlogLookupMissReportsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t, &fakeAPI{})
	res := f.Blog.Get(ctx, "nope")
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, BlogPost{}, res.Value)
	assert.Equal(t, StatusNotFound, f.Blog.GetBySlug(ctx, "nope").Status)
}

func TestBlogCategoriesAndFilters(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t, &fakeAPI{})
	f.Blog.Save(ctx, BlogPost{Title: "Extra", Category: "technology", Date: "2024-01-01"})

	assert.Equal(t, []string{"Development", "Technology"}, f.Blog.Categories(ctx).Value)
	assert.Len(t, f.Blog.ByCategory(ctx, "TECHNOLOGY").Value, 2)
	assert.Len(t, f.Blog.ByCategory(ctx, "all").Value, 3)
	assert.Len(t, f.Blog.Featured(ctx).Value, 1)

	latest := f.Blog.Latest(ctx, 2).Value
	require.Len(t, latest, 2)
	assert.Equal(t, "Extra", latest[0].Title)

	require.True(t, f.Blog.Delete(ctx, "1").OK())
	featured := f.Blog.Featured(ctx).Value
	assert.NotNil(t, featured)
	assert.Empty(t, featured)
}

func TestRelated(t *testing.T) {
	posts := []BlogPost{
		{ID: "1", Category: "Tech", Tags: []string{"go"}},
		{ID: "2", Category: "tech"},
		{ID: "3", Category: "Design", Tags: []string{"Go"}},
		{ID: "4", Category: "Design", Tags: []string{"css"}},
	}
	got := Related(posts[0], posts)
	ids := []string{}
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"2", "3"}, ids)
}

func TestCareersCRUD(t *testing.T) {
	ctx := context.Background()
	f := newTestFacade(t, &fakeAPI{})

	res := f.Careers.Save(ctx, CareerPosting{
		Title:        "Designer",
		Requirements: []string{"Figma", " "},
		IsActive:     false,
	})
	require.True(t, res.OK())
	assert.Equal(t, "gen-1", res.Value.ID)
	assert.Equal(t, "2024-03-09", res.Value.Posted)
	assert.Equal(t, []string{"Figma"}, res.Value.Requirements)
	assert.Equal(t, []string{}, res.Value.Responsibilities)

	assert.Equal(t, 2, f.Careers.Count())
	assert.Len(t, f.Careers.Active(ctx).Value, 1)

	job := res.Value
	job.IsActive = true
	require.True(t, f.Careers.Save(ctx, job).OK())
	assert.Equal(t, 2, f.Careers.Count())
	assert.Len(t, f.Careers.Active(ctx).Value, 2)

	assert.True(t, f.Careers.Delete(ctx, job.ID).Value)
	assert.False(t, f.Careers.Delete(ctx, job.ID).Value)
	assert.Equal(t, StatusNotFound, f.Careers.Get(ctx, job.ID).Status)
}

func TestWorkListDegradesOnFailure(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	f := newTestFacade(t, api)

	res := f.Work.List(context.Background())
	assert.Equal(t, StatusDegraded, res.Status)
	assert.NotNil(t, res.Value)
	assert.Empty(t, res.Value)
	assert.EqualError(t, res.Err, "connection refused")

	svc := f.Services.List(context.Background())
	assert.Equal(t, StatusDegraded, svc.Status)
	assert.NotNil(t, svc.Value)
	assert.Empty(t, svc.Value)
}

func TestWorkListEmptyIsOK(t *testing.T) {
	f := newTestFacade(t, &fakeAPI{})
	res := f.Work.List(context.Background())
	assert.True(t, res.OK())
	assert.NotNil(t, res.Value)
}

func TestWorkSaveChoosesMethodByID(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	f := newTestFacade(t, api)

	created := f.Work.Save(ctx, WorkItem{Title: "Site redesign"})
	require.True(t, created.OK())
	assert.Equal(t, "w1", created.Value.ID)

	item := created.Value
	item.Client = "Acme"
	updated := f.Work.Save(ctx, item)
	require.True(t, updated.OK())
	assert.Equal(t, "Acme", updated.Value.Client)

	assert.True(t, f.Work.Delete(ctx, "w1").OK())
	assert.Equal(t, []string{"POST /work", "PUT /work/w1", "DELETE /work/w1"}, api.calls)
}

func TestWorkWritesFailLoudly(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("503 from upstream")
	f := newTestFacade(t, &fakeAPI{err: boom})

	res := f.Work.Save(ctx, WorkItem{ID: "w1", Title: "x"})
	assert.Equal(t, StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, boom)

	del := f.Work.Delete(ctx, "w1")
	assert.Equal(t, StatusFailed, del.Status)
	assert.False(t, del.Value)
	assert.ErrorIs(t, del.Err, boom)
}

func TestWorkGetAndForService(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{work: []WorkItem{
		{ID: "a", ServiceID: "web"},
		{ID: "b", ServiceID: "brand"},
		{ID: "c", ServiceID: "web"},
	}}
	f := newTestFacade(t, api)

	assert.Equal(t, "b", f.Work.Get(ctx, "b").Value.ID)
	assert.Equal(t, StatusNotFound, f.Work.Get(ctx, "z").Status)
	assert.Len(t, f.Work.ForService(ctx, "web").Value, 2)

	api.err = errors.New("down")
	assert.Equal(t, StatusDegraded, f.Work.Get(ctx, "b").Status)
	assert.Equal(t, StatusDegraded, f.Work.ForService(ctx, "web").Status)
}

func TestServiceSaveFillsDefaults(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	f := newTestFacade(t, api)

	res := f.Services.Save(ctx, Service{Title: "Branding"})
	require.True(t, res.OK())
	assert.Equal(t, "gen-1", res.Value.ID)
	assert.Equal(t, placeholderImage, res.Value.Icon)
	assert.Equal(t, placeholderImage, res.Value.Image)
	assert.Equal(t, []string{}, res.Value.Features)
	assert.Equal(t, []PortfolioItem{}, res.Value.PortfolioItems)

	res = f.Services.Save(ctx, Service{ID: "web", Title: "Web", Icon: "/i.svg"})
	require.True(t, res.OK())
	assert.Equal(t, "/i.svg", res.Value.Icon)

	assert.Equal(t, []string{"POST /services", "PUT /services/web"}, api.calls)
}

func TestServiceDeleteUnsupported(t *testing.T) {
	f := newTestFacade(t, &fakeAPI{})
	res := f.Services.Delete(context.Background(), "web")
	assert.Equal(t, StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, errors.ErrUnsupported)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "degraded", StatusDegraded.String())
	assert.Equal(t, "unknown", Status(42).String())
}
