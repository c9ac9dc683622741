package content

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/blog/*.md fixtures/careers.yaml
var fixtureFS embed.FS

// Fixtures is the seed data for the fixture-backed collections.
type Fixtures struct {
	Posts []BlogPost
	Jobs  []JobPosting
}

// LoadFixtures reads the seed data embedded in the binary.
func LoadFixtures() (Fixtures, error) {
	return LoadFixturesFS(fixtureFS, "fixtures")
}

// LoadFixturesFS reads seed data from root in fsys: one Markdown file with
// YAML front matter per blog post under blog/, and careers.yaml.
func LoadFixturesFS(fsys fs.FS, root string) (Fixtures, error) {
	var fx Fixtures

	files, err := fs.Glob(fsys, path.Join(root, "blog", "*.md"))
	if err != nil {
		return fx, fmt.Errorf("content: list blog fixtures: %w", err)
	}
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fx, fmt.Errorf("content: read %s: %w", name, err)
		}
		post, err := parsePost(data)
		if err != nil {
			return fx, fmt.Errorf("content: parse %s: %w", name, err)
		}
		fx.Posts = append(fx.Posts, post)
	}

	data, err := fs.ReadFile(fsys, path.Join(root, "careers.yaml"))
	if err != nil {
		return fx, fmt.Errorf("content: read careers fixture: %w", err)
	}
	if err := yaml.Unmarshal(data, &fx.Jobs); err != nil {
		return fx, fmt.Errorf("content: parse careers fixture: %w", err)
	}
	return fx, nil
}

func parsePost(data []byte) (BlogPost, error) {
	var p BlogPost
	body, err := frontmatter.Parse(bytes.NewReader(data), &p)
	if err != nil {
		return p, err
	}
	p.Content = strings.TrimSpace(string(body))
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Excerpt == "" {
		p.Excerpt = Excerpt(p.Content)
	}
	p.Tags = normalizeList(p.Tags)
	return p, nil
}
