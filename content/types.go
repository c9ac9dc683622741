// Package content is the single access point for the site's editable content.
//
// Blog posts and job postings are fixture-backed: they live in process memory,
// seeded from embedded files at startup. Work items and services are
// server-backed: every read and write goes to the remote API. Both kinds sit
// behind the same Repository contract, and every operation reports its outcome
// through a Result.
package content

// BlogPost is an article shown on the blog pages.
type BlogPost struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Slug          string   `json:"slug" yaml:"slug"`
	Content       string   `json:"content" yaml:"-"`
	Excerpt       string   `json:"excerpt" yaml:"excerpt"`
	FeaturedImage string   `json:"featuredImage" yaml:"featuredImage"`
	Category      string   `json:"category" yaml:"category"`
	Author        string   `json:"author" yaml:"author"`
	Date          string   `json:"date" yaml:"date"` // YYYY-MM-DD
	Tags          []string `json:"tags" yaml:"tags"`
	Featured      bool     `json:"featured" yaml:"featured"`
}

// Link returns the public path of the post.
func (p BlogPost) Link() string {
	return "/blog/" + p.Slug + "/"
}

// JobPosting is an open position listed on the careers page.
type JobPosting struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	Department       string   `json:"department" yaml:"department"`
	Location         string   `json:"location" yaml:"location"`
	Type             string   `json:"type" yaml:"type"`
	Description      string   `json:"description" yaml:"description"`
	Requirements     []string `json:"requirements" yaml:"requirements"`
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`
	Posted           string   `json:"posted" yaml:"posted"`
	Deadline         string   `json:"deadline" yaml:"deadline"`
	IsActive         bool     `json:"isActive" yaml:"isActive"`
}

// CareerPosting is the name the admin careers screen uses for a JobPosting.
type CareerPosting = JobPosting

// WorkItem is a portfolio entry owned by the remote API.
type WorkItem struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ServiceID    string   `json:"serviceId"`
	Link         string   `json:"link"`
	Image        string   `json:"image"`
	Date         string   `json:"date"`
	Featured     bool     `json:"featured"`
	Client       string   `json:"client"`
	Technologies []string `json:"technologies"`
}

// Service is an agency offering owned by the remote API.
type Service struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	Icon             string          `json:"icon"`
	Image            string          `json:"image"`
	Features         []string        `json:"features"`
	PortfolioItems   []PortfolioItem `json:"portfolioItems"`
}

// PortfolioItem is a short case study embedded in a Service.
type PortfolioItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Link        string `json:"link"`
}
