package webark

import (
	"github.com/webark/webark/cart"
	"github.com/webark/webark/content"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// SiteInfo is the public part of SiteConfig that templates may see.
type SiteInfo struct {
	Name        string
	URL         string
	Description string
	Email       string
}

// Layout is the chrome every page shares.
type Layout struct {
	Site      SiteInfo
	Meta      PageMeta
	Path      string
	CSRFToken string
	IsAdmin   bool
	CartCount int
	Notices   []Notice
}

// NoticeKind selects how a Notice is styled.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeWarning NoticeKind = "warning"
)

// Notice is a one-shot message carried across a redirect.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// Image is an uploaded image's metadata.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// URL is the public path of the image.
func (i Image) URL() string {
	return "/public/" + uploadsSubdir + "/" + i.Filename
}

// Message is a stored contact form submission.
type Message struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Subject   string
	Service   string
	Body      string
	CreatedAt string
}

// ContactForm is the contact page input and its validation errors.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Service string
	Message string
	Errors  map[string]string
}

// Dashboard is the admin overview.
type Dashboard struct {
	BlogCount     int
	CareerCount   int
	ActiveCareers int
	WorkCount     int
	ServiceCount  int
	MessageCount  int
	ImageCount    int
	RecentPosts   []content.BlogPost
	Warnings      []string
}

type HomePage struct {
	Layout
	Services []content.Service
	Work     []content.WorkItem
	Posts    []content.BlogPost
	Degraded bool
}

type ServicesPage struct {
	Layout
	Services []content.Service
	Degraded bool
}

type ServicePage struct {
	Layout
	Service  content.Service
	Work     []content.WorkItem
	Degraded bool
}

type BlogPage struct {
	Layout
	Posts      []content.BlogPost
	Featured   []content.BlogPost
	Categories []string
	Category   string
}

type PostPage struct {
	Layout
	Post    content.BlogPost
	Related []content.BlogPost
}

type WorkPage struct {
	Layout
	Items    []content.WorkItem
	Services []content.Service
	Degraded bool
}

type CareersPage struct {
	Layout
	Jobs []content.JobPosting
}

type ContactPage struct {
	Layout
	Form     ContactForm
	Services []content.Service
}

type CartPage struct {
	Layout
	Items      []cart.Item
	TotalItems int
	TotalPrice float64
}

type AdminLoginPage struct {
	Layout
	ShowError bool
}

type AdminDashboardPage struct {
	Layout
	Dashboard Dashboard
}

type AdminBlogPage struct {
	Layout
	Posts []content.BlogPost
}

type AdminBlogForm struct {
	Layout
	Post  content.BlogPost
	IsNew bool
}

type AdminCareersPage struct {
	Layout
	Jobs []content.JobPosting
}

type AdminCareerForm struct {
	Layout
	Job   content.JobPosting
	IsNew bool
}

type AdminWorkPage struct {
	Layout
	Items    []content.WorkItem
	Degraded bool
}

type AdminWorkForm struct {
	Layout
	Item     content.WorkItem
	Services []content.Service
	IsNew    bool
}

type AdminServicesPage struct {
	Layout
	Services []content.Service
	Degraded bool
}

type AdminImagesPage struct {
	Layout
	Images []Image
}

type AdminMessagesPage struct {
	Layout
	Messages []Message
}
