package gallery

import (
	"path"
	"strings"
)

// indexPage is the page an empty path resolves to.
const indexPage = "index.html"

// NavLink is one entry of the top navigation.
type NavLink struct {
	Href     string `json:"href" toml:"href"`
	Label    string `json:"label" toml:"label"`
	External bool   `json:"external,omitempty" toml:"external"`
}

// NavItem is a NavLink resolved against the current page.
type NavItem struct {
	NavLink
	Current bool `json:"current"`
}

// AriaCurrent returns the aria-current attribute value.
func (n NavItem) AriaCurrent() string {
	if n.Current {
		return "page"
	}
	return ""
}

// DefaultNav returns the site's internal pages.
func DefaultNav() []NavLink {
	return []NavLink{
		{Href: "index.html", Label: "Overview"},
		{Href: "editorial.html", Label: "Editorial"},
		{Href: "video.html", Label: "Advertising & Film"},
		{Href: "info.html", Label: "Info"},
	}
}

// Nav marks the link for the page at urlPath as current.
// External links are never current.
func Nav(links []NavLink, urlPath string) []NavItem {
	page := CurrentPage(urlPath)
	items := make([]NavItem, len(links))
	for i, l := range links {
		items[i] = NavItem{NavLink: l, Current: !l.External && l.Href == page}
	}
	return items
}

// CurrentPage returns the last segment of urlPath, or index.html when empty.
func CurrentPage(urlPath string) string {
	if i := strings.IndexAny(urlPath, "?#"); i >= 0 {
		urlPath = urlPath[:i]
	}
	if urlPath == "" || strings.HasSuffix(urlPath, "/") {
		return indexPage
	}
	return path.Base(urlPath)
}
