package client

import (
	"strconv"
	"strings"

	"cinedex/internal/production"
)

// Pager computes the navigation strip for a search result.
type Pager struct {
	Page     int
	PageSize int
	Total    int
}

// PagerFor builds a Pager from a server page.
func PagerFor(page production.Page) Pager {
	return Pager{Page: page.Page, PageSize: page.Limit, Total: page.Total}
}

// Pages is ceil(Total/PageSize).
func (p Pager) Pages() int {
	return production.TotalPages(p.Total, p.PageSize)
}

// PrevDisabled reports whether the current page is the first.
func (p Pager) PrevDisabled() bool {
	return p.Page <= 1
}

// NextDisabled reports whether the current page is the last.
func (p Pager) NextDisabled() bool {
	return p.Page >= p.Pages()
}

// Prev is the previous page number, clamped to 1.
func (p Pager) Prev() int {
	if p.PrevDisabled() {
		return 1
	}
	return p.Page - 1
}

// Next is the next page number, clamped to the last page.
func (p Pager) Next() int {
	if p.NextDisabled() {
		return max(p.Page, 1)
	}
	return p.Page + 1
}

// PageLink is one numbered entry of the strip.
type PageLink struct {
	Number  int
	Current bool
}

// Links returns one entry per page with the current one marked.
func (p Pager) Links() []PageLink {
	pages := p.Pages()
	links := make([]PageLink, 0, pages)
	for n := 1; n <= pages; n++ {
		links = append(links, PageLink{Number: n, Current: n == p.Page})
	}
	return links
}

// String renders the strip, e.g. "« 1 [2] 3 »". Disabled arrows render as "-".
func (p Pager) String() string {
	if p.Pages() == 0 {
		return ""
	}
	parts := make([]string, 0, p.Pages()+2)
	if p.PrevDisabled() {
		parts = append(parts, "-")
	} else {
		parts = append(parts, "«")
	}
	for _, link := range p.Links() {
		label := strconv.Itoa(link.Number)
		if link.Current {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	if p.NextDisabled() {
		parts = append(parts, "-")
	} else {
		parts = append(parts, "»")
	}
	return strings.Join(parts, " ")
}
