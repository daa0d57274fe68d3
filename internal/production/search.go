package production

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Paging defaults for the search endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 100
)

// Filter selects productions for the search endpoint.
type Filter struct {
	Query string
	Type  string
	Page  int
	Limit int
}

// Normalized returns a copy with defaults applied to page and limit.
func (f Filter) Normalized() Filter {
	f.Query = strings.TrimSpace(f.Query)
	f.Type = strings.TrimSpace(f.Type)
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// Page is one slice of search results.
type Page struct {
	Productions []Production `json:"productions"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
	TotalPages  int          `json:"totalPages"`
}

// Fold lowercases s and strips combining marks so "Ação" matches "acao".
// Casers keep state, so each call builds its own.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// Matches reports whether p passes the filter's query and type.
func (f Filter) Matches(p Production) bool {
	if f.Type != "" && Fold(p.Type) != Fold(f.Type) {
		return false
	}
	if f.Query == "" {
		return true
	}
	needle := Fold(f.Query)
	for _, field := range []string{p.Title, p.Genre, p.Type} {
		if strings.Contains(Fold(field), needle) {
			return true
		}
	}
	return p.Year != 0 && strings.Contains(strconv.Itoa(p.Year), needle)
}

// Apply filters all in order and slices out the requested page.
func (f Filter) Apply(all []Production) Page {
	f = f.Normalized()
	matched := make([]Production, 0, len(all))
	for _, p := range all {
		if f.Matches(p) {
			matched = append(matched, p)
		}
	}
	return Paginate(matched, f.Page, f.Limit)
}

// Paginate slices items to the given 1-based page. Pages past the end are
// empty but keep the real total.
func Paginate(items []Production, page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	total := len(items)
	result := Page{
		Productions: []Production{},
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  TotalPages(total, limit),
	}
	if page-1 >= result.TotalPages {
		return result
	}
	start := (page - 1) * limit
	end := start + limit
	if end > total {
		end = total
	}
	result.Productions = append(result.Productions, items[start:end]...)
	return result
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
