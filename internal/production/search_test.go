package production_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"cinedex/internal/production"
)

func sampleCatalog() []production.Production {
	return []production.Production{
		{ID: 1, Title: "Dune", Type: "filme", Genre: "Ficção Científica", Year: 2021},
		{ID: 2, Title: "Dark", Type: "serie", Genre: "Drama", Year: 2017},
		{ID: 3, Title: "Cidade de Deus", Type: "filme", Genre: "Crime", Year: 2002},
		{ID: 4, Title: "Ação Total", Type: "filme", Genre: "Ação", Year: 1994},
		{ID: 5, Title: "The Office", Type: "serie", Genre: "Comédia", Year: 2005},
		{ID: 6, Title: "Duna Parte Dois", Type: "filme", Genre: "Ficção Científica", Year: 2024},
	}
}

func ids(page production.Page) []int64 {
	out := make([]int64, 0, len(page.Productions))
	for _, p := range page.Productions {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterApply(t *testing.T) {
	catalog := sampleCatalog()
	cases := []struct {
		name      string
		filter    production.Filter
		wantIDs   []int64
		wantTotal int
	}{
		{name: "empty query pages everything", filter: production.Filter{}, wantIDs: []int64{1, 2, 3, 4, 5}, wantTotal: 6},
		{name: "second page", filter: production.Filter{Page: 2}, wantIDs: []int64{6}, wantTotal: 6},
		{name: "past the end", filter: production.Filter{Page: 9}, wantIDs: []int64{}, wantTotal: 6},
		{name: "case insensitive title", filter: production.Filter{Query: "DUN"}, wantIDs: []int64{1, 6}, wantTotal: 2},
		{name: "accent insensitive genre", filter: production.Filter{Query: "ficcao"}, wantIDs: []int64{1, 6}, wantTotal: 2},
		{name: "accented query", filter: production.Filter{Query: "comédia"}, wantIDs: []int64{5}, wantTotal: 1},
		{name: "year substring", filter: production.Filter{Query: "200"}, wantIDs: []int64{3, 5}, wantTotal: 2},
		{name: "type field", filter: production.Filter{Query: "serie"}, wantIDs: []int64{2, 5}, wantTotal: 2},
		{name: "type filter", filter: production.Filter{Type: "Série"}, wantIDs: []int64{2, 5}, wantTotal: 2},
		{name: "query and type", filter: production.Filter{Query: "d", Type: "filme"}, wantIDs: []int64{1, 3, 6}, wantTotal: 3},
		{name: "custom limit", filter: production.Filter{Limit: 2, Page: 3}, wantIDs: []int64{5, 6}, wantTotal: 6},
		{name: "no match", filter: production.Filter{Query: "zzz"}, wantIDs: []int64{}, wantTotal: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := tc.filter.Apply(catalog)
			if diff := cmp.Diff(tc.wantIDs, ids(page)); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
			if page.Total != tc.wantTotal {
				t.Fatalf("total = %d, want %d", page.Total, tc.wantTotal)
			}
		})
	}
}

func TestFilterNormalized(t *testing.T) {
	got := production.Filter{Query: "  dune ", Page: -3, Limit: 500}.Normalized()
	want := production.Filter{Query: "dune", Page: 1, Limit: production.MaxLimit}
	if got != want {
		t.Fatalf("Normalized() = %+v, want %+v", got, want)
	}
	if got := (production.Filter{}).Normalized(); got.Limit != production.DefaultLimit || got.Page != production.DefaultPage {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestTotalPages(t *testing.T) {
	cases := map[[2]int]int{
		{0, 5}:  0,
		{1, 5}:  1,
		{5, 5}:  1,
		{6, 5}:  2,
		{11, 5}: 3,
		{3, 0}:  0,
	}
	for in, want := range cases {
		if got := production.TotalPages(in[0], in[1]); got != want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", in[0], in[1], got, want)
		}
	}
}

func TestPaginateHugePage(t *testing.T) {
	page := production.Paginate(sampleCatalog(), 1<<62, 100)
	if len(page.Productions) != 0 || page.Total != 6 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestFold(t *testing.T) {
	if got := production.Fold("Ação & Aventura"); got != "acao & aventura" {
		t.Fatalf("Fold = %q", got)
	}
}
