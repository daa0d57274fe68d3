package client_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"cinedex/internal/client"
	"cinedex/internal/production"
)

func TestPager(t *testing.T) {
	tests := []struct {
		name      string
		pager     client.Pager
		pages     int
		prevOff   bool
		nextOff   bool
		rendering string
	}{
		{name: "empty", pager: client.Pager{Page: 1, PageSize: 5, Total: 0}, pages: 0, prevOff: true, nextOff: true, rendering: ""},
		{name: "single", pager: client.Pager{Page: 1, PageSize: 5, Total: 5}, pages: 1, prevOff: true, nextOff: true, rendering: "- [1] -"},
		{name: "first of three", pager: client.Pager{Page: 1, PageSize: 5, Total: 11}, pages: 3, prevOff: true, nextOff: false, rendering: "- [1] 2 3 »"},
		{name: "middle", pager: client.Pager{Page: 2, PageSize: 5, Total: 11}, pages: 3, prevOff: false, nextOff: false, rendering: "« 1 [2] 3 »"},
		{name: "last", pager: client.Pager{Page: 3, PageSize: 5, Total: 11}, pages: 3, prevOff: false, nextOff: true, rendering: "« 1 2 [3] -"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pager.Pages(); got != tt.pages {
				t.Fatalf("Pages() = %d, want %d", got, tt.pages)
			}
			if got := tt.pager.PrevDisabled(); got != tt.prevOff {
				t.Fatalf("PrevDisabled() = %v, want %v", got, tt.prevOff)
			}
			if got := tt.pager.NextDisabled(); got != tt.nextOff {
				t.Fatalf("NextDisabled() = %v, want %v", got, tt.nextOff)
			}
			if got := tt.pager.String(); got != tt.rendering {
				t.Fatalf("String() = %q, want %q", got, tt.rendering)
			}
		})
	}
}

func TestPagerLinksAndSteps(t *testing.T) {
	p := client.PagerFor(production.Page{Page: 2, Limit: 2, Total: 5})
	want := []client.PageLink{{Number: 1}, {Number: 2, Current: true}, {Number: 3}}
	if diff := cmp.Diff(want, p.Links()); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
	if p.Prev() != 1 || p.Next() != 3 {
		t.Fatalf("unexpected steps: prev=%d next=%d", p.Prev(), p.Next())
	}
	last := client.Pager{Page: 3, PageSize: 2, Total: 5}
	if last.Next() != 3 {
		t.Fatalf("next should clamp at the last page, got %d", last.Next())
	}
	first := client.Pager{Page: 1, PageSize: 2, Total: 5}
	if first.Prev() != 1 {
		t.Fatalf("prev should clamp at 1, got %d", first.Prev())
	}
}
