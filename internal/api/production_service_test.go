package api_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"cinedex/internal/api"
	"cinedex/internal/production"
	"cinedex/internal/store"
)

func newProductionService(t *testing.T) *api.ProductionService {
	t.Helper()
	s, err := store.OpenJSON(filepath.Join(t.TempDir(), "productions.json"), nil)
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return api.NewProductionService(s, nil)
}

func TestNewProductionServiceNilStore(t *testing.T) {
	if api.NewProductionService(nil, nil) != nil {
		t.Fatal("expected nil service for nil store")
	}
}

func TestProductionServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newProductionService(t)

	list, err := svc.ListAll(ctx)
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("ListAll on empty store = %#v, %v", list, err)
	}

	created, err := svc.Create(ctx, []byte(`{"title":"Dune","type":"filme","genre":"Ficção Científica","year":2021,"rating":8.1}`))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("id = %d", created.ID)
	}

	updated, err := svc.Update(ctx, created.ID, []byte(`{"rating":8.3}`))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.RatingValue() != 8.3 || updated.Title != "Dune" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := svc.Update(ctx, 999, []byte(`{"title":"X"}`)); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Update missing = %v", err)
	}
	if err := svc.Delete(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Delete missing = %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n, _ := svc.Count(ctx); n != 0 {
		t.Fatalf("count after delete = %d", n)
	}
}

func TestProductionServiceRejectsMalformedBodies(t *testing.T) {
	ctx := context.Background()
	svc := newProductionService(t)

	if _, err := svc.Create(ctx, []byte(`{"title":`)); !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("Create malformed = %v", err)
	}
	if _, err := svc.Create(ctx, []byte(`[]`)); !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("Create array = %v", err)
	}
	created, _ := svc.Create(ctx, []byte(`{"title":"Dark"}`))
	if _, err := svc.Update(ctx, created.ID, []byte(`nope`)); !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("Update malformed = %v", err)
	}
}

func TestProductionServiceSearchNormalizesFilter(t *testing.T) {
	ctx := context.Background()
	svc := newProductionService(t)
	for i := 0; i < 7; i++ {
		if _, err := svc.Create(ctx, []byte(`{"title":"Dune"}`)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	page, err := svc.Search(ctx, production.Filter{Query: "dune", Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 7 || len(page.Productions) != production.DefaultLimit || page.Page != 1 || page.TotalPages != 2 {
		t.Fatalf("unexpected page: total=%d len=%d page=%d pages=%d", page.Total, len(page.Productions), page.Page, page.TotalPages)
	}
}

func TestParseID(t *testing.T) {
	if id, err := api.ParseID(" 42 "); err != nil || id != 42 {
		t.Fatalf("ParseID = %d, %v", id, err)
	}
	if _, err := api.ParseID("abc"); !errors.Is(err, api.ErrInvalidInput) {
		t.Fatalf("ParseID(abc) = %v", err)
	}
}

func TestParseFilter(t *testing.T) {
	got := api.ParseFilter("dune", "filme", "x", "500")
	want := production.Filter{Query: "dune", Type: "filme", Page: 1, Limit: production.MaxLimit}
	if got != want {
		t.Fatalf("ParseFilter = %+v, want %+v", got, want)
	}
	got = api.ParseFilter("", "", "3", "10")
	if got.Page != 3 || got.Limit != 10 {
		t.Fatalf("ParseFilter numeric = %+v", got)
	}
}
