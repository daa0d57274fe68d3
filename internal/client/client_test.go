package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cinedex/internal/api"
	"cinedex/internal/client"
	"cinedex/internal/media"
	"cinedex/internal/production"
	"cinedex/internal/server"
	"cinedex/internal/store"
	"cinedex/internal/tmdb"
)

type fakeSearcher struct {
	resp *tmdb.Response
	err  error
}

func (f fakeSearcher) SearchMulti(context.Context, string, string) (*tmdb.Response, error) {
	return f.resp, f.err
}

func newTestClient(t *testing.T, searcher tmdb.Searcher) *client.Client {
	t.Helper()
	st, err := store.OpenJSON(filepath.Join(t.TempDir(), "productions.json"), nil)
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	handler, err := server.NewHandler(server.Options{
		Productions: api.NewProductionService(st, nil),
		Media:       api.NewMediaService(searcher, media.NewMapper(media.DefaultGenreTables(), ""), "pt-BR", nil),
		Status: func(ctx context.Context) (api.Status, error) {
			n, err := st.Count(ctx)
			return api.Status{Backend: "json", Count: n, Version: "test"}, err
		},
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL+"/api/", client.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return c
}

func dune() production.Production {
	return production.Production{
		Title:  "Dune",
		Type:   production.TypeMovie,
		Genre:  "Ficção Científica",
		Year:   2021,
		Rating: production.Float(8.0),
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := client.New(""); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := client.New("not a url"); err == nil {
		t.Fatal("expected error for relative url")
	}
	c, err := client.New("http://localhost:3000/api/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.BaseURL() != "http://localhost:3000/api" {
		t.Fatalf("unexpected base url: %q", c.BaseURL())
	}
}

func TestClientCRUD(t *testing.T) {
	c := newTestClient(t, nil)
	ctx := context.Background()

	list, err := c.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}

	created, err := c.Create(ctx, dune())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}
	want := dune()
	want.ID = created.ID
	if diff := cmp.Diff(want, created); diff != "" {
		t.Fatalf("created mismatch (-want +got):\n%s", diff)
	}

	edited := created
	edited.Rating = production.Float(8.5)
	updated, err := c.Update(ctx, created.ID, edited)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.RatingValue() != 8.5 || updated.Title != "Dune" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	msg, err := c.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if msg != api.MessageDeleted {
		t.Fatalf("unexpected delete message: %q", msg)
	}
	list, err = c.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(list))
	}
}

func TestClientNotFound(t *testing.T) {
	c := newTestClient(t, nil)

	_, err := c.Update(context.Background(), 999, dune())
	if !client.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Message != api.MessageNotFound {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}

	if _, err := c.Delete(context.Background(), 999); !client.IsNotFound(err) {
		t.Fatalf("expected not found on delete, got %v", err)
	}
}

func TestClientSearchPaging(t *testing.T) {
	c := newTestClient(t, nil)
	ctx := context.Background()
	titles := []string{"Alien", "Aliens", "Alien 3", "Arrival", "Heat", "Alien: Romulus"}
	for _, title := range titles {
		if _, err := c.Create(ctx, production.Production{Title: title, Type: production.TypeMovie}); err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
	}

	page, err := c.Search(ctx, production.Filter{Query: "alien", Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 4 || page.Page != 2 || page.Limit != 3 || page.TotalPages != 2 {
		t.Fatalf("unexpected page meta: %+v", page)
	}
	if len(page.Productions) != 1 || page.Productions[0].Title != "Alien: Romulus" {
		t.Fatalf("unexpected page contents: %+v", page.Productions)
	}

	empty, err := c.Search(ctx, production.Filter{Query: "zzz"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if empty.Productions == nil || empty.Total != 0 {
		t.Fatalf("expected empty page, got %+v", empty)
	}
}

func TestClientSearchMedia(t *testing.T) {
	c := newTestClient(t, fakeSearcher{resp: &tmdb.Response{Results: []tmdb.Result{
		{ID: 438631, MediaType: tmdb.MediaMovie, Title: "Duna", OriginalTitle: "Dune", GenreIDs: []int{878}, ReleaseDate: "2021-09-15", VoteAverage: 7.78},
		{ID: 1, MediaType: tmdb.MediaPerson, Name: "Someone"},
	}}})

	results, err := c.SearchMedia(context.Background(), "duna", "")
	if err != nil {
		t.Fatalf("SearchMedia: %v", err)
	}
	want := []media.Result{{
		ID:            438631,
		Title:         "Duna",
		OriginalTitle: "Dune",
		Type:          production.TypeMovie,
		Genre:         "Ficção Científica",
		Year:          2021,
		Rating:        production.Float(7.8),
	}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestClientSearchMediaUpstreamFailure(t *testing.T) {
	c := newTestClient(t, fakeSearcher{err: errors.New("boom")})

	_, err := c.SearchMedia(context.Background(), "duna", "pt-BR")
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Message != api.MessageMediaSearchFailed {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestClientHelloAndStatus(t *testing.T) {
	c := newTestClient(t, nil)
	ctx := context.Background()

	msg, err := c.Hello(ctx)
	if err != nil {
		t.Fatalf("Hello: %v", err)
	}
	if msg != api.MessageHello {
		t.Fatalf("unexpected hello: %q", msg)
	}

	if _, err := c.Create(ctx, dune()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	status, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Count != 1 || status.Backend != "json" || status.Version != "test" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := client.New(url + "/api")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.ListAll(context.Background())
	if !errors.Is(err, client.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestClientPlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Hello(context.Background())
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Message != "bad gateway" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}
