package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cinedex/internal/config"
	"cinedex/internal/daemon"
	"cinedex/internal/logging"
	"cinedex/internal/testsupport"
	"cinedex/internal/tmdb"
)

type cliTestEnv struct {
	cfg        *config.Config
	daemon     *daemon.Daemon
	configPath string
	apiURL     string
}

// fakeTMDB answers /search/multi from a fixed table keyed by query and
// accepts any key on /configuration.
func fakeTMDB(t *testing.T) *httptest.Server {
	t.Helper()
	responses := map[string][]tmdb.Result{
		"duna": {
			{ID: 438631, MediaType: tmdb.MediaMovie, Title: "Duna", OriginalTitle: "Dune", GenreIDs: []int{878}, ReleaseDate: "2021-09-15", VoteAverage: 7.78},
		},
		"alien": {
			{ID: 348, MediaType: tmdb.MediaMovie, Title: "Alien, o Oitavo Passageiro", OriginalTitle: "Alien", GenreIDs: []int{27}, ReleaseDate: "1979-05-25", VoteAverage: 8.16},
			{ID: 157239, MediaType: tmdb.MediaTV, Name: "Alien: Earth", OriginalName: "Alien: Earth", GenreIDs: []int{18}, FirstAirDate: "2025-08-12", VoteAverage: 7.5},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/configuration":
			_, _ = w.Write([]byte(`{"images":{"secure_base_url":"https://image.tmdb.org/t/p/"}}`))
		case "/search/multi":
			results := responses[strings.ToLower(r.URL.Query().Get("query"))]
			if results == nil {
				results = []tmdb.Result{}
			}
			_ = json.NewEncoder(w).Encode(tmdb.Response{Page: 1, Results: results, TotalResults: len(results)})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("CINEDEX_API_URL", "")
	t.Setenv("CINEDEX_PORT", "")
	t.Setenv("PORT", "")

	tmdbServer := fakeTMDB(t)
	cfg := testsupport.NewConfig(t,
		testsupport.WithTMDBKey("test-key"),
		testsupport.WithTMDBBaseURL(tmdbServer.URL),
	)

	st := testsupport.MustOpenStore(t, cfg)
	d, err := daemon.New(cfg, st, logging.NewNop(), daemon.WithVersion("test"))
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := d.Start(ctx); err != nil {
		cancel()
		t.Fatalf("daemon.Start: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		d.Stop()
	})

	cfg.Client.APIURL = "http://" + d.Addr() + "/api"
	configPath := filepath.Join(homeDir, ".config", "cinedex", "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		daemon:     d,
		configPath: configPath,
		apiURL:     cfg.Client.APIURL,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, args, configPath, "")
}

func runCLIWithInput(t *testing.T, args []string, configPath, input string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(strings.NewReader(out)).Decode(&v); err != nil && err != io.EOF {
		t.Fatalf("decode %q: %v", out, err)
	}
	return v
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
