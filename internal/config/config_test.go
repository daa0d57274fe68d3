package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"cinedex/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("CINEDEX_PORT", "")
	t.Setenv("CINEDEX_API_URL", "")
	return home
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	home := isolateEnv(t)
	t.Setenv("TMDB_API_KEY", "test-key")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(home, ".local", "share", "cinedex")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Storage.Backend != config.BackendJSON {
		t.Fatalf("unexpected backend: %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != filepath.Join(wantData, "productions.json") {
		t.Fatalf("unexpected storage path: %q", cfg.Storage.Path)
	}
	if cfg.Server.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.ListenAddress() != ":3000" {
		t.Fatalf("unexpected listen address: %q", cfg.ListenAddress())
	}
	if cfg.TMDB.APIKey != "test-key" {
		t.Fatalf("expected TMDB key from env, got %q", cfg.TMDB.APIKey)
	}
	if cfg.TMDB.Language != "pt-BR" {
		t.Fatalf("unexpected TMDB language: %q", cfg.TMDB.Language)
	}
	if cfg.Client.PageSize != 5 {
		t.Fatalf("unexpected page size: %d", cfg.Client.PageSize)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadWithoutTMDBKeyIsValid(t *testing.T) {
	isolateEnv(t)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HasTMDBKey() {
		t.Fatal("expected no TMDB key")
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolateEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "cinedex.toml")

	type payload struct {
		Server struct {
			Port int `toml:"port"`
		} `toml:"server"`
		Storage struct {
			Backend string `toml:"backend"`
		} `toml:"storage"`
		TMDB struct {
			APIKey  string `toml:"api_key"`
			BaseURL string `toml:"base_url"`
		} `toml:"tmdb"`
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
	}
	custom := payload{}
	custom.Server.Port = 8080
	custom.Storage.Backend = " SQLite "
	custom.TMDB.APIKey = "abc123"
	custom.TMDB.BaseURL = "https://example.com/tmdb"
	custom.Paths.DataDir = filepath.Join(tempDir, "data")

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom path to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.Storage.Backend != config.BackendSQLite {
		t.Fatalf("unexpected backend: %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != filepath.Join(tempDir, "data", "productions.db") {
		t.Fatalf("unexpected sqlite path: %q", cfg.Storage.Path)
	}
	if cfg.TMDB.BaseURL != "https://example.com/tmdb" {
		t.Fatalf("unexpected base url: %q", cfg.TMDB.BaseURL)
	}
}

func TestPortFallsBackToEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "4100")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 4100 {
		t.Fatalf("expected port from PORT, got %d", cfg.Server.Port)
	}

	t.Setenv("CINEDEX_PORT", "4200")
	cfg, _, _, err = config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 4200 {
		t.Fatalf("expected CINEDEX_PORT to win, got %d", cfg.Server.Port)
	}
}

func TestDotenvSuppliesTMDBKey(t *testing.T) {
	isolateEnv(t)
	os.Unsetenv("TMDB_API_KEY")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TMDB_API_KEY=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("TMDB_API_KEY") })

	cfg, _, _, err := config.Load(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.APIKey != "from-dotenv" {
		t.Fatalf("expected key from .env, got %q", cfg.TMDB.APIKey)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cinedex.toml")
	if err := os.WriteFile(path, []byte("[storage]\nbackend = \"postgres\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "storage.backend") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	isolateEnv(t)
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Client.APIURL != "http://localhost:3000/api" {
		t.Fatalf("unexpected api url: %q", cfg.Client.APIURL)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := isolateEnv(t)
	got, err := config.ExpandPath("~/catalog")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "catalog") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
