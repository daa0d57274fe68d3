package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeServer()
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	if err := c.normalizeTMDB(); err != nil {
		return err
	}
	c.normalizeClient()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeServer() {
	c.Server.Host = strings.TrimSpace(c.Server.Host)
	if c.Server.Port == 0 {
		c.Server.Port = portFromEnv()
	}
	origins := make([]string, 0, len(c.Server.CORSOrigins))
	for _, origin := range c.Server.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.Server.CORSOrigins = origins
	c.Server.StaticDir = strings.TrimSpace(c.Server.StaticDir)
	if c.Server.StaticDir != "" {
		if expanded, err := expandPath(c.Server.StaticDir); err == nil {
			c.Server.StaticDir = expanded
		}
	}
}

func portFromEnv() int {
	for _, key := range []string{"CINEDEX_PORT", "PORT"} {
		value, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		port, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil && port > 0 {
			return port
		}
	}
	return defaultPort
}

func (c *Config) normalizeStorage() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultStorageBackend
	}
	c.Storage.Path = strings.TrimSpace(c.Storage.Path)
	if c.Storage.Path == "" {
		name := defaultJSONFileName
		if c.Storage.Backend == BackendSQLite {
			name = defaultSQLiteFileName
		}
		c.Storage.Path = filepath.Join(c.Paths.DataDir, name)
	}
	var err error
	if c.Storage.Path, err = expandPath(c.Storage.Path); err != nil {
		return fmt.Errorf("storage.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() error {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimSpace(c.TMDB.ImageBaseURL)
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	if c.TMDB.TimeoutSeconds <= 0 {
		c.TMDB.TimeoutSeconds = defaultTMDBTimeoutSeconds
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		c.TMDB.RequestsPerSecond = defaultTMDBRequestsPerSec
	}
	if c.TMDB.Burst <= 0 {
		c.TMDB.Burst = defaultTMDBBurst
	}
	c.TMDB.GenresPath = strings.TrimSpace(c.TMDB.GenresPath)
	if c.TMDB.GenresPath != "" {
		var err error
		if c.TMDB.GenresPath, err = expandPath(c.TMDB.GenresPath); err != nil {
			return fmt.Errorf("tmdb.genres_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeClient() {
	c.Client.APIURL = strings.TrimSpace(c.Client.APIURL)
	if value, ok := os.LookupEnv("CINEDEX_API_URL"); ok && strings.TrimSpace(value) != "" {
		c.Client.APIURL = strings.TrimSpace(value)
	}
	if c.Client.APIURL == "" {
		c.Client.APIURL = defaultClientAPIURL
	}
	c.Client.APIURL = strings.TrimRight(c.Client.APIURL, "/")
	if c.Client.PageSize <= 0 {
		c.Client.PageSize = defaultClientPageSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
