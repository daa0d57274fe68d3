package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const maxClientPageSize = 100

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateClient(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendJSON, BackendSQLite, c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path must be set")
	}
	return nil
}

// validateTMDB checks connection settings only. A missing api key is allowed:
// the catalog works without auto-fill and media search reports an upstream failure.
func (c *Config) validateTMDB() error {
	if _, err := url.ParseRequestURI(c.TMDB.BaseURL); err != nil {
		return fmt.Errorf("tmdb.base_url is invalid: %w", err)
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		return errors.New("tmdb.requests_per_second must be positive")
	}
	if c.TMDB.Burst <= 0 {
		return errors.New("tmdb.burst must be positive")
	}
	return nil
}

func (c *Config) validateClient() error {
	if _, err := url.ParseRequestURI(c.Client.APIURL); err != nil {
		return fmt.Errorf("client.api_url is invalid: %w", err)
	}
	if c.Client.PageSize > maxClientPageSize {
		return fmt.Errorf("client.page_size must be at most %d", maxClientPageSize)
	}
	return nil
}

// HasTMDBKey reports whether media search can reach TMDB.
func (c *Config) HasTMDBKey() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}
