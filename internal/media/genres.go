package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Genre labels used when a match has no usable genre.
const (
	DefaultFallbackGenre = "Outros"
	UnspecifiedGenre     = "Não especificado"
)

// GenreTables maps TMDB genre ids to display names per media type.
type GenreTables struct {
	Movie       map[int]string `yaml:"movie"`
	TV          map[int]string `yaml:"tv"`
	Fallback    string         `yaml:"fallback"`
	Unspecified string         `yaml:"unspecified"`
}

// DefaultGenreTables returns the built-in tables.
func DefaultGenreTables() GenreTables {
	return GenreTables{
		Movie: map[int]string{
			28:    "Ação",
			35:    "Comédia",
			18:    "Drama",
			10749: "Romance",
			27:    "Terror",
			878:   "Ficção Científica",
			12:    "Aventura",
		},
		TV: map[int]string{
			10759: "Ação & Aventura",
			16:    "Animação",
			35:    "Comédia",
			80:    "Crime",
			99:    "Documentário",
			18:    "Drama",
		},
		Fallback:    DefaultFallbackGenre,
		Unspecified: UnspecifiedGenre,
	}
}

// LoadGenreTables reads a YAML override file. Entries in the file replace or
// extend the defaults; a missing file returns the defaults unchanged.
func LoadGenreTables(path string) (GenreTables, error) {
	tables := DefaultGenreTables()
	path = strings.TrimSpace(path)
	if path == "" {
		return tables, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tables, nil
		}
		return tables, fmt.Errorf("read genre tables: %w", err)
	}

	var override GenreTables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return tables, fmt.Errorf("parse genre tables: %w", err)
	}
	for id, name := range override.Movie {
		tables.Movie[id] = name
	}
	for id, name := range override.TV {
		tables.TV[id] = name
	}
	if name := strings.TrimSpace(override.Fallback); name != "" {
		tables.Fallback = name
	}
	if name := strings.TrimSpace(override.Unspecified); name != "" {
		tables.Unspecified = name
	}
	return tables, nil
}

// Name resolves the genre of a match from its first genre id.
func (g GenreTables) Name(mediaType string, genreIDs []int) string {
	if len(genreIDs) == 0 {
		return g.unspecified()
	}
	table := g.Movie
	if mediaType == "tv" {
		table = g.TV
	}
	if name, ok := table[genreIDs[0]]; ok {
		return name
	}
	return g.fallback()
}

func (g GenreTables) fallback() string {
	if g.Fallback == "" {
		return DefaultFallbackGenre
	}
	return g.Fallback
}

func (g GenreTables) unspecified() string {
	if g.Unspecified == "" {
		return UnspecifiedGenre
	}
	return g.Unspecified
}
