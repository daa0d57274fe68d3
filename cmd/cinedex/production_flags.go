package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinedex/internal/production"
)

// productionFlags are the form fields shared by add and edit.
type productionFlags struct {
	title  string
	kind   string
	genre  string
	year   int
	rating float64
	extras map[string]string
}

func (f *productionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().StringVar(&f.kind, "type", "", "Type (filme or serie)")
	cmd.Flags().StringVar(&f.genre, "genre", "", "Genre")
	cmd.Flags().IntVar(&f.year, "year", 0, "Release year")
	cmd.Flags().Float64Var(&f.rating, "rating", 0, "Rating (0 clears it)")
	cmd.Flags().StringToStringVar(&f.extras, "field", nil, "Extra field as key=value (repeatable)")
}

// apply copies the flags the user actually set onto p. When skipTitle is set
// the --title flag is treated as a search query only.
func (f *productionFlags) apply(cmd *cobra.Command, p *production.Production, skipTitle bool) error {
	flags := cmd.Flags()
	if flags.Changed("title") && !skipTitle {
		p.Title = strings.TrimSpace(f.title)
	}
	if flags.Changed("type") {
		kind, err := normalizeType(f.kind)
		if err != nil {
			return err
		}
		p.Type = kind
	}
	if flags.Changed("genre") {
		p.Genre = strings.TrimSpace(f.genre)
	}
	if flags.Changed("year") {
		p.Year = f.year
	}
	if flags.Changed("rating") {
		p.Rating = production.RoundRating(f.rating)
	}
	for key, value := range f.extras {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if isCanonicalKey(key) {
			return fmt.Errorf("--field %s: use the dedicated flag instead", key)
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("--field %s: %w", key, err)
		}
		if p.Extras == nil {
			p.Extras = make(map[string]json.RawMessage)
		}
		p.Extras[key] = raw
	}
	return nil
}

func (f *productionFlags) anyChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"title", "type", "genre", "year", "rating", "field"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func normalizeType(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case production.TypeMovie, "movie", "film":
		return production.TypeMovie, nil
	case production.TypeSeries, "série", "series", "tv":
		return production.TypeSeries, nil
	default:
		return "", fmt.Errorf("--type must be %q or %q, got %q", production.TypeMovie, production.TypeSeries, value)
	}
}

func isCanonicalKey(key string) bool {
	switch key {
	case production.KeyID, production.KeyTitle, production.KeyType, production.KeyGenre, production.KeyYear, production.KeyRating:
		return true
	}
	return false
}
