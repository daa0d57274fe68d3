package media

import (
	"strconv"
	"strings"

	"cinedex/internal/production"
	"cinedex/internal/tmdb"
)

// DefaultImageBaseURL prefixes poster paths.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

// Result is one auto-fill candidate. It is never persisted.
type Result struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"originalTitle"`
	Type          string   `json:"type"`
	Genre         string   `json:"genre"`
	Year          int      `json:"year"`
	Rating        *float64 `json:"rating"`
	Poster        *string  `json:"poster"`
}

// Production converts the candidate into a record ready for insertion.
func (r Result) Production() production.Production {
	p := production.Production{
		Title: r.Title,
		Type:  r.Type,
		Genre: r.Genre,
		Year:  r.Year,
	}
	if r.Rating != nil {
		p.Rating = production.Float(*r.Rating)
	}
	return p
}

// Mapper turns TMDB matches into Results.
type Mapper struct {
	Genres       GenreTables
	ImageBaseURL string
}

// NewMapper builds a Mapper; an empty imageBaseURL uses DefaultImageBaseURL.
func NewMapper(genres GenreTables, imageBaseURL string) *Mapper {
	imageBaseURL = strings.TrimRight(strings.TrimSpace(imageBaseURL), "/")
	if imageBaseURL == "" {
		imageBaseURL = DefaultImageBaseURL
	}
	return &Mapper{Genres: genres, ImageBaseURL: imageBaseURL}
}

// MapAll keeps movie and TV matches in upstream order. The result is never nil.
func (m *Mapper) MapAll(results []tmdb.Result) []Result {
	out := make([]Result, 0, len(results))
	for _, item := range results {
		if item.MediaType != tmdb.MediaMovie && item.MediaType != tmdb.MediaTV {
			continue
		}
		out = append(out, m.Map(item))
	}
	return out
}

// Map converts a single movie or TV match.
func (m *Mapper) Map(item tmdb.Result) Result {
	movie := item.MediaType == tmdb.MediaMovie
	res := Result{
		ID:     item.ID,
		Genre:  m.Genres.Name(item.MediaType, item.GenreIDs),
		Rating: production.RoundRating(item.VoteAverage),
	}
	if movie {
		res.Title = item.Title
		res.OriginalTitle = item.OriginalTitle
		res.Type = production.TypeMovie
		res.Year = yearOf(item.ReleaseDate)
	} else {
		res.Title = item.Name
		res.OriginalTitle = item.OriginalName
		res.Type = production.TypeSeries
		res.Year = yearOf(item.FirstAirDate)
	}
	if path := strings.TrimSpace(item.PosterPath); path != "" {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		poster := m.ImageBaseURL + path
		res.Poster = &poster
	}
	return res
}

// yearOf extracts YYYY from a YYYY-MM-DD date; anything else is zero.
func yearOf(date string) int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}
