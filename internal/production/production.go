package production

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Canonical member names.
const (
	KeyID     = "id"
	KeyTitle  = "title"
	KeyType   = "type"
	KeyGenre  = "genre"
	KeyYear   = "year"
	KeyRating = "rating"
)

// Production types used by the media mapper and the client form.
const (
	TypeMovie  = "filme"
	TypeSeries = "serie"
)

var canonicalKeys = map[string]struct{}{
	KeyID: {}, KeyTitle: {}, KeyType: {}, KeyGenre: {}, KeyYear: {}, KeyRating: {},
}

// Production is a single catalog entry.
type Production struct {
	ID     int64
	Title  string
	Type   string
	Genre  string
	Year   int
	Rating *float64
	// Extras holds JSON members outside the canonical schema, keyed by name.
	Extras map[string]json.RawMessage
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (p Production) Clone() Production {
	out := p
	if p.Rating != nil {
		r := *p.Rating
		out.Rating = &r
	}
	if p.Extras != nil {
		out.Extras = make(map[string]json.RawMessage, len(p.Extras))
		for k, v := range p.Extras {
			out.Extras[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// RatingValue returns the rating or zero when unset.
func (p Production) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// Float returns a pointer to v, for building ratings in literals.
func Float(v float64) *float64 { return &v }

// RoundRating rounds to one decimal place and maps zero to nil.
func RoundRating(v float64) *float64 {
	rounded := math.Round(v*10) / 10
	if rounded == 0 || math.IsNaN(rounded) || math.IsInf(rounded, 0) {
		return nil
	}
	return &rounded
}

// MarshalJSON writes canonical members first, then extras in key order.
func (p Production) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		raw, ok := value.(json.RawMessage)
		if ok {
			buf.Write(raw)
			return nil
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		buf.Write(encoded)
		return nil
	}

	if err := write(KeyID, p.ID); err != nil {
		return nil, err
	}
	if err := write(KeyTitle, p.Title); err != nil {
		return nil, err
	}
	if err := write(KeyType, p.Type); err != nil {
		return nil, err
	}
	if err := write(KeyGenre, p.Genre); err != nil {
		return nil, err
	}
	if err := write(KeyYear, p.Year); err != nil {
		return nil, err
	}
	if err := write(KeyRating, p.Rating); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(p.Extras))
	for k := range p.Extras {
		if _, reserved := canonicalKeys[k]; reserved {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		raw := p.Extras[k]
		if len(bytes.TrimSpace(raw)) == 0 || !json.Valid(raw) {
			raw = json.RawMessage("null")
		}
		if err := write(k, raw); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, coercing year and rating and keeping
// unknown members in Extras.
func (p *Production) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return fmt.Errorf("decode production: %w", err)
	}
	if members == nil {
		return fmt.Errorf("decode production: expected object")
	}
	*p = Production{}
	p.apply(members, true)
	return nil
}

// apply copies members onto p. When withID is false the id member is ignored.
func (p *Production) apply(members map[string]json.RawMessage, withID bool) {
	for key, raw := range members {
		switch key {
		case KeyID:
			if withID {
				p.ID = int64(coerceInt(raw))
			}
		case KeyTitle:
			p.Title = coerceString(raw)
		case KeyType:
			p.Type = coerceString(raw)
		case KeyGenre:
			p.Genre = coerceString(raw)
		case KeyYear:
			p.Year = coerceInt(raw)
		case KeyRating:
			p.Rating = coerceRating(raw)
		default:
			if p.Extras == nil {
				p.Extras = make(map[string]json.RawMessage)
			}
			p.Extras[key] = append(json.RawMessage(nil), raw...)
		}
	}
}

func coerceString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}
	switch trimmed[0] {
	case '{', '[':
		return ""
	}
	return string(trimmed)
}

// coerceInt accepts a number or a numeric string; anything else is zero.
func coerceInt(raw json.RawMessage) int {
	value, ok := coerceNumber(raw)
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return int(value)
}

// coerceRating accepts a number or a numeric string. Empty, null and invalid
// values clear the rating.
func coerceRating(raw json.RawMessage) *float64 {
	value, ok := coerceNumber(raw)
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

func coerceNumber(raw json.RawMessage) (float64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
