// ABOUTME: Core data models for media collections
// ABOUTME: Defines media keys, consumed metadata, membership and rating records

package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MediaID identifies a media entry within its type. Zero means absent.
type MediaID int64

// ParseMediaID parses a positive decimal identifier.
func ParseMediaID(s string) (MediaID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid media id %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("media id must be positive, got %d", n)
	}
	return MediaID(n), nil
}

// MediaType is the kind of media entry.
type MediaType string

const (
	Movie MediaType = "movie"
	TV    MediaType = "tv"
)

// OrDefault returns Movie for an unspecified type.
func (t MediaType) OrDefault() MediaType {
	if t == "" {
		return Movie
	}
	return t
}

// ParseMediaType accepts "movie" or "tv" (any case). Empty input yields Movie.
func ParseMediaType(s string) (MediaType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "movie":
		return Movie, nil
	case "tv":
		return TV, nil
	default:
		return "", fmt.Errorf("unknown media type %q (use movie or tv)", s)
	}
}

// Key is the unique key of a record within one collection.
type Key struct {
	ID   MediaID
	Type MediaType
}

// NewKey builds a key, defaulting the type to Movie.
func NewKey(id MediaID, t MediaType) Key {
	return Key{ID: id, Type: t.OrDefault()}
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Type, k.ID)
}

// MediaItem is metadata supplied by the remote media API. Every field is optional.
type MediaItem struct {
	ID           MediaID `json:"id,omitempty"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
}

// DisplayTitle prefers the movie title and falls back to the show name.
func (m *MediaItem) DisplayTitle() string {
	if m == nil {
		return ""
	}
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// Poster prefers the poster image and falls back to the backdrop, or nil.
func (m *MediaItem) Poster() *string {
	if m == nil {
		return nil
	}
	switch {
	case m.PosterPath != "":
		p := m.PosterPath
		return &p
	case m.BackdropPath != "":
		p := m.BackdropPath
		return &p
	}
	return nil
}

// MediaRecord is a membership entry (liked, watched, wishlisted).
type MediaRecord struct {
	ID         MediaID   `json:"id"`
	Type       MediaType `json:"type"`
	Title      string    `json:"title"`
	PosterPath *string   `json:"poster_path"`
	At         Timestamp `json:"at"`
}

// Key returns the collection key of the record.
func (r MediaRecord) Key() Key {
	return NewKey(r.ID, r.Type)
}

// Rating bounds, inclusive.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// ValidRating reports whether r is a finite value within [MinRating, MaxRating].
func ValidRating(r float64) bool {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return false
	}
	return r >= MinRating && r <= MaxRating
}

// RatingRecord is a scored entry.
type RatingRecord struct {
	ID      MediaID   `json:"id"`
	Type    MediaType `json:"type"`
	Rating  float64   `json:"rating"`
	Title   string    `json:"title"`
	RatedAt Timestamp `json:"ratedAt"`
}

// Key returns the collection key of the record.
func (r RatingRecord) Key() Key {
	return NewKey(r.ID, r.Type)
}
