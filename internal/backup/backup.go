// ABOUTME: YAML backup and restore of every collection
// ABOUTME: Import merges into existing collections without overwriting entries

package backup

import (
	"fmt"
	"time"

	"github.com/harper/reel/internal/models"
	"github.com/harper/reel/internal/stores"
	"gopkg.in/yaml.v3"
)

// Version is the current backup format version.
const Version = "1.0"

// Tool identifies backups written by reel.
const Tool = "reel"

// Document is the YAML backup format.
type Document struct {
	Version    string        `yaml:"version"`
	ExportedAt time.Time     `yaml:"exported_at"`
	Tool       string        `yaml:"tool"`
	Liked      []MediaEntry  `yaml:"liked"`
	Watched    []MediaEntry  `yaml:"watched"`
	Wishlist   []MediaEntry  `yaml:"wishlist"`
	Ratings    []RatingEntry `yaml:"ratings"`
}

// MediaEntry is a membership record in the backup format.
type MediaEntry struct {
	ID         int64     `yaml:"id"`
	Type       string    `yaml:"type"`
	Title      string    `yaml:"title,omitempty"`
	PosterPath string    `yaml:"poster_path,omitempty"`
	At         time.Time `yaml:"at"`
}

// RatingEntry is a rating record in the backup format.
type RatingEntry struct {
	ID      int64     `yaml:"id"`
	Type    string    `yaml:"type"`
	Rating  float64   `yaml:"rating"`
	Title   string    `yaml:"title,omitempty"`
	RatedAt time.Time `yaml:"rated_at"`
}

// Summary counts what an import added and skipped.
type Summary struct {
	Added   map[string]int
	Skipped map[string]int
}

// Total returns the number of added records across collections.
func (s Summary) Total() int {
	n := 0
	for _, v := range s.Added {
		n += v
	}
	return n
}

// Build snapshots every collection into a Document.
func Build(reg *stores.Registry, now time.Time) Document {
	doc := Document{
		Version:    Version,
		ExportedAt: now.UTC(),
		Tool:       Tool,
		Liked:      mediaEntries(reg.Liked().Items()),
		Watched:    mediaEntries(reg.Watched().Items()),
		Wishlist:   mediaEntries(reg.Wishlist().Items()),
	}
	for _, rec := range reg.Ratings().Items() {
		doc.Ratings = append(doc.Ratings, RatingEntry{
			ID:      int64(rec.ID),
			Type:    string(rec.Type),
			Rating:  rec.Rating,
			Title:   rec.Title,
			RatedAt: rec.RatedAt.Time,
		})
	}
	return doc
}

// Export writes every collection as YAML.
func Export(reg *stores.Registry) ([]byte, error) {
	return yaml.Marshal(Build(reg, time.Now()))
}

// Parse decodes and validates a backup document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("unsupported backup version: %s (expected %s)", doc.Version, Version)
	}
	if doc.Tool != Tool {
		return nil, fmt.Errorf("wrong tool: %s (expected %s)", doc.Tool, Tool)
	}
	return &doc, nil
}

// Import merges a YAML backup into the registry. Entries already present are
// skipped, so importing the same backup twice adds nothing.
func Import(reg *stores.Registry, data []byte) (Summary, error) {
	doc, err := Parse(data)
	if err != nil {
		return Summary{}, err
	}
	return Apply(reg, doc), nil
}

// Apply merges doc into the registry.
func Apply(reg *stores.Registry, doc *Document) Summary {
	sum := Summary{Added: map[string]int{}, Skipped: map[string]int{}}

	lists := map[stores.Relation][]MediaEntry{
		stores.Liked:    doc.Liked,
		stores.Watched:  doc.Watched,
		stores.Wishlist: doc.Wishlist,
	}
	for _, rel := range stores.Relations {
		s, _ := reg.Membership(rel)
		entries := lists[rel]
		// Stored most recent first; restoring in reverse keeps that order.
		for i := len(entries) - 1; i >= 0; i-- {
			if s.Restore(entries[i].record()) {
				sum.Added[string(rel)]++
			} else {
				sum.Skipped[string(rel)]++
			}
		}
	}

	for _, e := range doc.Ratings {
		rec := models.RatingRecord{
			ID:      models.MediaID(e.ID),
			Type:    models.MediaType(e.Type),
			Rating:  e.Rating,
			Title:   e.Title,
			RatedAt: timestampOrZero(e.RatedAt),
		}
		if reg.Ratings().Restore(rec) {
			sum.Added[stores.RatingsName]++
		} else {
			sum.Skipped[stores.RatingsName]++
		}
	}
	return sum
}

func mediaEntries(recs []models.MediaRecord) []MediaEntry {
	out := make([]MediaEntry, 0, len(recs))
	for _, rec := range recs {
		e := MediaEntry{
			ID:    int64(rec.ID),
			Type:  string(rec.Type),
			Title: rec.Title,
			At:    rec.At.Time,
		}
		if rec.PosterPath != nil {
			e.PosterPath = *rec.PosterPath
		}
		out = append(out, e)
	}
	return out
}

func (e MediaEntry) record() models.MediaRecord {
	rec := models.MediaRecord{
		ID:    models.MediaID(e.ID),
		Type:  models.MediaType(e.Type),
		Title: e.Title,
		At:    timestampOrZero(e.At),
	}
	if e.PosterPath != "" {
		p := e.PosterPath
		rec.PosterPath = &p
	}
	return rec
}

func timestampOrZero(t time.Time) models.Timestamp {
	if t.IsZero() {
		return models.Timestamp{}
	}
	return models.NewTimestamp(t)
}
