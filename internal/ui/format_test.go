// ABOUTME: Unit tests for terminal UI formatting
// ABOUTME: Tests human-readable output for records, ratings and store health

package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harper/reel/internal/collection"
	"github.com/harper/reel/internal/models"
)

func TestFormatRecord(t *testing.T) {
	poster := "/p.jpg"
	rec := models.MediaRecord{
		ID:         42,
		Type:       models.Movie,
		Title:      "Dune",
		PosterPath: &poster,
		At:         models.NewTimestamp(time.Now().Add(-2 * time.Hour)),
	}

	output := FormatRecord(rec)
	if !strings.Contains(output, "Dune") {
		t.Error("expected output to contain title")
	}
	if !strings.Contains(output, "movie:42") {
		t.Error("expected output to contain key")
	}
	if !strings.Contains(output, "2 hours ago") {
		t.Errorf("expected relative time, got %q", output)
	}
}

func TestFormatRecord_Untitled(t *testing.T) {
	output := FormatRecord(models.MediaRecord{ID: 7, Type: models.TV})
	if !strings.Contains(output, "(untitled)") {
		t.Errorf("expected untitled placeholder, got %q", output)
	}
	if !strings.Contains(output, "unknown time") {
		t.Errorf("expected unknown time for zero timestamp, got %q", output)
	}
}

func TestFormatRating(t *testing.T) {
	rec := models.RatingRecord{
		ID:      7,
		Type:    models.TV,
		Rating:  4.5,
		Title:   "Show",
		RatedAt: models.NewTimestamp(time.Now()),
	}

	output := FormatRating(rec)
	for _, want := range []string{"Show", "tv:7", "4.5", "★★★★½"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{0, "☆☆☆☆☆ 0"},
		{2, "★★☆☆☆ 2"},
		{3.5, "★★★½☆ 3.5"},
		{3.7, "★★★½☆ 3.7"},
		{5, "★★★★★ 5"},
	}

	for _, tc := range tests {
		if got := Stars(tc.rating); got != tc.want {
			t.Errorf("Stars(%v) = %q, want %q", tc.rating, got, tc.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{0: "0", 4: "4", 4.5: "4.5", 3.25: "3.25", 1.999: "2"}
	for in, want := range tests {
		if got := FormatScore(in); got != want {
			t.Errorf("FormatScore(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatStatus(t *testing.T) {
	ok := FormatStatus("liked", collection.Status{Slot: "movieapi.liked", Len: 3})
	if !strings.Contains(ok, "ok") || !strings.Contains(ok, "saved never") {
		t.Errorf("expected healthy status, got %q", ok)
	}

	failed := FormatStatus("ratings", collection.Status{
		Len:        1,
		PersistErr: errors.New("quota exceeded"),
	})
	if !strings.Contains(failed, "save failed: quota exceeded") {
		t.Errorf("expected persist error, got %q", failed)
	}

	unreadable := FormatStatus("watched", collection.Status{LoadErr: errors.New("corrupt")})
	if !strings.Contains(unreadable, "load failed: corrupt") {
		t.Errorf("expected load error, got %q", unreadable)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := FormatEmpty("wishlist"); !strings.Contains(got, "no wishlist entries") {
		t.Errorf("unexpected placeholder %q", got)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		contains string
	}{
		{"just_now", 30 * time.Second, "just now"},
		{"one_minute", 1 * time.Minute, "1 minute ago"},
		{"five_minutes", 5 * time.Minute, "5 minutes ago"},
		{"one_hour", 1 * time.Hour, "1 hour ago"},
		{"two_hours", 2 * time.Hour, "2 hours ago"},
		{"one_day", 25 * time.Hour, "1 day ago"},
		{"multiple_days", 72 * time.Hour, "3 days ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tm := time.Now().Add(-tc.duration)
			result := FormatRelativeTime(tm)
			if !strings.Contains(result, tc.contains) {
				t.Errorf("FormatRelativeTime for %v: expected to contain %q, got %q", tc.duration, tc.contains, result)
			}
		})
	}
}

func TestFormatRelativeTime_FutureTime(t *testing.T) {
	result := FormatRelativeTime(time.Now().Add(1 * time.Hour))
	if !strings.Contains(result, "future") {
		t.Errorf("expected future time message, got %q", result)
	}
}

func TestFormatRelativeTime_EdgeCases(t *testing.T) {
	tm := time.Now().Add(-59 * time.Second)
	if result := FormatRelativeTime(tm); !strings.Contains(result, "just now") {
		t.Errorf("59 seconds ago should be 'just now', got %q", result)
	}

	tm = time.Now().Add(-59 * time.Minute)
	if result := FormatRelativeTime(tm); !strings.Contains(result, "59 minutes") {
		t.Errorf("59 minutes ago should be '59 minutes ago', got %q", result)
	}

	tm = time.Now().Add(-23 * time.Hour)
	if result := FormatRelativeTime(tm); !strings.Contains(result, "23 hours") {
		t.Errorf("23 hours ago should be '23 hours ago', got %q", result)
	}
}
