// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for collection records, ratings and store health

package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/reel/internal/collection"
	"github.com/harper/reel/internal/models"
)

// FormatRecord formats a membership record for terminal display.
func FormatRecord(rec models.MediaRecord) string {
	title := rec.Title
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("%s %s - %s",
		color.GreenString(title),
		color.New(color.Faint).Sprint(rec.Key().String()),
		color.New(color.Faint).Sprint(formatStamp(rec.At)))
}

// FormatRating formats a rating record with stars.
func FormatRating(rec models.RatingRecord) string {
	title := rec.Title
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("%s %s %s - %s",
		color.YellowString(Stars(rec.Rating)),
		color.GreenString(title),
		color.New(color.Faint).Sprint(rec.Key().String()),
		color.New(color.Faint).Sprint(formatStamp(rec.RatedAt)))
}

// Stars renders a 0-5 rating as five stars, with half stars and the number.
func Stars(rating float64) string {
	halves := int(math.Round(rating * 2))
	if halves < 0 {
		halves = 0
	}
	if halves > 10 {
		halves = 10
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("★", halves/2))
	empty := 5 - halves/2
	if halves%2 == 1 {
		b.WriteString("½")
		empty--
	}
	b.WriteString(strings.Repeat("☆", empty))
	fmt.Fprintf(&b, " %s", FormatScore(rating))
	return b.String()
}

// FormatScore prints a rating without trailing zeros.
func FormatScore(rating float64) string {
	return strconv.FormatFloat(math.Round(rating*100)/100, 'f', -1, 64)
}

// FormatStatus formats the storage health of one collection.
func FormatStatus(name string, s collection.Status) string {
	health := color.GreenString("ok")
	switch {
	case s.LoadErr != nil && s.PersistErr != nil:
		health = color.RedString("load failed: %v; save failed: %v", s.LoadErr, s.PersistErr)
	case s.LoadErr != nil:
		health = color.YellowString("load failed: %v", s.LoadErr)
	case s.PersistErr != nil:
		health = color.RedString("save failed: %v", s.PersistErr)
	}
	saved := "never"
	if !s.PersistedAt.IsZero() {
		saved = FormatRelativeTime(s.PersistedAt)
	}
	return fmt.Sprintf("%-9s %3d  %s  %s",
		name, s.Len, health,
		color.New(color.Faint).Sprintf("saved %s", saved))
}

// FormatEmpty formats the placeholder for an empty collection.
func FormatEmpty(name string) string {
	return color.New(color.Faint).Sprintf("(no %s entries)", name)
}

func formatStamp(ts models.Timestamp) string {
	if ts.IsZero() {
		return "unknown time"
	}
	return FormatRelativeTime(ts.Time)
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
