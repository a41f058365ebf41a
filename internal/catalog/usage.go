package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// UsageStats is the lightweight visit counter kept alongside the catalog.
// Updates are fire-and-forget from the session controller.
type UsageStats struct {
	LastActivityAt time.Time `json:"lastActivityAt"`
	TotalVisitors  int       `json:"totalVisitors"`
}

// BumpVisitors increments the visitor counter and stamps the activity time.
// Read-modify-write on the whole document, last-write-wins.
func (s *Store) BumpVisitors(ctx context.Context, now time.Time) error {
	var stats UsageStats
	if err := s.GetJSON(ctx, UsageKey, &stats); err != nil && !isRecoverable(err) {
		return err
	}
	stats.TotalVisitors++
	stats.LastActivityAt = now
	return s.SetJSON(ctx, UsageKey, &stats)
}

// TouchActivity updates only the activity timestamp.
func (s *Store) TouchActivity(ctx context.Context, now time.Time) error {
	var stats UsageStats
	if err := s.GetJSON(ctx, UsageKey, &stats); err != nil && !isRecoverable(err) {
		return err
	}
	stats.LastActivityAt = now
	return s.SetJSON(ctx, UsageKey, &stats)
}

// Usage returns the current counters; a missing key reads as zero values.
func (s *Store) Usage(ctx context.Context) (UsageStats, error) {
	var stats UsageStats
	err := s.GetJSON(ctx, UsageKey, &stats)
	if err != nil && !isRecoverable(err) {
		return UsageStats{}, err
	}
	return stats, nil
}

// isRecoverable reports whether a read failure should reset the document to
// its zero value instead of propagating. Missing keys, malformed JSON and
// future-schema documents all restart from defaults.
func isRecoverable(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSchema) {
		return true
	}
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	return errors.As(err, &syn) || errors.As(err, &typ)
}
