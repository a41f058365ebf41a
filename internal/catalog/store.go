package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Keys used by the kiosk engine. Each value is a UTF-8 JSON document.
const (
	ObjectsKey         = "kiosk:map_objects"
	RecentRoutesKey    = "kiosk:recent_routes"
	UsageKey           = "kiosk:usage_stats"
	AdminCredentialKey = "kiosk:admin_credential"
)

// schemaVersion is stamped into every document written by this build.
const schemaVersion = 1

var (
	ErrNotFound    = errors.New("catalog: key not found")
	ErrUnavailable = errors.New("catalog: store unavailable")
	ErrSchema      = errors.New("catalog: unsupported schema version")
)

// Store is the persistent catalog: a dumb get/set of whole JSON documents
// under fixed keys. Writes are last-write-wins; there is no locking and no
// optimistic concurrency, the kiosk and admin flows never run concurrently
// against the same session.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if s.rdb == nil {
		return "", ErrUnavailable
	}
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.rdb == nil {
		return ErrUnavailable
	}
	return s.rdb.Set(ctx, key, value, 0).Err()
}

type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

// GetJSON reads the document at key into v. Documents written by this build
// carry a schemaVersion envelope; bare legacy values (no envelope) are decoded
// as-is. Documents from a newer schema are rejected so callers fall back to
// their seeded defaults.
func (s *Store) GetJSON(ctx context.Context, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Data != nil {
		if env.SchemaVersion > schemaVersion {
			return fmt.Errorf("%w: %d for %s", ErrSchema, env.SchemaVersion, key)
		}
		return json.Unmarshal(env.Data, v)
	}
	return json.Unmarshal([]byte(raw), v)
}

// SetJSON wraps v in the current schema envelope and writes it under key.
func (s *Store) SetJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(envelope{SchemaVersion: schemaVersion, Data: data})
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(doc))
}
