package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/justestif/go-ytmusic/internal/db"
)

// CacheTTL is the duration after which snapshots are considered stale.
const CacheTTL = 24 * time.Hour

// cached returns the snapshot of kind/id when it is younger than the
// service TTL. Otherwise it calls fetch and persists the result. Snapshot
// failures are logged and never fail the lookup.
func cached[T any](ctx context.Context, s *Service, kind db.Kind, id string, fetch func(context.Context, string) (T, error)) (T, error) {
	if s.store != nil {
		if v, ok := s.loadSnapshot(ctx, kind, id); ok {
			var out T
			err := json.Unmarshal(v, &out)
			if err == nil {
				return out, nil
			}
			s.logger.Printf("catalog: decoding %s %s snapshot: %v", kind, id, err)
		}
	}

	v, err := fetch(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}

	if s.store != nil {
		s.saveSnapshot(ctx, kind, id, v)
	}
	return v, nil
}

// loadSnapshot returns a fresh snapshot payload.
func (s *Service) loadSnapshot(ctx context.Context, kind db.Kind, id string) (json.RawMessage, bool) {
	e, err := s.store.Get(ctx, kind, id)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.logger.Printf("catalog: reading %s %s snapshot: %v", kind, id, err)
		}
		return nil, false
	}
	// Lazy invalidation: stale snapshots are refetched and overwritten.
	if time.Since(e.FetchedAt) >= s.ttl {
		return nil, false
	}
	return e.Payload, true
}

func (s *Service) saveSnapshot(ctx context.Context, kind db.Kind, id string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.logger.Printf("catalog: encoding %s %s snapshot: %v", kind, id, err)
		return
	}
	err = s.store.Upsert(ctx, &db.Entity{
		Kind:      kind,
		EntityID:  id,
		Payload:   payload,
		FetchedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Printf("catalog: saving %s %s snapshot: %v", kind, id, err)
	}
}
