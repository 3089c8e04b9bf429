package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EntityRepository handles catalog snapshot database operations.
type EntityRepository struct {
	pool Pool
}

// Upsert stores a snapshot, replacing any earlier one of the same kind and
// entity ID. A nil ID is generated; on conflict the existing row keeps its ID
// and e.ID is updated to it.
func (r *EntityRepository) Upsert(ctx context.Context, e *Entity) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.FetchedAt.IsZero() {
		e.FetchedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO catalog_entities (id, kind, entity_id, payload, fetched_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (kind, entity_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			fetched_at = EXCLUDED.fetched_at
		RETURNING id::text
	`
	var id string
	err := r.pool.QueryRow(ctx, query,
		e.ID.String(),
		string(e.Kind),
		e.EntityID,
		[]byte(e.Payload),
		e.FetchedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("upserting %s %s: %w", e.Kind, e.EntityID, err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parsing entity id: %w", err)
	}
	e.ID = parsed
	return nil
}

// Get retrieves the snapshot of an entity.
func (r *EntityRepository) Get(ctx context.Context, kind Kind, entityID string) (*Entity, error) {
	query := `
		SELECT id::text, kind, entity_id, payload, fetched_at
		FROM catalog_entities
		WHERE kind = $1 AND entity_id = $2
	`
	var (
		e       Entity
		id      string
		kindStr string
		payload []byte
	)
	err := r.pool.QueryRow(ctx, query, string(kind), entityID).Scan(
		&id,
		&kindStr,
		&e.EntityID,
		&payload,
		&e.FetchedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s %s: %w", kind, entityID, err)
	}

	if e.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parsing entity id: %w", err)
	}
	e.Kind = Kind(kindStr)
	e.Payload = payload
	return &e, nil
}

// DeleteStale removes snapshots fetched before olderThan and returns how
// many were removed.
func (r *EntityRepository) DeleteStale(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM catalog_entities WHERE fetched_at < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("deleting stale entities: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of stored snapshots of a kind.
func (r *EntityRepository) Count(ctx context.Context, kind Kind) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM catalog_entities WHERE kind = $1`, string(kind)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s entities: %w", kind, err)
	}
	return n, nil
}
