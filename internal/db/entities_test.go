package db

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewWithPool(mock), mock
}

func TestMigrate(t *testing.T) {
	database, mock := setupMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS catalog_entities").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, database.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateError(t *testing.T) {
	database, mock := setupMockDB(t)

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

	err := database.Migrate(context.Background())
	assert.ErrorContains(t, err, "migrating schema")
}

func TestEntityUpsert(t *testing.T) {
	ctx := context.Background()
	existing := "11111111-1111-1111-1111-111111111111"

	t.Run("new entity gets an id", func(t *testing.T) {
		database, mock := setupMockDB(t)
		e := &Entity{Kind: KindSong, EntityID: "dQw4w9WgXcQ", Payload: json.RawMessage(`{"name":"x"}`)}

		mock.ExpectQuery("INSERT INTO catalog_entities").
			WithArgs(pgxmock.AnyArg(), "song", "dQw4w9WgXcQ", []byte(`{"name":"x"}`), pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(existing))

		require.NoError(t, database.Entities().Upsert(ctx, e))
		assert.Equal(t, uuid.MustParse(existing), e.ID)
		assert.False(t, e.FetchedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		database, mock := setupMockDB(t)
		e := &Entity{Kind: KindAlbum, EntityID: "MPREb_x", Payload: json.RawMessage(`{}`)}

		mock.ExpectQuery("INSERT INTO catalog_entities").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(pgx.ErrTxClosed)

		err := database.Entities().Upsert(ctx, e)
		assert.ErrorIs(t, err, pgx.ErrTxClosed)
		assert.ErrorContains(t, err, "upserting album MPREb_x")
	})
}

func TestEntityGet(t *testing.T) {
	ctx := context.Background()
	id := "22222222-2222-2222-2222-222222222222"
	fetched := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		database, mock := setupMockDB(t)

		mock.ExpectQuery("SELECT .* FROM catalog_entities").
			WithArgs("artist", "UCabc").
			WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "entity_id", "payload", "fetched_at"}).
				AddRow(id, "artist", "UCabc", []byte(`{"name":"Band"}`), fetched))

		e, err := database.Entities().Get(ctx, KindArtist, "UCabc")
		require.NoError(t, err)
		assert.Equal(t, uuid.MustParse(id), e.ID)
		assert.Equal(t, KindArtist, e.Kind)
		assert.Equal(t, "UCabc", e.EntityID)
		assert.JSONEq(t, `{"name":"Band"}`, string(e.Payload))
		assert.True(t, fetched.Equal(e.FetchedAt))
	})

	t.Run("not found", func(t *testing.T) {
		database, mock := setupMockDB(t)

		mock.ExpectQuery("SELECT .* FROM catalog_entities").
			WithArgs("playlist", "VLPLmissing").
			WillReturnError(pgx.ErrNoRows)

		_, err := database.Entities().Get(ctx, KindPlaylist, "VLPLmissing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestEntityDeleteStale(t *testing.T) {
	database, mock := setupMockDB(t)
	cutoff := time.Now().Add(-24 * time.Hour)

	mock.ExpectExec("DELETE FROM catalog_entities").
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := database.Entities().DeleteStale(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityCount(t *testing.T) {
	database, mock := setupMockDB(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("video").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	n, err := database.Entities().Count(context.Background(), KindVideo)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
