package catalog

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/justestif/go-ytmusic/internal/db"
	"github.com/justestif/go-ytmusic/schema"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) GetSearchSuggestions(ctx context.Context, query string) ([]string, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFetcher) Search(ctx context.Context, query string) ([]schema.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.SearchResult), args.Error(1)
}

func (m *MockFetcher) SearchSongs(ctx context.Context, query string) ([]schema.SongDetailed, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.SongDetailed), args.Error(1)
}

func (m *MockFetcher) SearchVideos(ctx context.Context, query string) ([]schema.VideoDetailed, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.VideoDetailed), args.Error(1)
}

func (m *MockFetcher) SearchArtists(ctx context.Context, query string) ([]schema.ArtistDetailed, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.ArtistDetailed), args.Error(1)
}

func (m *MockFetcher) SearchAlbums(ctx context.Context, query string) ([]schema.AlbumDetailed, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.AlbumDetailed), args.Error(1)
}

func (m *MockFetcher) SearchPlaylists(ctx context.Context, query string) ([]schema.PlaylistDetailed, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.PlaylistDetailed), args.Error(1)
}

func (m *MockFetcher) GetSong(ctx context.Context, videoID string) (schema.SongFull, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(schema.SongFull), args.Error(1)
}

func (m *MockFetcher) GetVideo(ctx context.Context, videoID string) (schema.VideoFull, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(schema.VideoFull), args.Error(1)
}

func (m *MockFetcher) GetLyrics(ctx context.Context, videoID string) ([]string, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFetcher) GetArtist(ctx context.Context, artistID string) (schema.ArtistFull, error) {
	args := m.Called(ctx, artistID)
	return args.Get(0).(schema.ArtistFull), args.Error(1)
}

func (m *MockFetcher) GetArtistSongs(ctx context.Context, artistID string) ([]schema.SongDetailed, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.SongDetailed), args.Error(1)
}

func (m *MockFetcher) GetArtistAlbums(ctx context.Context, artistID string) ([]schema.AlbumDetailed, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.AlbumDetailed), args.Error(1)
}

func (m *MockFetcher) GetAlbum(ctx context.Context, albumID string) (schema.AlbumFull, error) {
	args := m.Called(ctx, albumID)
	return args.Get(0).(schema.AlbumFull), args.Error(1)
}

func (m *MockFetcher) GetPlaylist(ctx context.Context, playlistID string) (schema.PlaylistFull, error) {
	args := m.Called(ctx, playlistID)
	return args.Get(0).(schema.PlaylistFull), args.Error(1)
}

func (m *MockFetcher) GetPlaylistVideos(ctx context.Context, playlistID string) ([]schema.VideoDetailed, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.VideoDetailed), args.Error(1)
}

func (m *MockFetcher) GetHomeSections(ctx context.Context) ([]schema.HomeSection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.HomeSection), args.Error(1)
}

// memoryStore implements Store in memory.
type memoryStore struct {
	mu       sync.Mutex
	entities map[string]*db.Entity
	getErr   error
	saveErr  error
	saves    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entities: make(map[string]*db.Entity)}
}

func (s *memoryStore) Get(ctx context.Context, kind db.Kind, entityID string) (*db.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	e, ok := s.entities[string(kind)+":"+entityID]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *memoryStore) Upsert(ctx context.Context, e *db.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *e
	s.entities[string(e.Kind)+":"+e.EntityID] = &cp
	return nil
}
