package web

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/justestif/go-ytmusic/internal/catalog"
	"github.com/justestif/go-ytmusic/schema"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetSearchSuggestions(ctx context.Context, query string) ([]string, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]schema.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.SearchResult), args.Error(1)
}

func (m *MockCatalog) SearchSongs(ctx context.Context, query string) ([]schema.SongDetailed, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.SongDetailed), args.Error(1)
}

func (m *MockCatalog) SearchVideos(ctx context.Context, query string) ([]schema.VideoDetailed, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.VideoDetailed), args.Error(1)
}

func (m *MockCatalog) SearchArtists(ctx context.Context, query string) ([]schema.ArtistDetailed, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.ArtistDetailed), args.Error(1)
}

func (m *MockCatalog) SearchAlbums(ctx context.Context, query string) ([]schema.AlbumDetailed, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.AlbumDetailed), args.Error(1)
}

func (m *MockCatalog) SearchPlaylists(ctx context.Context, query string) ([]schema.PlaylistDetailed, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.PlaylistDetailed), args.Error(1)
}

func (m *MockCatalog) GetSong(ctx context.Context, videoID string) (schema.SongFull, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(schema.SongFull), args.Error(1)
}

func (m *MockCatalog) GetVideo(ctx context.Context, videoID string) (schema.VideoFull, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(schema.VideoFull), args.Error(1)
}

func (m *MockCatalog) GetLyrics(ctx context.Context, videoID string) ([]string, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalog) GetArtist(ctx context.Context, artistID string) (schema.ArtistFull, error) {
	args := m.Called(ctx, artistID)
	return args.Get(0).(schema.ArtistFull), args.Error(1)
}

func (m *MockCatalog) GetArtistSongs(ctx context.Context, artistID string) ([]schema.SongDetailed, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.SongDetailed), args.Error(1)
}

func (m *MockCatalog) GetArtistAlbums(ctx context.Context, artistID string) ([]schema.AlbumDetailed, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.AlbumDetailed), args.Error(1)
}

func (m *MockCatalog) GetAlbum(ctx context.Context, albumID string) (schema.AlbumFull, error) {
	args := m.Called(ctx, albumID)
	return args.Get(0).(schema.AlbumFull), args.Error(1)
}

func (m *MockCatalog) GetPlaylist(ctx context.Context, playlistID string) (schema.PlaylistFull, error) {
	args := m.Called(ctx, playlistID)
	return args.Get(0).(schema.PlaylistFull), args.Error(1)
}

func (m *MockCatalog) GetPlaylistVideos(ctx context.Context, playlistID string) ([]schema.VideoDetailed, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.VideoDetailed), args.Error(1)
}

func (m *MockCatalog) GetHomeSections(ctx context.Context) ([]schema.HomeSection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schema.HomeSection), args.Error(1)
}

func (m *MockCatalog) PlaylistGroups(ctx context.Context, playlistID string, k int) (catalog.PlaylistGroups, error) {
	args := m.Called(ctx, playlistID, k)
	return args.Get(0).(catalog.PlaylistGroups), args.Error(1)
}
