// Package catalog serves YouTube Music catalog lookups with optional
// Postgres-backed snapshots and batch fetching.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/justestif/go-ytmusic/internal/clustering"
	"github.com/justestif/go-ytmusic/internal/db"
	"github.com/justestif/go-ytmusic/schema"
)

// Default concurrency for batch lookups.
const DefaultConcurrency = 5

// Fetcher abstracts the ytmusic client for testing.
type Fetcher interface {
	GetSearchSuggestions(ctx context.Context, query string) ([]string, error)
	Search(ctx context.Context, query string) ([]schema.SearchResult, error)
	SearchSongs(ctx context.Context, query string) ([]schema.SongDetailed, error)
	SearchVideos(ctx context.Context, query string) ([]schema.VideoDetailed, error)
	SearchArtists(ctx context.Context, query string) ([]schema.ArtistDetailed, error)
	SearchAlbums(ctx context.Context, query string) ([]schema.AlbumDetailed, error)
	SearchPlaylists(ctx context.Context, query string) ([]schema.PlaylistDetailed, error)
	GetSong(ctx context.Context, videoID string) (schema.SongFull, error)
	GetVideo(ctx context.Context, videoID string) (schema.VideoFull, error)
	GetLyrics(ctx context.Context, videoID string) ([]string, error)
	GetArtist(ctx context.Context, artistID string) (schema.ArtistFull, error)
	GetArtistSongs(ctx context.Context, artistID string) ([]schema.SongDetailed, error)
	GetArtistAlbums(ctx context.Context, artistID string) ([]schema.AlbumDetailed, error)
	GetAlbum(ctx context.Context, albumID string) (schema.AlbumFull, error)
	GetPlaylist(ctx context.Context, playlistID string) (schema.PlaylistFull, error)
	GetPlaylistVideos(ctx context.Context, playlistID string) ([]schema.VideoDetailed, error)
	GetHomeSections(ctx context.Context) ([]schema.HomeSection, error)
}

// Store persists entity snapshots. *db.EntityRepository implements it.
type Store interface {
	Get(ctx context.Context, kind db.Kind, entityID string) (*db.Entity, error)
	Upsert(ctx context.Context, e *db.Entity) error
}

// SongResult holds one lookup of a batch.
type SongResult struct {
	VideoID string           `json:"videoId"`
	Song    *schema.SongFull `json:"song,omitempty"`
	Error   error            `json:"-"` // Non-nil if fetching failed
}

// PlaylistGroups is a playlist's videos grouped by length.
type PlaylistGroups struct {
	PlaylistID string                     `json:"playlistId"`
	Groups     []clustering.DurationGroup `json:"groups"`
	Ungrouped  []schema.VideoDetailed     `json:"ungrouped"`
}

// Service wraps a Fetcher with snapshot caching and batch lookups.
type Service struct {
	fetcher     Fetcher
	store       Store
	ttl         time.Duration
	concurrency int
	logger      *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStore enables snapshot caching in store.
func WithStore(store Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithCacheTTL sets how long snapshots are served before refetching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithConcurrency sets the number of concurrent batch lookups.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger for snapshot read and write failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a new catalog service.
func NewService(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		ttl:         CacheTTL,
		concurrency: DefaultConcurrency,
		logger:      log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSong returns song metadata, from a fresh snapshot when one exists.
func (s *Service) GetSong(ctx context.Context, videoID string) (schema.SongFull, error) {
	return cached(ctx, s, db.KindSong, videoID, s.fetcher.GetSong)
}

// GetVideo returns video metadata, from a fresh snapshot when one exists.
func (s *Service) GetVideo(ctx context.Context, videoID string) (schema.VideoFull, error) {
	return cached(ctx, s, db.KindVideo, videoID, s.fetcher.GetVideo)
}

// GetArtist returns an artist page, from a fresh snapshot when one exists.
func (s *Service) GetArtist(ctx context.Context, artistID string) (schema.ArtistFull, error) {
	return cached(ctx, s, db.KindArtist, artistID, s.fetcher.GetArtist)
}

// GetAlbum returns an album, from a fresh snapshot when one exists.
func (s *Service) GetAlbum(ctx context.Context, albumID string) (schema.AlbumFull, error) {
	return cached(ctx, s, db.KindAlbum, albumID, s.fetcher.GetAlbum)
}

// GetPlaylist returns a playlist header, from a fresh snapshot when one
// exists. Snapshots are keyed by the "VL" form of the ID.
func (s *Service) GetPlaylist(ctx context.Context, playlistID string) (schema.PlaylistFull, error) {
	return cached(ctx, s, db.KindPlaylist, schema.CanonicalPlaylistID(playlistID), s.fetcher.GetPlaylist)
}

// GetSongs looks up songs concurrently.
// Results are returned in the same order as videoIDs.
// Individual fetch errors are captured in SongResult.Error rather than failing the batch.
func (s *Service) GetSongs(ctx context.Context, videoIDs []string) ([]SongResult, error) {
	if len(videoIDs) == 0 {
		return []SongResult{}, nil
	}

	results := make([]SongResult, len(videoIDs))

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, id := range videoIDs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = SongResult{VideoID: id, Error: err}
				return nil
			}
			song, err := s.GetSong(ctx, id)
			if err != nil {
				results[i] = SongResult{VideoID: id, Error: err}
				return nil
			}
			results[i] = SongResult{VideoID: id, Song: &song}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	// Check if context was cancelled
	if ctx.Err() != nil {
		return results, ctx.Err()
	}

	return results, nil
}

// PlaylistGroups fetches every video of a playlist and groups them by
// length into at most k groups.
func (s *Service) PlaylistGroups(ctx context.Context, playlistID string, k int) (PlaylistGroups, error) {
	videos, err := s.fetcher.GetPlaylistVideos(ctx, playlistID)
	if err != nil {
		return PlaylistGroups{}, fmt.Errorf("grouping playlist %s: %w", playlistID, err)
	}

	groups, ungrouped := clustering.GroupByDuration(videos, k)
	if groups == nil {
		groups = []clustering.DurationGroup{}
	}
	if ungrouped == nil {
		ungrouped = []schema.VideoDetailed{}
	}
	return PlaylistGroups{
		PlaylistID: schema.CanonicalPlaylistID(playlistID),
		Groups:     groups,
		Ungrouped:  ungrouped,
	}, nil
}

// GetSearchSuggestions passes through to the Fetcher.
func (s *Service) GetSearchSuggestions(ctx context.Context, query string) ([]string, error) {
	return s.fetcher.GetSearchSuggestions(ctx, query)
}

// Search passes through to the Fetcher.
func (s *Service) Search(ctx context.Context, query string) ([]schema.SearchResult, error) {
	return s.fetcher.Search(ctx, query)
}

func (s *Service) SearchSongs(ctx context.Context, query string) ([]schema.SongDetailed, error) {
	return s.fetcher.SearchSongs(ctx, query)
}

func (s *Service) SearchVideos(ctx context.Context, query string) ([]schema.VideoDetailed, error) {
	return s.fetcher.SearchVideos(ctx, query)
}

func (s *Service) SearchArtists(ctx context.Context, query string) ([]schema.ArtistDetailed, error) {
	return s.fetcher.SearchArtists(ctx, query)
}

func (s *Service) SearchAlbums(ctx context.Context, query string) ([]schema.AlbumDetailed, error) {
	return s.fetcher.SearchAlbums(ctx, query)
}

func (s *Service) SearchPlaylists(ctx context.Context, query string) ([]schema.PlaylistDetailed, error) {
	return s.fetcher.SearchPlaylists(ctx, query)
}

func (s *Service) GetLyrics(ctx context.Context, videoID string) ([]string, error) {
	return s.fetcher.GetLyrics(ctx, videoID)
}

func (s *Service) GetArtistSongs(ctx context.Context, artistID string) ([]schema.SongDetailed, error) {
	return s.fetcher.GetArtistSongs(ctx, artistID)
}

func (s *Service) GetArtistAlbums(ctx context.Context, artistID string) ([]schema.AlbumDetailed, error) {
	return s.fetcher.GetArtistAlbums(ctx, artistID)
}

func (s *Service) GetPlaylistVideos(ctx context.Context, playlistID string) ([]schema.VideoDetailed, error) {
	return s.fetcher.GetPlaylistVideos(ctx, playlistID)
}

func (s *Service) GetHomeSections(ctx context.Context) ([]schema.HomeSection, error) {
	return s.fetcher.GetHomeSections(ctx)
}
