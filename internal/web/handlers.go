package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/justestif/go-ytmusic/internal/catalog"
	"github.com/justestif/go-ytmusic/schema"
)

// Catalog is the lookup surface the handlers need. *catalog.Service
// implements it.
type Catalog interface {
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
	PlaylistGroups(ctx context.Context, playlistID string, k int) (catalog.PlaylistGroups, error)
}

// Handlers contains HTTP handlers for the catalog API.
type Handlers struct {
	catalog Catalog
	ready   func() bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(c Catalog, ready func() bool) *Handlers {
	return &Handlers{catalog: c, ready: ready}
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ready := h.ready()
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status":      "ok",
		"initialized": ready,
	})
}

// Search handles GET /search?q=&type=. Without a type the mixed search is
// used.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q, ok := requireQuery(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	switch strings.ToLower(r.URL.Query().Get("type")) {
	case "", "all":
		v, err := h.catalog.Search(ctx, q)
		writeResult(w, v, err)
	case "songs":
		v, err := h.catalog.SearchSongs(ctx, q)
		writeResult(w, v, err)
	case "videos":
		v, err := h.catalog.SearchVideos(ctx, q)
		writeResult(w, v, err)
	case "artists":
		v, err := h.catalog.SearchArtists(ctx, q)
		writeResult(w, v, err)
	case "albums":
		v, err := h.catalog.SearchAlbums(ctx, q)
		writeResult(w, v, err)
	case "playlists":
		v, err := h.catalog.SearchPlaylists(ctx, q)
		writeResult(w, v, err)
	default:
		writeError(w, http.StatusBadRequest, "type must be one of songs, videos, artists, albums, playlists")
	}
}

// Suggestions handles GET /suggestions?q=.
func (h *Handlers) Suggestions(w http.ResponseWriter, r *http.Request) {
	q, ok := requireQuery(w, r)
	if !ok {
		return
	}
	v, err := h.catalog.GetSearchSuggestions(r.Context(), q)
	writeResult(w, v, err)
}

// Song handles GET /songs/{id}.
func (h *Handlers) Song(w http.ResponseWriter, r *http.Request) {
	v, err := h.catalog.GetSong(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, v, err)
}

// Lyrics handles GET /songs/{id}/lyrics. A song without lyrics is 404.
func (h *Handlers) Lyrics(w http.ResponseWriter, r *http.Request) {
	lines, err := h.catalog.GetLyrics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if lines == nil {
		writeError(w, http.StatusNotFound, "no lyrics available")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lines": lines})
}

// Video handles GET /videos/{id}.
func (h *Handlers) Video(w http.ResponseWriter, r *http.Request) {
	v, err := h.catalog.GetVideo(r.Context(), chi.URLParam(r, "id"))
	writeResult(w, v, err)
}

// Artist handles GET /artists/{id}.
func (h *Handlers) Artist(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, schema.ValidArtistID)
	if !ok {
		return
	}
	v, err := h.catalog.GetArtist(r.Context(), id)
	writeResult(w, v, err)
}

// ArtistSongs handles GET /artists/{id}/songs.
func (h *Handlers) ArtistSongs(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, schema.ValidArtistID)
	if !ok {
		return
	}
	songs, err := h.catalog.GetArtistSongs(r.Context(), id)
	writeList(w, songs, err)
}

// ArtistAlbums handles GET /artists/{id}/albums.
func (h *Handlers) ArtistAlbums(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, schema.ValidArtistID)
	if !ok {
		return
	}
	v, err := h.catalog.GetArtistAlbums(r.Context(), id)
	writeResult(w, v, err)
}

// Album handles GET /albums/{id}.
func (h *Handlers) Album(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, schema.ValidAlbumID)
	if !ok {
		return
	}
	v, err := h.catalog.GetAlbum(r.Context(), id)
	writeResult(w, v, err)
}

// Playlist handles GET /playlists/{id}.
func (h *Handlers) Playlist(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, schema.ValidPlaylistID)
	if !ok {
		return
	}
	v, err := h.catalog.GetPlaylist(r.Context(), id)
	writeResult(w, v, err)
}

// PlaylistVideos handles GET /playlists/{id}/videos.
func (h *Handlers) PlaylistVideos(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, schema.ValidPlaylistID)
	if !ok {
		return
	}
	videos, err := h.catalog.GetPlaylistVideos(r.Context(), id)
	writeList(w, videos, err)
}

// PlaylistGroups handles GET /playlists/{id}/groups?k=.
func (h *Handlers) PlaylistGroups(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, schema.ValidPlaylistID)
	if !ok {
		return
	}

	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "k must be a positive integer")
			return
		}
		k = n
	}
	v, err := h.catalog.PlaylistGroups(r.Context(), id, k)
	writeResult(w, v, err)
}

// Home handles GET /home.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	sections, err := h.catalog.GetHomeSections(r.Context())
	writeList(w, sections, err)
}

func writeResult[T any](w http.ResponseWriter, v T, err error) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func requireQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return "", false
	}
	return q, true
}

func requireID(w http.ResponseWriter, r *http.Request, valid func(string) bool) (string, bool) {
	id := chi.URLParam(r, "id")
	if !valid(id) {
		writeError(w, http.StatusBadRequest, "invalid id "+strconv.Quote(id))
		return "", false
	}
	return id, true
}
