package ytmusic

import (
	"context"
	"fmt"

	"github.com/justestif/go-ytmusic/internal/parser"
	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

// GetSearchSuggestions returns the completions offered for a partial query.
func (c *Client) GetSearchSuggestions(ctx context.Context, query string) ([]string, error) {
	data, err := c.request(ctx, EndpointSuggestions, map[string]any{"input": query}, nil)
	if err != nil {
		return nil, fmt.Errorf("getting suggestions: %w", err)
	}

	suggestions := []string{}
	for _, q := range traverse.TraverseList(data, "query") {
		if s, ok := q.Str(); ok {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions, nil
}

// Search runs an unfiltered search. Results keep the order of the response
// and may mix every item type. Items of kinds that are not modelled, and
// items missing required fields, are left out.
func (c *Client) Search(ctx context.Context, query string) ([]schema.SearchResult, error) {
	data, err := c.request(ctx, EndpointSearch, map[string]any{"query": query, "params": nil}, nil)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	results := []schema.SearchResult{}
	for _, item := range traverse.TraverseList(data, "musicResponsiveListItemRenderer") {
		r, ok, err := parser.ParseSearchResult(item)
		if err != nil {
			c.logSkipped("search", []error{err})
			continue
		}
		if !ok {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// SearchSongs searches for songs only.
func (c *Client) SearchSongs(ctx context.Context, query string) ([]schema.SongDetailed, error) {
	return searchFiltered(ctx, c, "songs", query, FilterSongs, parser.ParseSongSearchResult)
}

// SearchVideos searches for videos only.
func (c *Client) SearchVideos(ctx context.Context, query string) ([]schema.VideoDetailed, error) {
	return searchFiltered(ctx, c, "videos", query, FilterVideos, parser.ParseVideoSearchResult)
}

// SearchArtists searches for artists only.
func (c *Client) SearchArtists(ctx context.Context, query string) ([]schema.ArtistDetailed, error) {
	return searchFiltered(ctx, c, "artists", query, FilterArtists, parser.ParseArtistSearchResult)
}

// SearchAlbums searches for albums, singles and EPs.
func (c *Client) SearchAlbums(ctx context.Context, query string) ([]schema.AlbumDetailed, error) {
	return searchFiltered(ctx, c, "albums", query, FilterAlbums, parser.ParseAlbumSearchResult)
}

// SearchPlaylists searches for playlists only.
func (c *Client) SearchPlaylists(ctx context.Context, query string) ([]schema.PlaylistDetailed, error) {
	return searchFiltered(ctx, c, "playlists", query, FilterPlaylists, parser.ParsePlaylistSearchResult)
}

func searchFiltered[T any](ctx context.Context, c *Client, kind, query, params string, parse func(traverse.Node) (T, error)) ([]T, error) {
	data, err := c.request(ctx, EndpointSearch, map[string]any{"query": query, "params": params}, nil)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", kind, err)
	}

	items, errs := parser.ParseAll(traverse.TraverseList(data, "musicResponsiveListItemRenderer"), parse)
	c.logSkipped("search "+kind, errs)
	if items == nil {
		items = []T{}
	}
	return items, nil
}
