package ytmusic

import (
	"context"
	"fmt"

	"github.com/justestif/go-ytmusic/internal/parser"
	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

// GetPlaylist fetches a playlist header. "PL" IDs are requested in their
// "VL" browse form.
func (c *Client) GetPlaylist(ctx context.Context, playlistID string) (schema.PlaylistFull, error) {
	browseID := schema.CanonicalPlaylistID(playlistID)

	data, err := c.browse(ctx, browseID)
	if err != nil {
		return schema.PlaylistFull{}, fmt.Errorf("getting playlist %s: %w", playlistID, err)
	}

	playlist, err := parser.ParsePlaylist(data, browseID)
	if err != nil {
		return schema.PlaylistFull{}, fmt.Errorf("getting playlist %s: %w", playlistID, err)
	}
	return playlist, nil
}

// GetPlaylistVideos fetches every video of a playlist, following
// continuation pages until the listing is exhausted. Videos keep playlist
// order; repeats are kept.
//
// If a page cannot be fetched, or ctx is cancelled between pages, the
// videos gathered so far are returned together with the error.
func (c *Client) GetPlaylistVideos(ctx context.Context, playlistID string) ([]schema.VideoDetailed, error) {
	data, err := c.browse(ctx, schema.CanonicalPlaylistID(playlistID))
	if err != nil {
		return nil, fmt.Errorf("getting playlist videos %s: %w", playlistID, err)
	}

	items := traverse.TraverseList(data, "musicPlaylistShelfRenderer", "musicResponsiveListItemRenderer")
	pageErr := c.paginate(ctx, data, func(page traverse.Node) {
		items = append(items, traverse.TraverseList(page, "musicResponsiveListItemRenderer")...)
	})
	if pageErr != nil {
		pageErr = fmt.Errorf("getting playlist videos %s: %w", playlistID, pageErr)
	}

	videos, errs := parser.ParseAll(items, parser.ParsePlaylistVideo)
	c.logSkipped("playlist videos", errs)
	if videos == nil {
		videos = []schema.VideoDetailed{}
	}
	return videos, pageErr
}
