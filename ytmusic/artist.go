package ytmusic

import (
	"context"
	"fmt"

	"github.com/justestif/go-ytmusic/internal/parser"
	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

// GetArtist fetches an artist page.
func (c *Client) GetArtist(ctx context.Context, artistID string) (schema.ArtistFull, error) {
	data, err := c.browse(ctx, artistID)
	if err != nil {
		return schema.ArtistFull{}, fmt.Errorf("getting artist %s: %w", artistID, err)
	}

	artist, err := parser.ParseArtist(data, artistID)
	if err != nil {
		return schema.ArtistFull{}, fmt.Errorf("getting artist %s: %w", artistID, err)
	}
	return artist, nil
}

// GetArtistSongs fetches the artist's song listing: the page linked from the
// top songs shelf and, when it has one, the page after it. Artists without a
// songs shelf have no songs.
//
// If the second page cannot be fetched, the songs of the first page are
// returned together with the error.
func (c *Client) GetArtistSongs(ctx context.Context, artistID string) ([]schema.SongDetailed, error) {
	artistData, err := c.browse(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("getting artist songs %s: %w", artistID, err)
	}

	token, ok := traverse.Traverse(artistData, "musicShelfRenderer", "title", "browseId")
	if !ok || token.Text() == "" {
		return []schema.SongDetailed{}, nil
	}

	songsData, err := c.browse(ctx, token.Text())
	if err != nil {
		return nil, fmt.Errorf("getting artist songs %s: %w", artistID, err)
	}
	items := traverse.TraverseList(songsData, "musicResponsiveListItemRenderer")

	// One extra page at most; the listing is not followed further.
	var pageErr error
	if more, ok := newPager().next(songsData).(pageHasMore); ok {
		if err := ctx.Err(); err != nil {
			pageErr = fmt.Errorf("getting artist songs %s: %w", artistID, err)
		} else if moreData, err := c.continuation(ctx, more.token); err != nil {
			pageErr = fmt.Errorf("getting artist songs %s: %w", artistID, err)
		} else {
			items = append(items, traverse.TraverseList(moreData, "musicResponsiveListItemRenderer")...)
		}
	}

	ref := artistRef(artistData, artistID)
	songs, errs := parser.ParseAll(items, func(item traverse.Node) (schema.SongDetailed, error) {
		return parser.ParseArtistSong(item, ref)
	})
	c.logSkipped("artist songs", errs)
	if songs == nil {
		songs = []schema.SongDetailed{}
	}
	return songs, pageErr
}

// GetArtistAlbums fetches the full album listing linked from the artist's
// first carousel. When the carousel has no "more" link its cards are used.
func (c *Client) GetArtistAlbums(ctx context.Context, artistID string) ([]schema.AlbumDetailed, error) {
	artistData, err := c.browse(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("getting artist albums %s: %w", artistID, err)
	}

	shelves := traverse.TraverseList(artistData, "musicCarouselShelfRenderer")
	if len(shelves) == 0 {
		return []schema.AlbumDetailed{}, nil
	}

	source := shelves[0]
	ref := artistRef(artistData, artistID)

	if endpoint, ok := traverse.Traverse(shelves[0], "moreContentButton", "browseEndpoint"); ok {
		body, _ := endpoint.Value().(map[string]any)
		albumsData, err := c.request(ctx, EndpointBrowse, body, nil)
		if err != nil {
			return nil, fmt.Errorf("getting artist albums %s: %w", artistID, err)
		}
		source = albumsData
		if name := traverse.TraverseString(albumsData, "header", "runs", "text"); name != "" {
			ref.Name = name
		}
	}

	albums, errs := parser.ParseAll(traverse.TraverseList(source, "musicTwoRowItemRenderer"),
		func(item traverse.Node) (schema.AlbumDetailed, error) {
			return parser.ParseArtistAlbum(item, ref)
		})
	c.logSkipped("artist albums", errs)
	if albums == nil {
		albums = []schema.AlbumDetailed{}
	}
	return albums, nil
}

// artistRef names the artist of a browse response.
func artistRef(data traverse.Node, artistID string) schema.ArtistBasic {
	ref := schema.ArtistBasic{ArtistID: &artistID}
	if header, ok := traverse.Traverse(data, "header"); ok {
		if title, ok := traverse.Traverse(header, "title"); ok {
			ref.Name = traverse.TraverseString(title, "runs", "text")
		}
	}
	return ref
}
