package ytmusic

import (
	"context"
	"fmt"

	"github.com/justestif/go-ytmusic/internal/parser"
	"github.com/justestif/go-ytmusic/schema"
)

// GetAlbum fetches an album page with its tracks.
func (c *Client) GetAlbum(ctx context.Context, albumID string) (schema.AlbumFull, error) {
	data, err := c.browse(ctx, albumID)
	if err != nil {
		return schema.AlbumFull{}, fmt.Errorf("getting album %s: %w", albumID, err)
	}

	album, err := parser.ParseAlbum(data, albumID)
	if err != nil {
		return schema.AlbumFull{}, fmt.Errorf("getting album %s: %w", albumID, err)
	}
	return album, nil
}
