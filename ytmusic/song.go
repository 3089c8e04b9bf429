package ytmusic

import (
	"context"
	"fmt"
	"strings"

	"github.com/justestif/go-ytmusic/internal/parser"
	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

func checkVideoID(videoID string) error {
	if !schema.ValidVideoID(videoID) {
		return fmt.Errorf("%w: %q", ErrInvalidVideoID, videoID)
	}
	return nil
}

func (c *Client) player(ctx context.Context, videoID string) (traverse.Node, error) {
	return c.request(ctx, EndpointPlayer, map[string]any{"videoId": videoID}, nil)
}

// GetSong fetches a song from the player endpoint. The ID is validated
// before any request, and the response must describe the same video.
func (c *Client) GetSong(ctx context.Context, videoID string) (schema.SongFull, error) {
	if err := checkVideoID(videoID); err != nil {
		return schema.SongFull{}, err
	}

	data, err := c.player(ctx, videoID)
	if err != nil {
		return schema.SongFull{}, fmt.Errorf("getting song %s: %w", videoID, err)
	}

	song, err := parser.ParseSong(data)
	if err != nil {
		return schema.SongFull{}, fmt.Errorf("getting song %s: %w", videoID, err)
	}
	if song.VideoID != videoID {
		return schema.SongFull{}, fmt.Errorf("%w: requested %s, got %s", ErrInvalidVideoID, videoID, song.VideoID)
	}
	return song, nil
}

// GetVideo fetches a video from the player endpoint. Validation is the same
// as for GetSong.
func (c *Client) GetVideo(ctx context.Context, videoID string) (schema.VideoFull, error) {
	if err := checkVideoID(videoID); err != nil {
		return schema.VideoFull{}, err
	}

	data, err := c.player(ctx, videoID)
	if err != nil {
		return schema.VideoFull{}, fmt.Errorf("getting video %s: %w", videoID, err)
	}

	video, err := parser.ParseVideo(data)
	if err != nil {
		return schema.VideoFull{}, fmt.Errorf("getting video %s: %w", videoID, err)
	}
	if video.VideoID != videoID {
		return schema.VideoFull{}, fmt.Errorf("%w: requested %s, got %s", ErrInvalidVideoID, videoID, video.VideoID)
	}
	return video, nil
}

// GetLyrics returns the lyrics of a song, one entry per non-empty line.
// It returns nil when the song has no lyrics tab.
func (c *Client) GetLyrics(ctx context.Context, videoID string) ([]string, error) {
	if err := checkVideoID(videoID); err != nil {
		return nil, err
	}

	next, err := c.request(ctx, EndpointNext, map[string]any{"videoId": videoID}, nil)
	if err != nil {
		return nil, fmt.Errorf("getting lyrics for %s: %w", videoID, err)
	}

	// The watch page tabs are up next, lyrics and related, in that order.
	tabs, ok := traverse.Traverse(next, "tabs")
	if !ok {
		return nil, nil
	}
	id, ok := traverse.Traverse(tabs.Index(1), "browseId")
	if !ok || id.Text() == "" {
		return nil, nil
	}

	data, err := c.browse(ctx, id.Text())
	if err != nil {
		return nil, fmt.Errorf("getting lyrics for %s: %w", videoID, err)
	}

	text := traverse.TraverseString(data, "description", "runs", "text")
	text = strings.ReplaceAll(text, "\r", "")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
