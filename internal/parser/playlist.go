package parser

import (
	"strings"

	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

const entityPlaylist = "playlist"

// ParsePlaylist parses the header of a playlist page. playlistID is the
// browse ID the page was requested with.
func ParsePlaylist(data traverse.Node, playlistID string) (schema.PlaylistFull, error) {
	playlistID = schema.CanonicalPlaylistID(playlistID)
	if !schema.ValidPlaylistID(playlistID) {
		return schema.PlaylistFull{}, invalid(entityPlaylist, playlistID, "browseId")
	}

	header, ok := pageHeader(data)
	if !ok {
		return schema.PlaylistFull{}, missing(entityPlaylist, "header")
	}
	title, _ := traverse.Traverse(header, "title")
	name := runsText(title)
	if name == "" {
		return schema.PlaylistFull{}, missing(entityPlaylist, "header", "title", "runs")
	}

	artist, err := headerArtist(entityPlaylist, header)
	if err != nil {
		return schema.PlaylistFull{}, err
	}

	p := schema.PlaylistFull{
		PlaylistDetailed: schema.PlaylistDetailed{
			Type:       schema.TypePlaylist,
			PlaylistID: playlistID,
			Name:       name,
			Artist:     artist,
			Thumbnails: thumbnails(header),
		},
	}
	if second, ok := traverse.Traverse(header, "secondSubtitle"); ok {
		p.VideoCount = itemCount(second)
	}
	return p, nil
}

// ParsePlaylistSearchResult parses a musicResponsiveListItemRenderer from playlist search.
func ParsePlaylistSearchResult(item traverse.Node) (schema.PlaylistDetailed, error) {
	col := flexColumn(item, 0)
	if len(col) == 0 || runText(col[0]) == "" {
		return schema.PlaylistDetailed{}, missing(entityPlaylist, "flexColumns", "runs", "text")
	}

	id := playlistBrowseID(item)
	if id == "" {
		return schema.PlaylistDetailed{}, missing(entityPlaylist, "navigationEndpoint", "browseId")
	}

	artist, err := artistFromRuns(entityPlaylist, flexColumn(item, 1))
	if err != nil {
		return schema.PlaylistDetailed{}, err
	}

	return schema.PlaylistDetailed{
		Type:       schema.TypePlaylist,
		PlaylistID: id,
		Name:       runText(col[0]),
		Artist:     artist,
		Thumbnails: thumbnails(item),
	}, nil
}

// playlistBrowseID returns the canonical ID of the playlist an item links to.
func playlistBrowseID(item traverse.Node) string {
	id := firstBrowseID(item, func(s string) bool {
		return strings.HasPrefix(s, "VL") && schema.ValidPlaylistID(s)
	})
	if id != "" {
		return id
	}
	if pid, ok := traverse.Traverse(item, "playlistId"); ok && schema.ValidPlaylistID(pid.Text()) {
		return schema.CanonicalPlaylistID(pid.Text())
	}
	return ""
}
