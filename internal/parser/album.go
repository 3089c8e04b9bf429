package parser

import (
	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

const entityAlbum = "album"

// pageHeader finds the header of an album or playlist page. Newer pages use
// musicResponsiveHeaderRenderer inside the tab, older ones a top-level header.
func pageHeader(data traverse.Node) (traverse.Node, bool) {
	for _, key := range []string{"musicResponsiveHeaderRenderer", "musicDetailHeaderRenderer", "header"} {
		if h, ok := traverse.Traverse(data, key); ok {
			return h, true
		}
	}
	return traverse.Node{}, false
}

// headerArtist reads the owner of an album or playlist page from the
// strapline, or from the subtitle on older layouts.
func headerArtist(entity string, header traverse.Node) (schema.ArtistBasic, error) {
	if strap, ok := traverse.Traverse(header, "straplineTextOne"); ok {
		return artistFromRuns(entity, traverse.TraverseList(strap, "runs"))
	}
	sub, _ := traverse.Traverse(header, "subtitle")
	return artistFromRuns(entity, traverse.TraverseList(sub, "runs"))
}

// ParseAlbum parses the browse response of an album page.
func ParseAlbum(data traverse.Node, albumID string) (schema.AlbumFull, error) {
	if !schema.ValidAlbumID(albumID) {
		return schema.AlbumFull{}, invalid(entityAlbum, albumID, "browseId")
	}

	header, ok := pageHeader(data)
	if !ok {
		return schema.AlbumFull{}, missing(entityAlbum, "header")
	}
	title, _ := traverse.Traverse(header, "title")
	name := runsText(title)
	if name == "" {
		return schema.AlbumFull{}, missing(entityAlbum, "header", "title", "runs")
	}

	artist, err := headerArtist(entityAlbum, header)
	if err != nil {
		return schema.AlbumFull{}, err
	}

	sub, _ := traverse.Traverse(header, "subtitle")
	thumbs := thumbnails(header)

	a := schema.AlbumFull{
		AlbumDetailed: schema.AlbumDetailed{
			Type:       schema.TypeAlbum,
			AlbumID:    albumID,
			Name:       name,
			Artist:     artist,
			Year:       yearFromRuns(traverse.TraverseList(sub, "runs")),
			Thumbnails: thumbs,
		},
	}

	if pid, ok := traverse.Traverse(data, "audioPlaylistId"); ok {
		a.PlaylistID = pid.Text()
	} else if pid, ok := traverse.Traverse(header, "playlistId"); ok {
		a.PlaylistID = pid.Text()
	}

	if second, ok := traverse.Traverse(header, "secondSubtitle"); ok {
		a.TrackCount = itemCount(second)
	}

	if desc, ok := traverse.Traverse(header, "description"); ok {
		if inner, ok := traverse.Traverse(desc, "description"); ok {
			desc = inner
		}
		a.Description = runsText(desc)
	}

	ref := schema.AlbumBasic{AlbumID: albumID, Name: name}
	a.Songs, _ = ParseAll(traverse.TraverseList(data, "musicResponsiveListItemRenderer"),
		func(item traverse.Node) (schema.SongDetailed, error) {
			return ParseAlbumSong(item, artist, ref, thumbs)
		})
	if a.Songs == nil {
		a.Songs = []schema.SongDetailed{}
	}
	if a.TrackCount == nil {
		a.TrackCount = intPtr(len(a.Songs))
	}

	return a, nil
}

// ParseAlbumSearchResult parses a musicResponsiveListItemRenderer from album search.
func ParseAlbumSearchResult(item traverse.Node) (schema.AlbumDetailed, error) {
	col := flexColumn(item, 0)
	if len(col) == 0 || runText(col[0]) == "" {
		return schema.AlbumDetailed{}, missing(entityAlbum, "flexColumns", "runs", "text")
	}

	id := firstBrowseID(item, schema.ValidAlbumID)
	if id == "" {
		return schema.AlbumDetailed{}, missing(entityAlbum, "navigationEndpoint", "browseId")
	}

	sub := flexColumn(item, 1)
	artist, err := artistFromRuns(entityAlbum, sub)
	if err != nil {
		return schema.AlbumDetailed{}, err
	}

	a := schema.AlbumDetailed{
		Type:       schema.TypeAlbum,
		AlbumID:    id,
		Name:       runText(col[0]),
		Artist:     artist,
		Year:       yearFromRuns(sub),
		Thumbnails: thumbnails(item),
	}
	if pid, ok := traverse.Traverse(item, "overlay", "playlistId"); ok {
		a.PlaylistID = pid.Text()
	}
	return a, nil
}

// ParseArtistAlbum parses a musicTwoRowItemRenderer from an artist's album
// or singles shelf. The artist is always the page's artist.
func ParseArtistAlbum(item traverse.Node, artist schema.ArtistBasic) (schema.AlbumDetailed, error) {
	a, err := twoRowAlbum(item)
	if err != nil {
		return schema.AlbumDetailed{}, err
	}
	a.Artist = artist
	return a, nil
}
