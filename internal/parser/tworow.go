package parser

import (
	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

// musicTwoRowItemRenderer is the card used by carousels on artist pages and
// the home feed: a title row, a subtitle row and a thumbnail.

func twoRowTitle(item traverse.Node) string {
	title, _ := traverse.Traverse(item, "title")
	return runsText(title)
}

func twoRowSubtitle(item traverse.Node) []traverse.Node {
	sub, ok := traverse.Traverse(item, "subtitle")
	if !ok {
		return nil
	}
	return traverse.TraverseList(sub, "runs")
}

func twoRowAlbum(item traverse.Node) (schema.AlbumDetailed, error) {
	name := twoRowTitle(item)
	if name == "" {
		return schema.AlbumDetailed{}, missing(entityAlbum, "title", "runs")
	}
	id := firstBrowseID(item, schema.ValidAlbumID)
	if id == "" {
		return schema.AlbumDetailed{}, missing(entityAlbum, "navigationEndpoint", "browseId")
	}

	sub := twoRowSubtitle(item)
	artist, err := artistFromRuns(entityAlbum, sub)
	if err != nil {
		return schema.AlbumDetailed{}, err
	}

	a := schema.AlbumDetailed{
		Type:       schema.TypeAlbum,
		AlbumID:    id,
		Name:       name,
		Artist:     artist,
		Year:       yearFromRuns(sub),
		Thumbnails: thumbnails(item),
	}
	if pid, ok := traverse.Traverse(item, "thumbnailOverlay", "playlistId"); ok {
		a.PlaylistID = pid.Text()
	}
	return a, nil
}

// twoRowVideo parses a video card. fallback is used when the subtitle links
// no channel.
func twoRowVideo(item traverse.Node, fallback *schema.ArtistBasic) (schema.VideoDetailed, error) {
	name := twoRowTitle(item)
	if name == "" {
		return schema.VideoDetailed{}, missing(entityVideo, "title", "runs")
	}
	videoID := itemVideoID(item)
	if videoID == "" {
		return schema.VideoDetailed{}, missing(entityVideo, "watchEndpoint", "videoId")
	}
	if !schema.ValidVideoID(videoID) {
		return schema.VideoDetailed{}, invalid(entityVideo, videoID, "watchEndpoint", "videoId")
	}

	sub := twoRowSubtitle(item)
	artist, err := subtitleArtist(entityVideo, sub, fallback)
	if err != nil {
		return schema.VideoDetailed{}, err
	}

	return schema.VideoDetailed{
		Type:       schema.TypeVideo,
		VideoID:    videoID,
		Name:       name,
		Artist:     artist,
		Duration:   durationFromRuns(sub),
		Thumbnails: thumbnails(item),
	}, nil
}

func twoRowSong(item traverse.Node) (schema.SongDetailed, error) {
	name := twoRowTitle(item)
	if name == "" {
		return schema.SongDetailed{}, missing(entitySong, "title", "runs")
	}
	videoID := itemVideoID(item)
	if videoID == "" {
		return schema.SongDetailed{}, missing(entitySong, "watchEndpoint", "videoId")
	}
	if !schema.ValidVideoID(videoID) {
		return schema.SongDetailed{}, invalid(entitySong, videoID, "watchEndpoint", "videoId")
	}

	sub := twoRowSubtitle(item)
	artist, err := subtitleArtist(entitySong, sub, nil)
	if err != nil {
		return schema.SongDetailed{}, err
	}

	s := schema.SongDetailed{
		Type:       schema.TypeSong,
		VideoID:    videoID,
		Name:       name,
		Artist:     artist,
		Duration:   durationFromRuns(sub),
		Thumbnails: thumbnails(item),
		Explicit:   isExplicit(item),
	}
	if run, ok := findRun(sub, isAlbum); ok {
		album, err := albumFromRun(entitySong, run)
		if err != nil {
			return schema.SongDetailed{}, err
		}
		s.Album = album
	}
	return s, nil
}

func twoRowArtist(item traverse.Node) (schema.ArtistDetailed, error) {
	name := twoRowTitle(item)
	if name == "" {
		return schema.ArtistDetailed{}, missing(entityArtist, "title", "runs")
	}
	id := firstBrowseID(item, schema.ValidArtistID)
	if id == "" {
		return schema.ArtistDetailed{}, missing(entityArtist, "navigationEndpoint", "browseId")
	}
	return schema.ArtistDetailed{
		Type:       schema.TypeArtist,
		ArtistID:   id,
		Name:       name,
		Thumbnails: thumbnails(item),
	}, nil
}

func twoRowPlaylist(item traverse.Node) (schema.PlaylistDetailed, error) {
	name := twoRowTitle(item)
	if name == "" {
		return schema.PlaylistDetailed{}, missing(entityPlaylist, "title", "runs")
	}
	id := playlistBrowseID(item)
	if id == "" {
		return schema.PlaylistDetailed{}, missing(entityPlaylist, "navigationEndpoint", "browseId")
	}

	artist, err := subtitleArtist(entityPlaylist, twoRowSubtitle(item), nil)
	if err != nil {
		return schema.PlaylistDetailed{}, err
	}
	return schema.PlaylistDetailed{
		Type:       schema.TypePlaylist,
		PlaylistID: id,
		Name:       name,
		Artist:     artist,
		Thumbnails: thumbnails(item),
	}, nil
}

// subtitleArtist takes a linked artist from the subtitle, then the fallback,
// then the first plain run.
func subtitleArtist(entity string, runs []traverse.Node, fallback *schema.ArtistBasic) (schema.ArtistBasic, error) {
	if run, ok := findRun(runs, isArtist); ok {
		return artistFromRun(entity, run)
	}
	if fallback != nil {
		return *fallback, nil
	}
	return artistFromRuns(entity, runs)
}
