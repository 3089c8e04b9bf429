package parser

import (
	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

const entitySong = "song"

// ParseSong parses a player endpoint response.
func ParseSong(data traverse.Node) (schema.SongFull, error) {
	details, ok := traverse.Traverse(data, "videoDetails")
	if !ok {
		return schema.SongFull{}, missing(entitySong, "videoDetails")
	}

	videoID := details.Get("videoId").Text()
	if videoID == "" {
		return schema.SongFull{}, missing(entitySong, "videoDetails", "videoId")
	}
	if !schema.ValidVideoID(videoID) {
		return schema.SongFull{}, invalid(entitySong, videoID, "videoDetails", "videoId")
	}

	name := details.Get("title").Text()
	if name == "" {
		return schema.SongFull{}, missing(entitySong, "videoDetails", "title")
	}

	artist := schema.ArtistBasic{Name: details.Get("author").Text()}
	if id := details.Get("channelId").Text(); id != "" {
		if !schema.ValidArtistID(id) {
			return schema.SongFull{}, invalid(entitySong, id, "videoDetails", "channelId")
		}
		artist.ArtistID = &id
	}

	status, _ := traverse.Traverse(data, "playabilityStatus", "status")

	return schema.SongFull{
		SongDetailed: schema.SongDetailed{
			Type:       schema.TypeSong,
			VideoID:    videoID,
			Name:       name,
			Artist:     artist,
			Duration:   playerDuration(data, details),
			Thumbnails: thumbnails(details),
			Explicit:   isExplicit(data),
		},
		Playable:        status.Text() == "OK",
		Formats:         formats(traverse.TraverseList(data, "streamingData", "formats")),
		AdaptiveFormats: formats(traverse.TraverseList(data, "streamingData", "adaptiveFormats")),
	}, nil
}

// playerDuration prefers lengthSeconds and falls back to the first
// duration-shaped text in the response.
func playerDuration(data, details traverse.Node) *int {
	if secs, ok := details.Get("lengthSeconds").Int(); ok {
		return intPtr(int(secs))
	}
	for _, t := range traverse.TraverseList(data, "text") {
		if d, ok := ParseDuration(t.Text()); ok {
			return intPtr(d)
		}
	}
	return nil
}

func formats(nodes []traverse.Node) []schema.Format {
	if len(nodes) == 0 {
		return nil
	}

	out := make([]schema.Format, 0, len(nodes))
	for _, n := range nodes {
		itag, _ := n.Get("itag").Int()
		bitrate, _ := n.Get("bitrate").Int()
		width, _ := n.Get("width").Int()
		height, _ := n.Get("height").Int()
		length, _ := n.Get("contentLength").Int()
		rate, _ := n.Get("audioSampleRate").Int()
		approx, _ := n.Get("approxDurationMs").Int()
		out = append(out, schema.Format{
			Itag:             int(itag),
			MimeType:         n.Get("mimeType").Text(),
			Bitrate:          int(bitrate),
			Width:            int(width),
			Height:           int(height),
			ContentLength:    length,
			Quality:          n.Get("quality").Text(),
			QualityLabel:     n.Get("qualityLabel").Text(),
			AudioQuality:     n.Get("audioQuality").Text(),
			AudioSampleRate:  int(rate),
			ApproxDurationMs: approx,
			URL:              n.Get("url").Text(),
		})
	}
	return out
}

// ParseSongSearchResult parses a musicResponsiveListItemRenderer from song search.
func ParseSongSearchResult(item traverse.Node) (schema.SongDetailed, error) {
	runs := flexRuns(item)

	artist, err := artistFromRuns(entitySong, flexColumn(item, 1))
	if err != nil {
		return schema.SongDetailed{}, err
	}
	return songFromListItem(item, runs, artist, nil, nil)
}

// ParseArtistSong parses a song row on an artist page. The artist falls back
// to the page's artist when the row does not name one.
func ParseArtistSong(item traverse.Node, artist schema.ArtistBasic) (schema.SongDetailed, error) {
	runs := flexRuns(item)
	if run, ok := findRun(runs, isArtist); ok {
		a, err := artistFromRun(entitySong, run)
		if err != nil {
			return schema.SongDetailed{}, err
		}
		artist = a
	}
	return songFromListItem(item, runs, artist, nil, nil)
}

// ParseAlbumSong parses a track row of an album page. Album tracks carry no
// artwork of their own, so the album's thumbnails are used.
func ParseAlbumSong(item traverse.Node, artist schema.ArtistBasic, album schema.AlbumBasic, thumbs []schema.Thumbnail) (schema.SongDetailed, error) {
	runs := flexRuns(item)
	if run, ok := findRun(runs, isArtist); ok {
		a, err := artistFromRun(entitySong, run)
		if err != nil {
			return schema.SongDetailed{}, err
		}
		artist = a
	}
	if len(thumbs) == 0 {
		thumbs = nil
	}
	return songFromListItem(item, runs, artist, &album, thumbs)
}

func songFromListItem(item traverse.Node, runs []traverse.Node, artist schema.ArtistBasic, album *schema.AlbumBasic, thumbs []schema.Thumbnail) (schema.SongDetailed, error) {
	title, ok := titleRun(item, runs)
	if !ok || runText(title) == "" {
		return schema.SongDetailed{}, missing(entitySong, "flexColumns", "runs", "text")
	}

	videoID := itemVideoID(item)
	if videoID == "" {
		return schema.SongDetailed{}, missing(entitySong, "playlistItemData", "videoId")
	}
	if !schema.ValidVideoID(videoID) {
		return schema.SongDetailed{}, invalid(entitySong, videoID, "playlistItemData", "videoId")
	}

	if album == nil {
		if run, ok := findRun(runs, isAlbum); ok {
			a, err := albumFromRun(entitySong, run)
			if err != nil {
				return schema.SongDetailed{}, err
			}
			album = a
		}
	}
	if thumbs == nil {
		thumbs = thumbnails(item)
	}

	return schema.SongDetailed{
		Type:       schema.TypeSong,
		VideoID:    videoID,
		Name:       runText(title),
		Artist:     artist,
		Album:      album,
		Duration:   listDuration(item, runs),
		Thumbnails: thumbs,
		Explicit:   isExplicit(item),
	}, nil
}

// titleRun is the run linking to the watch page, or the first run of the
// first column.
func titleRun(item traverse.Node, runs []traverse.Node) (traverse.Node, bool) {
	if run, ok := findRun(runs, isTitle); ok {
		return run, true
	}
	col := flexColumn(item, 0)
	if len(col) == 0 {
		return traverse.Node{}, false
	}
	return col[0], true
}

func listDuration(item traverse.Node, runs []traverse.Node) *int {
	if d := durationFromRuns(runs); d != nil {
		return d
	}
	cols, ok := traverse.Traverse(item, "fixedColumns")
	if !ok {
		return nil
	}
	if d, ok := ParseDuration(runsText(cols)); ok {
		return &d
	}
	return nil
}
