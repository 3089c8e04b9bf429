package parser

import (
	"regexp"

	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

const entityVideo = "video"

var thumbnailVideoID = regexp.MustCompile(`https://i\.ytimg\.com/vi/([^/]+)/`)

// ParseVideo parses a player endpoint response.
func ParseVideo(data traverse.Node) (schema.VideoFull, error) {
	details, ok := traverse.Traverse(data, "videoDetails")
	if !ok {
		return schema.VideoFull{}, missing(entityVideo, "videoDetails")
	}

	videoID := details.Get("videoId").Text()
	if videoID == "" {
		return schema.VideoFull{}, missing(entityVideo, "videoDetails", "videoId")
	}
	if !schema.ValidVideoID(videoID) {
		return schema.VideoFull{}, invalid(entityVideo, videoID, "videoDetails", "videoId")
	}

	name := details.Get("title").Text()
	if name == "" {
		return schema.VideoFull{}, missing(entityVideo, "videoDetails", "title")
	}

	artist := schema.ArtistBasic{Name: details.Get("author").Text()}
	if id := details.Get("channelId").Text(); id != "" {
		if !schema.ValidArtistID(id) {
			return schema.VideoFull{}, invalid(entityVideo, id, "videoDetails", "channelId")
		}
		artist.ArtistID = &id
	}

	v := schema.VideoFull{
		VideoDetailed: schema.VideoDetailed{
			Type:       schema.TypeVideo,
			VideoID:    videoID,
			Name:       name,
			Artist:     artist,
			Duration:   playerDuration(data, details),
			Thumbnails: thumbnails(details),
		},
	}

	if views, ok := details.Get("viewCount").Int(); ok {
		v.Views = int64Ptr(views)
	}

	micro, _ := traverse.Traverse(data, "microformat")
	v.FamilySafe = flag(micro, "familySafe")
	v.Paid = flag(micro, "paid")
	v.Unlisted = flag(micro, "unlisted")

	for _, tag := range traverse.TraverseList(micro, "tags") {
		if s, ok := tag.Str(); ok {
			v.Tags = append(v.Tags, s)
		}
	}
	if len(v.Tags) == 0 {
		for _, kw := range traverse.TraverseList(details, "keywords") {
			if s, ok := kw.Str(); ok {
				v.Tags = append(v.Tags, s)
			}
		}
	}

	return v, nil
}

func flag(n traverse.Node, key string) bool {
	v, ok := traverse.Traverse(n, key)
	if !ok {
		return false
	}
	b, _ := v.Truth()
	return b
}

// ParseVideoSearchResult parses a musicResponsiveListItemRenderer from video search.
func ParseVideoSearchResult(item traverse.Node) (schema.VideoDetailed, error) {
	runs := flexRuns(item)

	artist, err := artistFromRuns(entityVideo, flexColumn(item, 1))
	if err != nil {
		return schema.VideoDetailed{}, err
	}
	return videoFromListItem(item, runs, artist, itemVideoID(item))
}

// ParsePlaylistVideo parses a row of a playlist. Unavailable rows have no
// play endpoint, so the ID is recovered from the thumbnail URL.
func ParsePlaylistVideo(item traverse.Node) (schema.VideoDetailed, error) {
	runs := flexRuns(item)

	artist, err := artistFromRuns(entityVideo, flexColumn(item, 1))
	if err != nil {
		return schema.VideoDetailed{}, err
	}

	videoID := itemVideoID(item)
	if videoID == "" {
		for _, t := range thumbnails(item) {
			if m := thumbnailVideoID.FindStringSubmatch(t.URL); m != nil {
				videoID = m[1]
				break
			}
		}
	}
	return videoFromListItem(item, runs, artist, videoID)
}

func videoFromListItem(item traverse.Node, runs []traverse.Node, artist schema.ArtistBasic, videoID string) (schema.VideoDetailed, error) {
	title, ok := titleRun(item, runs)
	if !ok || runText(title) == "" {
		return schema.VideoDetailed{}, missing(entityVideo, "flexColumns", "runs", "text")
	}
	if videoID == "" {
		return schema.VideoDetailed{}, missing(entityVideo, "playlistItemData", "videoId")
	}
	if !schema.ValidVideoID(videoID) {
		return schema.VideoDetailed{}, invalid(entityVideo, videoID, "playlistItemData", "videoId")
	}

	return schema.VideoDetailed{
		Type:       schema.TypeVideo,
		VideoID:    videoID,
		Name:       runText(title),
		Artist:     artist,
		Duration:   listDuration(item, runs),
		Thumbnails: thumbnails(item),
	}, nil
}
