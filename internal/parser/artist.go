package parser

import (
	"strings"

	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

const entityArtist = "artist"

type carouselKind int

const (
	carouselUnknown carouselKind = iota
	carouselAlbums
	carouselSingles
	carouselVideos
	carouselArtists
)

var carouselTitles = map[string]carouselKind{
	"albums":               carouselAlbums,
	"singles":              carouselSingles,
	"singles & eps":        carouselSingles,
	"singles and eps":      carouselSingles,
	"eps":                  carouselSingles,
	"videos":               carouselVideos,
	"fans might also like": carouselArtists,
	"similar artists":      carouselArtists,
}

// ParseArtist parses the browse response of an artist page.
func ParseArtist(data traverse.Node, artistID string) (schema.ArtistFull, error) {
	if !schema.ValidArtistID(artistID) {
		return schema.ArtistFull{}, invalid(entityArtist, artistID, "browseId")
	}

	header, ok := traverse.Traverse(data, "header")
	if !ok {
		return schema.ArtistFull{}, missing(entityArtist, "header")
	}
	title, _ := traverse.Traverse(header, "title")
	name := runsText(title)
	if name == "" {
		return schema.ArtistFull{}, missing(entityArtist, "header", "title", "runs")
	}

	ref := schema.ArtistBasic{ArtistID: &artistID, Name: name}
	a := schema.ArtistFull{
		ArtistDetailed: schema.ArtistDetailed{
			Type:       schema.TypeArtist,
			ArtistID:   artistID,
			Name:       name,
			Thumbnails: thumbnails(header),
		},
	}

	if subs, ok := traverse.Traverse(header, "subscriberCountText"); ok {
		if n, ok := ParseCount(runsText(subs)); ok {
			a.Subscribers = int64Ptr(n)
		}
	}

	a.TopSongs, _ = ParseAll(traverse.TraverseList(data, "musicShelfRenderer", "musicResponsiveListItemRenderer"),
		func(item traverse.Node) (schema.SongDetailed, error) { return ParseArtistSong(item, ref) })

	for _, shelf := range traverse.TraverseList(data, "musicCarouselShelfRenderer") {
		items := traverse.TraverseList(shelf, "musicTwoRowItemRenderer")
		switch classifyCarousel(shelf, items) {
		case carouselAlbums:
			albums, _ := ParseAll(items, func(item traverse.Node) (schema.AlbumDetailed, error) {
				return ParseArtistAlbum(item, ref)
			})
			a.TopAlbums = append(a.TopAlbums, albums...)
		case carouselSingles:
			singles, _ := ParseAll(items, func(item traverse.Node) (schema.AlbumDetailed, error) {
				return ParseArtistAlbum(item, ref)
			})
			a.TopSingles = append(a.TopSingles, singles...)
		case carouselVideos:
			videos, _ := ParseAll(items, func(item traverse.Node) (schema.VideoDetailed, error) {
				return twoRowVideo(item, &ref)
			})
			a.TopVideos = append(a.TopVideos, videos...)
		case carouselArtists:
			similar, _ := ParseAll(items, twoRowArtist)
			a.SimilarArtists = append(a.SimilarArtists, similar...)
		}
	}

	return a, nil
}

// classifyCarousel uses the shelf title and falls back to what the first
// item links to, for pages served in another language.
func classifyCarousel(shelf traverse.Node, items []traverse.Node) carouselKind {
	header, _ := traverse.Traverse(shelf, "header")
	title, _ := traverse.Traverse(header, "title")
	if kind, ok := carouselTitles[strings.ToLower(strings.TrimSpace(runsText(title)))]; ok {
		return kind
	}
	if len(items) == 0 {
		return carouselUnknown
	}

	first := items[0]
	switch {
	case isTitle(first):
		return carouselVideos
	case pageType(first) == pageTypeAlbum:
		return carouselAlbums
	case isArtist(first):
		return carouselArtists
	}
	return carouselUnknown
}

// ParseArtistSearchResult parses a musicResponsiveListItemRenderer from artist search.
func ParseArtistSearchResult(item traverse.Node) (schema.ArtistDetailed, error) {
	col := flexColumn(item, 0)
	if len(col) == 0 || runText(col[0]) == "" {
		return schema.ArtistDetailed{}, missing(entityArtist, "flexColumns", "runs", "text")
	}

	id := firstBrowseID(item, schema.ValidArtistID)
	if id == "" {
		return schema.ArtistDetailed{}, missing(entityArtist, "navigationEndpoint", "browseId")
	}

	return schema.ArtistDetailed{
		Type:       schema.TypeArtist,
		ArtistID:   id,
		Name:       runText(col[0]),
		Thumbnails: thumbnails(item),
	}, nil
}
