package parser

import (
	"strings"

	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

// ParseAll applies parse to every item in order. Items that fail are left
// out of the result and their errors returned alongside.
func ParseAll[T any](items []traverse.Node, parse func(traverse.Node) (T, error)) ([]T, []error) {
	var (
		out  []T
		errs []error
	)
	for _, item := range items {
		v, err := parse(item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errs
}

// ClassifySearchResult works out what a musicResponsiveListItemRenderer from
// the unfiltered search endpoint points at. Link metadata is preferred; the
// type label in the subtitle is the fallback.
func ClassifySearchResult(item traverse.Node) (schema.ItemType, bool) {
	if nav := item.Get("navigationEndpoint"); nav.Exists() {
		switch pageType(nav) {
		case pageTypeArtist, pageTypeUserChannel:
			return schema.TypeArtist, true
		case pageTypeAlbum:
			return schema.TypeAlbum, true
		case pageTypePlaylist:
			return schema.TypePlaylist, true
		}
	}

	if mvt := musicVideoType(item); mvt != "" {
		if mvt == videoTypeATV {
			return schema.TypeSong, true
		}
		if strings.HasPrefix(mvt, videoTypePrefix) {
			return schema.TypeVideo, true
		}
	}

	if col := flexColumn(item, 1); len(col) > 0 {
		t, ok := typeLabels[strings.TrimSpace(runText(col[0]))]
		return t, ok
	}
	return "", false
}

// ParseSearchResult parses one item of the unfiltered search endpoint.
// ok is false for items of a kind this package does not model, such as
// podcasts or profiles without a type label.
func ParseSearchResult(item traverse.Node) (result schema.Item, ok bool, err error) {
	kind, ok := ClassifySearchResult(item)
	if !ok {
		return schema.Item{}, false, nil
	}

	switch kind {
	case schema.TypeSong:
		s, err := ParseSongSearchResult(item)
		if err != nil {
			return schema.Item{}, true, err
		}
		return s.Item(), true, nil
	case schema.TypeVideo:
		v, err := ParseVideoSearchResult(item)
		if err != nil {
			return schema.Item{}, true, err
		}
		return v.Item(), true, nil
	case schema.TypeArtist:
		a, err := ParseArtistSearchResult(item)
		if err != nil {
			return schema.Item{}, true, err
		}
		return a.Item(), true, nil
	case schema.TypeAlbum:
		a, err := ParseAlbumSearchResult(item)
		if err != nil {
			return schema.Item{}, true, err
		}
		return a.Item(), true, nil
	case schema.TypePlaylist:
		p, err := ParsePlaylistSearchResult(item)
		if err != nil {
			return schema.Item{}, true, err
		}
		return p.Item(), true, nil
	}
	return schema.Item{}, false, nil
}
