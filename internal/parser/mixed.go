package parser

import (
	"strings"

	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

type rendererKind int

const (
	rendererUnknown rendererKind = iota
	rendererCarousel
	rendererShelf
	rendererDescription
)

var sectionRenderers = map[string]rendererKind{
	"musicCarouselShelfRenderer":          rendererCarousel,
	"musicImmersiveCarouselShelfRenderer": rendererCarousel,
	"musicShelfRenderer":                  rendererShelf,
	"musicDescriptionShelfRenderer":       rendererDescription,
}

// SectionRenderer returns the renderer name a section is wrapped in, and
// whether it is one ParseMixedContent understands.
func SectionRenderer(section traverse.Node) (string, bool) {
	for _, f := range section.Fields() {
		if _, ok := sectionRenderers[f.Key]; ok {
			return f.Key, true
		}
	}
	if fields := section.Fields(); len(fields) > 0 {
		return fields[0].Key, false
	}
	return "", false
}

// ParseMixedContent parses one entry of a sectionListRenderer's contents
// into a home section. ok is false for renderers that are not modelled;
// callers drop those.
func ParseMixedContent(section traverse.Node) (schema.HomeSection, bool) {
	name, _ := SectionRenderer(section)
	r := section.Get(name)

	switch sectionRenderers[name] {
	case rendererUnknown:
		return schema.HomeSection{}, false
	case rendererCarousel:
		header, _ := traverse.Traverse(r, "header")
		title, _ := traverse.Traverse(header, "title")
		return schema.HomeSection{
			Title:    runsText(title),
			Kind:     schema.SectionCarousel,
			Contents: mixedItems(r.Get("contents")),
		}, true
	case rendererShelf:
		return schema.HomeSection{
			Title:    runsText(r.Get("title")),
			Kind:     schema.SectionShelf,
			Contents: mixedItems(r.Get("contents")),
		}, true
	case rendererDescription:
		return schema.HomeSection{
			Title:       runsText(r.Get("header")),
			Kind:        schema.SectionDescription,
			Description: runsText(r.Get("description")),
			Contents:    []schema.Item{},
		}, true
	}
	return schema.HomeSection{}, false
}

func mixedItems(contents traverse.Node) []schema.Item {
	items := []schema.Item{}
	for _, c := range contents.Items() {
		if item, ok := ParseMixedItem(c); ok {
			items = append(items, item)
		}
	}
	return items
}

// ParseMixedItem parses a single card or row of a home section. Cards that
// cannot be classified or lack required fields are reported as not ok.
func ParseMixedItem(n traverse.Node) (schema.Item, bool) {
	if r := n.Get("musicTwoRowItemRenderer"); r.Exists() {
		return twoRowItem(r)
	}
	if r := n.Get("musicResponsiveListItemRenderer"); r.Exists() {
		item, ok, err := ParseSearchResult(r)
		return item, ok && err == nil
	}
	return schema.Item{}, false
}

func twoRowItem(r traverse.Node) (schema.Item, bool) {
	switch pageType(r.Get("navigationEndpoint")) {
	case pageTypeAlbum:
		a, err := twoRowAlbum(r)
		return a.Item(), err == nil
	case pageTypeArtist, pageTypeUserChannel:
		a, err := twoRowArtist(r)
		return a.Item(), err == nil
	case pageTypePlaylist:
		p, err := twoRowPlaylist(r)
		return p.Item(), err == nil
	}

	mvt := musicVideoType(r)
	switch {
	case mvt == videoTypeATV:
		s, err := twoRowSong(r)
		return s.Item(), err == nil
	case strings.HasPrefix(mvt, videoTypePrefix):
		v, err := twoRowVideo(r, nil)
		return v.Item(), err == nil
	}
	return schema.Item{}, false
}
