// Package parser turns InnerTube response trees into schema records.
//
// Parsers never fail on a missing optional field. They return a *ParseError
// only when a field the record cannot exist without is missing or malformed.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

// ErrParseFailure is wrapped by every *ParseError.
var ErrParseFailure = errors.New("parse failure")

// ParseError reports a required field that was missing or malformed.
type ParseError struct {
	Entity string   // e.g. "song"
	Path   []string // keys that were followed
	Value  string   // offending value, empty when the field was missing
}

func (e *ParseError) Error() string {
	path := strings.Join(e.Path, ".")
	if e.Value != "" {
		return fmt.Sprintf("parsing %s: invalid value %q at %s", e.Entity, e.Value, path)
	}
	return fmt.Sprintf("parsing %s: missing required field %s", e.Entity, path)
}

func (e *ParseError) Unwrap() error { return ErrParseFailure }

func missing(entity string, path ...string) error {
	return &ParseError{Entity: entity, Path: path}
}

func invalid(entity, value string, path ...string) error {
	return &ParseError{Entity: entity, Path: path, Value: value}
}

// Page types and video types used to classify runs and items.
const (
	pageTypeArtist      = "MUSIC_PAGE_TYPE_ARTIST"
	pageTypeUserChannel = "MUSIC_PAGE_TYPE_USER_CHANNEL"
	pageTypeAlbum       = "MUSIC_PAGE_TYPE_ALBUM"
	pageTypePlaylist    = "MUSIC_PAGE_TYPE_PLAYLIST"

	videoTypePrefix = "MUSIC_VIDEO_TYPE_"
	videoTypeATV    = "MUSIC_VIDEO_TYPE_ATV"

	explicitBadge = "MUSIC_EXPLICIT_BADGE"
)

var (
	durationPattern = regexp.MustCompile(`^(\d{1,2}:)?\d{1,2}:\d{2}$`)
	yearPattern     = regexp.MustCompile(`^\d{4}$`)
	countPattern    = regexp.MustCompile(`([\d][\d.,]*)\s*([KMB])?`)
)

// ParseDuration converts "m:ss" or "h:mm:ss" into seconds.
func ParseDuration(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !durationPattern.MatchString(s) {
		return 0, false
	}

	parts := strings.Split(s, ":")
	total := 0
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, false
		}
		// Every component after the first is base 60.
		if i > 0 && v >= 60 {
			return 0, false
		}
		total = total*60 + v
	}
	return total, true
}

// ParseCount reads abbreviated counts such as "4.1M subscribers",
// "1,234 songs" or "850K views".
func ParseCount(s string) (int64, bool) {
	m := countPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	num := strings.ReplaceAll(m[1], ",", "")
	v, err := strconv.ParseFloat(strings.TrimRight(num, "."), 64)
	if err != nil {
		return 0, false
	}

	switch m[2] {
	case "K":
		v *= 1e3
	case "M":
		v *= 1e6
	case "B":
		v *= 1e9
	}
	return int64(v + 0.5), true
}

func runText(run traverse.Node) string {
	return run.Get("text").Text()
}

func musicVideoType(n traverse.Node) string {
	v, _ := traverse.Traverse(n, "musicVideoType")
	return v.Text()
}

func pageType(n traverse.Node) string {
	v, _ := traverse.Traverse(n, "pageType")
	return v.Text()
}

func browseID(n traverse.Node) string {
	v, _ := traverse.Traverse(n, "browseId")
	return v.Text()
}

func isTitle(run traverse.Node) bool {
	return strings.HasPrefix(musicVideoType(run), videoTypePrefix)
}

func isArtist(run traverse.Node) bool {
	pt := pageType(run)
	return pt == pageTypeArtist || pt == pageTypeUserChannel
}

func isAlbum(run traverse.Node) bool {
	return pageType(run) == pageTypeAlbum
}

func isDuration(run traverse.Node) bool {
	return durationPattern.MatchString(strings.TrimSpace(runText(run)))
}

func isSeparator(run traverse.Node) bool {
	t := strings.TrimSpace(runText(run))
	return t == "" || t == "•" || t == "&" || t == ","
}

// typeLabels are the leading subtitle runs that name an item's type in
// unfiltered search results.
var typeLabels = map[string]schema.ItemType{
	"Song":     schema.TypeSong,
	"Video":    schema.TypeVideo,
	"Artist":   schema.TypeArtist,
	"Album":    schema.TypeAlbum,
	"Single":   schema.TypeAlbum,
	"EP":       schema.TypeAlbum,
	"Playlist": schema.TypePlaylist,
}

func isLabel(run traverse.Node) bool {
	_, ok := typeLabels[strings.TrimSpace(runText(run))]
	return ok
}

// flexRuns returns every run of every flex column of a list item, in order.
func flexRuns(item traverse.Node) []traverse.Node {
	return traverse.TraverseList(item, "flexColumns", "runs")
}

// flexColumn returns the runs of the i-th flex column.
func flexColumn(item traverse.Node, i int) []traverse.Node {
	cols, ok := traverse.Traverse(item, "flexColumns")
	if !ok {
		return nil
	}
	return traverse.TraverseList(cols.Index(i), "runs")
}

func findRun(runs []traverse.Node, pred func(traverse.Node) bool) (traverse.Node, bool) {
	for _, r := range runs {
		if pred(r) {
			return r, true
		}
	}
	return traverse.Node{}, false
}

// firstPlain returns the first run that is not a separator, a type label
// or a year.
func firstPlain(runs []traverse.Node) (traverse.Node, bool) {
	return findRun(runs, func(r traverse.Node) bool {
		return !isSeparator(r) && !isLabel(r) && !yearPattern.MatchString(strings.TrimSpace(runText(r)))
	})
}

// runsText joins the first runs array found under n.
func runsText(n traverse.Node) string {
	runs, ok := traverse.Traverse(n, "runs")
	if !ok {
		if s, ok := traverse.Traverse(n, "simpleText"); ok {
			return s.Text()
		}
		return ""
	}
	var sb strings.Builder
	for _, r := range runs.Items() {
		sb.WriteString(runText(r))
	}
	return sb.String()
}

func thumbnails(n traverse.Node) []schema.Thumbnail {
	list, ok := traverse.Traverse(n, "thumbnails")
	if !ok || list.Len() == 0 {
		return nil
	}

	var out []schema.Thumbnail
	for _, t := range list.Items() {
		url, ok := t.Get("url").Str()
		if !ok {
			continue
		}
		w, _ := t.Get("width").Int()
		h, _ := t.Get("height").Int()
		out = append(out, schema.Thumbnail{URL: url, Width: int(w), Height: int(h)})
	}
	return out
}

// artistFromRun builds an artist reference from a text run. The ID is only
// set when the run links to a browse page.
func artistFromRun(entity string, run traverse.Node) (schema.ArtistBasic, error) {
	a := schema.ArtistBasic{Name: runText(run)}
	id := browseID(run)
	if id == "" {
		return a, nil
	}
	if !schema.ValidArtistID(id) {
		return schema.ArtistBasic{}, invalid(entity, id, "artist", "browseId")
	}
	a.ArtistID = &id
	return a, nil
}

// artistFromRuns picks the artist run out of a subtitle: the first run
// linking to an artist page, otherwise the first plain run.
func artistFromRuns(entity string, runs []traverse.Node) (schema.ArtistBasic, error) {
	if run, ok := findRun(runs, isArtist); ok {
		return artistFromRun(entity, run)
	}
	if run, ok := firstPlain(runs); ok {
		return schema.ArtistBasic{Name: runText(run)}, nil
	}
	return schema.ArtistBasic{}, nil
}

func albumFromRun(entity string, run traverse.Node) (*schema.AlbumBasic, error) {
	id := browseID(run)
	if !schema.ValidAlbumID(id) {
		return nil, invalid(entity, id, "album", "browseId")
	}
	return &schema.AlbumBasic{AlbumID: id, Name: runText(run)}, nil
}

func durationFromRuns(runs []traverse.Node) *int {
	run, ok := findRun(runs, isDuration)
	if !ok {
		return nil
	}
	d, ok := ParseDuration(runText(run))
	if !ok {
		return nil
	}
	return &d
}

func yearFromRuns(runs []traverse.Node) *int {
	for i := len(runs) - 1; i >= 0; i-- {
		t := strings.TrimSpace(runText(runs[i]))
		if yearPattern.MatchString(t) {
			y, _ := strconv.Atoi(t)
			return &y
		}
	}
	return nil
}

func isExplicit(item traverse.Node) bool {
	for _, icon := range traverse.TraverseList(item, "badges", "iconType") {
		if icon.Text() == explicitBadge {
			return true
		}
	}
	return false
}

// firstBrowseID returns the first browseId under n accepted by valid.
func firstBrowseID(n traverse.Node, valid func(string) bool) string {
	for _, id := range traverse.TraverseList(n, "browseId") {
		if s := id.Text(); valid(s) {
			return s
		}
	}
	return ""
}

// itemVideoID looks for the video a list item plays.
func itemVideoID(item traverse.Node) string {
	if id, ok := traverse.Traverse(item, "playlistItemData", "videoId"); ok {
		return id.Text()
	}
	if id, ok := traverse.Traverse(item, "playNavigationEndpoint", "videoId"); ok {
		return id.Text()
	}
	if id, ok := traverse.Traverse(item, "watchEndpoint", "videoId"); ok {
		return id.Text()
	}
	return ""
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

var countUnits = []string{"song", "track", "video", "episode"}

// itemCount reads the track count out of text such as
// "1.2M views • 100 tracks • 6+ hours".
func itemCount(n traverse.Node) *int {
	for _, part := range strings.Split(runsText(n), "•") {
		lower := strings.ToLower(part)
		for _, unit := range countUnits {
			if !strings.Contains(lower, unit) {
				continue
			}
			if v, ok := ParseCount(part); ok {
				return intPtr(int(v))
			}
		}
	}
	return nil
}
