package schema

import (
	"regexp"
	"strings"
)

var (
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	artistIDPattern = regexp.MustCompile(`^(UC|MPLA)[A-Za-z0-9_-]+$`)
	albumIDPattern  = regexp.MustCompile(`^MPREb_[A-Za-z0-9_-]+$`)
	listIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// ValidVideoID reports whether id is an 11 character video token.
func ValidVideoID(id string) bool { return videoIDPattern.MatchString(id) }

// ValidArtistID reports whether id looks like a channel or artist browse ID.
func ValidArtistID(id string) bool { return artistIDPattern.MatchString(id) }

// ValidAlbumID reports whether id looks like an album browse ID.
func ValidAlbumID(id string) bool { return albumIDPattern.MatchString(id) }

// ValidPlaylistID reports whether id is a non-empty playlist token.
func ValidPlaylistID(id string) bool { return listIDPattern.MatchString(id) }

// CanonicalPlaylistID rewrites a "PL" playlist ID into its "VL" browse form.
// Other IDs are returned unchanged.
func CanonicalPlaylistID(id string) string {
	if strings.HasPrefix(id, "PL") {
		return "VL" + id
	}
	return id
}
