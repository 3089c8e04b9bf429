// Package schema defines the records returned by the YouTube Music client.
//
// Every entity has a Detailed form used in lists and search results. Entities
// that can be looked up directly also have a Full form that embeds the
// Detailed one, so a Full record always carries its Detailed fields unchanged.
package schema

import (
	"encoding/json"
	"fmt"
)

// ItemType discriminates the variants of Item.
type ItemType string

const (
	TypeSong     ItemType = "SONG"
	TypeVideo    ItemType = "VIDEO"
	TypeArtist   ItemType = "ARTIST"
	TypeAlbum    ItemType = "ALBUM"
	TypePlaylist ItemType = "PLAYLIST"
)

// Thumbnail is one size of an image. Slices of thumbnails keep the order the
// upstream API uses, which is smallest first.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ArtistBasic references an artist or channel. ArtistID is nil when the
// source text carries no link, e.g. "Various Artists".
type ArtistBasic struct {
	ArtistID *string `json:"artistId"`
	Name     string  `json:"name"`
}

// AlbumBasic references an album.
type AlbumBasic struct {
	AlbumID string `json:"albumId"`
	Name    string `json:"name"`
}

// SongDetailed is a song as it appears in lists.
type SongDetailed struct {
	Type       ItemType    `json:"type"`
	VideoID    string      `json:"videoId"`
	Name       string      `json:"name"`
	Artist     ArtistBasic `json:"artist"`
	Album      *AlbumBasic `json:"album"`
	Duration   *int        `json:"duration"`
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
	Explicit   bool        `json:"explicit"`
}

// Item wraps the song as a search result.
func (s SongDetailed) Item() Item { return Item{Type: TypeSong, Song: &s} }

// SongFull is a song fetched from the player endpoint.
type SongFull struct {
	SongDetailed
	Playable        bool     `json:"playable"`
	Formats         []Format `json:"formats,omitempty"`
	AdaptiveFormats []Format `json:"adaptiveFormats,omitempty"`
}

// Detailed returns the list view of the song.
func (s SongFull) Detailed() SongDetailed { return s.SongDetailed }

// Format is one stream offered by the player endpoint. URL is empty when the
// stream needs a deciphered signature.
type Format struct {
	Itag             int    `json:"itag"`
	MimeType         string `json:"mimeType"`
	Bitrate          int    `json:"bitrate"`
	Width            int    `json:"width,omitempty"`
	Height           int    `json:"height,omitempty"`
	ContentLength    int64  `json:"contentLength,omitempty"`
	Quality          string `json:"quality,omitempty"`
	QualityLabel     string `json:"qualityLabel,omitempty"`
	AudioQuality     string `json:"audioQuality,omitempty"`
	AudioSampleRate  int    `json:"audioSampleRate,omitempty"`
	ApproxDurationMs int64  `json:"approxDurationMs,omitempty"`
	URL              string `json:"url,omitempty"`
}

// VideoDetailed is a video as it appears in lists.
type VideoDetailed struct {
	Type       ItemType    `json:"type"`
	VideoID    string      `json:"videoId"`
	Name       string      `json:"name"`
	Artist     ArtistBasic `json:"artist"`
	Duration   *int        `json:"duration"`
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
}

// Item wraps the video as a search result.
func (v VideoDetailed) Item() Item { return Item{Type: TypeVideo, Video: &v} }

// VideoFull is a video fetched from the player endpoint.
type VideoFull struct {
	VideoDetailed
	Views      *int64   `json:"views"`
	Unlisted   bool     `json:"unlisted"`
	FamilySafe bool     `json:"familySafe"`
	Paid       bool     `json:"paid"`
	Tags       []string `json:"tags,omitempty"`
}

// Detailed returns the list view of the video.
func (v VideoFull) Detailed() VideoDetailed { return v.VideoDetailed }

// ArtistDetailed is an artist as it appears in lists.
type ArtistDetailed struct {
	Type       ItemType    `json:"type"`
	ArtistID   string      `json:"artistId"`
	Name       string      `json:"name"`
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
}

// Item wraps the artist as a search result.
func (a ArtistDetailed) Item() Item { return Item{Type: TypeArtist, Artist: &a} }

// ArtistFull is an artist page.
type ArtistFull struct {
	ArtistDetailed
	Subscribers    *int64           `json:"subscribers"`
	TopSongs       []SongDetailed   `json:"topSongs"`
	TopAlbums      []AlbumDetailed  `json:"topAlbums"`
	TopSingles     []AlbumDetailed  `json:"topSingles"`
	TopVideos      []VideoDetailed  `json:"topVideos"`
	SimilarArtists []ArtistDetailed `json:"similarArtists"`
}

// Detailed returns the list view of the artist.
func (a ArtistFull) Detailed() ArtistDetailed { return a.ArtistDetailed }

// AlbumDetailed is an album, single or EP as it appears in lists.
type AlbumDetailed struct {
	Type       ItemType    `json:"type"`
	AlbumID    string      `json:"albumId"`
	PlaylistID string      `json:"playlistId,omitempty"`
	Name       string      `json:"name"`
	Artist     ArtistBasic `json:"artist"`
	Year       *int        `json:"year"`
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
}

// Item wraps the album as a search result.
func (a AlbumDetailed) Item() Item { return Item{Type: TypeAlbum, Album: &a} }

// AlbumFull is an album page with its tracks in order.
type AlbumFull struct {
	AlbumDetailed
	Description string         `json:"description,omitempty"`
	TrackCount  *int           `json:"trackCount"`
	Songs       []SongDetailed `json:"songs"`
}

// Detailed returns the list view of the album.
func (a AlbumFull) Detailed() AlbumDetailed { return a.AlbumDetailed }

// PlaylistDetailed is a playlist as it appears in lists. PlaylistID is in
// canonical browse form.
type PlaylistDetailed struct {
	Type       ItemType    `json:"type"`
	PlaylistID string      `json:"playlistId"`
	Name       string      `json:"name"`
	Artist     ArtistBasic `json:"artist"`
	Thumbnails []Thumbnail `json:"thumbnails,omitempty"`
}

// Item wraps the playlist as a search result.
func (p PlaylistDetailed) Item() Item { return Item{Type: TypePlaylist, Playlist: &p} }

// PlaylistFull is a playlist header. Its videos are fetched separately.
type PlaylistFull struct {
	PlaylistDetailed
	VideoCount *int `json:"videoCount"`
}

// Detailed returns the list view of the playlist.
func (p PlaylistFull) Detailed() PlaylistDetailed { return p.PlaylistDetailed }

// Item is a tagged union of the Detailed records. Exactly one pointer is set,
// matching Type.
type Item struct {
	Type     ItemType
	Song     *SongDetailed
	Video    *VideoDetailed
	Artist   *ArtistDetailed
	Album    *AlbumDetailed
	Playlist *PlaylistDetailed
}

// SearchResult is an item produced by the generic search endpoint.
type SearchResult = Item

// Name returns the display name of whichever variant is set.
func (i Item) Name() string {
	switch i.Type {
	case TypeSong:
		return i.Song.Name
	case TypeVideo:
		return i.Video.Name
	case TypeArtist:
		return i.Artist.Name
	case TypeAlbum:
		return i.Album.Name
	case TypePlaylist:
		return i.Playlist.Name
	}
	return ""
}

func (i Item) variant() (any, error) {
	var v any
	switch i.Type {
	case TypeSong:
		v = i.Song
	case TypeVideo:
		v = i.Video
	case TypeArtist:
		v = i.Artist
	case TypeAlbum:
		v = i.Album
	case TypePlaylist:
		v = i.Playlist
	default:
		return nil, fmt.Errorf("unknown item type %q", i.Type)
	}
	return v, nil
}

// MarshalJSON encodes the set variant, which carries its own type field.
func (i Item) MarshalJSON() ([]byte, error) {
	v, err := i.variant()
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes a variant by its type field.
func (i *Item) UnmarshalJSON(data []byte) error {
	var head struct {
		Type ItemType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	out := Item{Type: head.Type}
	var target any
	switch head.Type {
	case TypeSong:
		out.Song = new(SongDetailed)
		target = out.Song
	case TypeVideo:
		out.Video = new(VideoDetailed)
		target = out.Video
	case TypeArtist:
		out.Artist = new(ArtistDetailed)
		target = out.Artist
	case TypeAlbum:
		out.Album = new(AlbumDetailed)
		target = out.Album
	case TypePlaylist:
		out.Playlist = new(PlaylistDetailed)
		target = out.Playlist
	default:
		return fmt.Errorf("unknown item type %q", head.Type)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return err
	}
	*i = out
	return nil
}

// SectionKind is the renderer family a home section was built from.
type SectionKind string

const (
	SectionCarousel    SectionKind = "carousel"
	SectionShelf       SectionKind = "shelf"
	SectionDescription SectionKind = "description"
)

// HomeSection is one row of the home feed.
type HomeSection struct {
	Title       string      `json:"title"`
	Kind        SectionKind `json:"kind"`
	Description string      `json:"description,omitempty"`
	Contents    []Item      `json:"contents"`
}
