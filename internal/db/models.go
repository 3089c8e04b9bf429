package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind names the type of a stored catalog entity.
type Kind string

const (
	KindSong     Kind = "song"
	KindVideo    Kind = "video"
	KindArtist   Kind = "artist"
	KindAlbum    Kind = "album"
	KindPlaylist Kind = "playlist"
)

// Entity is a JSON snapshot of a fetched catalog record.
type Entity struct {
	ID        uuid.UUID
	Kind      Kind
	EntityID  string // videoId, artistId, albumId or playlistId
	Payload   json.RawMessage
	FetchedAt time.Time
}
