package ytmusic

import (
	"errors"

	"github.com/justestif/go-ytmusic/internal/parser"
)

// Sentinel errors.
var (
	// ErrInvalidVideoID is returned when a video ID fails validation before any
	// request is made, or when the player returned a different video than the
	// one requested.
	ErrInvalidVideoID = errors.New("invalid video ID")

	// ErrNotInitialized is returned when the Requester has not completed its
	// bootstrap.
	ErrNotInitialized = errors.New("client not initialized: call Initialize first")

	// ErrUpstreamMalformed is returned when a response or bootstrap payload is
	// not usable JSON.
	ErrUpstreamMalformed = errors.New("malformed upstream response")

	// ErrParseFailure is wrapped by every *ParseError.
	ErrParseFailure = parser.ErrParseFailure
)

// ParseError reports a required field that could not be found in a
// response. Path holds the keys that were followed.
type ParseError = parser.ParseError
