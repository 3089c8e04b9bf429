// Package ytmusic is a read-only client for the YouTube Music catalog.
//
// The Client turns InnerTube responses into the records defined in package
// schema. It does no networking itself: every request goes through a
// Requester, which owns the session, headers and retry policy.
package ytmusic

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/justestif/go-ytmusic/internal/traverse"
)

// InnerTube endpoints used by the client.
const (
	EndpointSearch      = "search"
	EndpointBrowse      = "browse"
	EndpointPlayer      = "player"
	EndpointNext        = "next"
	EndpointSuggestions = "music/get_search_suggestions"
)

// Search filters. These select a single result type on the search endpoint.
const (
	FilterSongs     = "Eg-KAQwIARAAGAAgACgAMABqChAEEAMQCRAFEAo%3D"
	FilterVideos    = "Eg-KAQwIABABGAAgACgAMABqChAEEAMQCRAFEAo%3D"
	FilterArtists   = "Eg-KAQwIABAAGAAgASgAMABqChAEEAMQCRAFEAo%3D"
	FilterAlbums    = "Eg-KAQwIABAAGAEgACgAMABqChAEEAMQCRAFEAo%3D"
	FilterPlaylists = "Eg-KAQwIABAAGAAgACgBMABqChAEEAMQCRAFEAo%3D"
)

const homeBrowseID = "FEmusic_home"

// Requester sends one InnerTube request and returns the raw JSON response.
// body is merged into the request payload; query is appended to the URL.
type Requester interface {
	Request(ctx context.Context, endpoint string, body map[string]any, query map[string]string) ([]byte, error)
}

// initializer is implemented by Requesters that need a bootstrap step.
type initializer interface {
	Initialized() bool
}

// Client fetches and parses catalog entities. It is safe for concurrent use
// when its Requester is.
type Client struct {
	req    Requester
	logger *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used to report skipped items. By default
// nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client that sends its requests through req.
func New(req Requester, opts ...Option) *Client {
	c := &Client{
		req:    req,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request sends one request and decodes the response tree.
func (c *Client) request(ctx context.Context, endpoint string, body map[string]any, query map[string]string) (traverse.Node, error) {
	if in, ok := c.req.(initializer); ok && !in.Initialized() {
		return traverse.Node{}, ErrNotInitialized
	}

	data, err := c.req.Request(ctx, endpoint, body, query)
	if err != nil {
		return traverse.Node{}, fmt.Errorf("requesting %s: %w", endpoint, err)
	}

	n, err := traverse.Parse(data)
	if err != nil {
		return traverse.Node{}, fmt.Errorf("decoding %s response: %w: %w", endpoint, ErrUpstreamMalformed, err)
	}
	return n, nil
}

func (c *Client) browse(ctx context.Context, browseID string) (traverse.Node, error) {
	return c.request(ctx, EndpointBrowse, map[string]any{"browseId": browseID}, nil)
}

// logSkipped reports items dropped from a list because they failed to parse.
func (c *Client) logSkipped(op string, errs []error) {
	for _, err := range errs {
		c.logger.Printf("%s: skipping item: %v", op, err)
	}
}
