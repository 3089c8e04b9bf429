package ytmusic

import (
	"context"
	"fmt"

	"github.com/justestif/go-ytmusic/internal/traverse"
)

// pageState is the state of a continuation loop: pageHasMore or
// pageExhausted.
type pageState interface {
	isPageState()
}

// pageHasMore holds the token of the next page.
type pageHasMore struct {
	token string
}

// pageExhausted means the listing has no further pages.
type pageExhausted struct{}

func (pageHasMore) isPageState()   {}
func (pageExhausted) isPageState() {}

// pager tracks the tokens already followed by one continuation loop.
type pager struct {
	seen map[string]bool
}

func newPager() *pager {
	return &pager{seen: make(map[string]bool)}
}

// next is the single transition of the loop. A page with no continuation
// token, or one repeating a token already followed, exhausts the listing.
func (p *pager) next(page traverse.Node) pageState {
	tok, ok := traverse.Traverse(page, "continuation")
	if !ok {
		return pageExhausted{}
	}
	s, ok := tok.Str()
	if !ok || s == "" || p.seen[s] {
		return pageExhausted{}
	}
	p.seen[s] = true
	return pageHasMore{token: s}
}

// continuation fetches the page a token points at.
func (c *Client) continuation(ctx context.Context, token string) (traverse.Node, error) {
	return c.request(ctx, EndpointBrowse, map[string]any{}, map[string]string{"continuation": token})
}

// paginate follows continuation tokens starting from first, which the caller
// has already collected, and passes every further page to collect in fetch
// order. Pages are fetched one at a time. On cancellation or a failed fetch
// the loop stops; pages collected so far stay collected.
func (c *Client) paginate(ctx context.Context, first traverse.Node, collect func(traverse.Node)) error {
	p := newPager()
	state := p.next(first)
	pages := 1

	for {
		switch s := state.(type) {
		case pageExhausted:
			return nil
		case pageHasMore:
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("stopped after %d pages: %w", pages, err)
			}
			page, err := c.continuation(ctx, s.token)
			if err != nil {
				return fmt.Errorf("fetching page %d: %w", pages+1, err)
			}
			pages++
			collect(page)
			state = p.next(page)
		}
	}
}
