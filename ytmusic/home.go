package ytmusic

import (
	"context"
	"fmt"

	"github.com/justestif/go-ytmusic/internal/parser"
	"github.com/justestif/go-ytmusic/internal/traverse"
	"github.com/justestif/go-ytmusic/schema"
)

// GetHomeSections fetches the home feed, following continuation pages until
// the feed is exhausted. Sections built from renderers this package does not
// model are dropped.
//
// Like GetPlaylistVideos, a failed or cancelled page fetch returns the
// sections gathered so far together with the error.
func (c *Client) GetHomeSections(ctx context.Context) ([]schema.HomeSection, error) {
	data, err := c.browse(ctx, homeBrowseID)
	if err != nil {
		return nil, fmt.Errorf("getting home: %w", err)
	}

	sections := []schema.HomeSection{}
	add := func(nodes []traverse.Node) {
		for _, n := range nodes {
			s, ok := parser.ParseMixedContent(n)
			if !ok {
				name, _ := parser.SectionRenderer(n)
				c.logger.Printf("home: skipping %s section", name)
				continue
			}
			sections = append(sections, s)
		}
	}

	add(traverse.TraverseList(data, "sectionListRenderer", "contents"))
	pageErr := c.paginate(ctx, data, func(page traverse.Node) {
		add(traverse.TraverseList(page, "sectionListContinuation", "contents"))
	})
	if pageErr != nil {
		return sections, fmt.Errorf("getting home: %w", pageErr)
	}
	return sections, nil
}
