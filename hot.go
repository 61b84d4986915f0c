package arnak

import (
	"context"
	"fmt"
	"net/url"
	"sort"
)

// maxHotListEntries caps the hot list returned to callers.
const maxHotListEntries = 10

// HotItem is one entry on the hot list of currently trending games.
type HotItem struct {
	// ID of the game.
	ID int
	// Rank on the hot list, starting at 1.
	Rank int
	// Name of the game.
	Name string
	// Thumbnail is empty when the game has no image yet.
	Thumbnail string
	// YearPublished is zero when the server omits it.
	YearPublished int
}

// GetHotList retrieves the current top trending board games, at most ten
// entries ordered by rank ascending.
func (c *Client) GetHotList(ctx context.Context) ([]HotItem, error) {
	q := url.Values{}
	q.Set("type", "boardgame")

	body, err := c.getOnce(ctx, "/hot", q)
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}
	root := doc.root()
	if err := checkAPIError(root); err != nil {
		return nil, err
	}
	if root.tag() != "items" {
		return nil, newParseError(fmt.Sprintf("unexpected root element <%s> in hot list response", root.tag()), snippet(body), nil)
	}

	elements := root.children("item")
	items := make([]HotItem, 0, len(elements))
	for _, el := range elements {
		item, err := decodeHotItem(el, c.entityMode)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Rank < items[j].Rank })
	if len(items) > maxHotListEntries {
		items = items[:maxHotListEntries]
	}
	return items, nil
}

func decodeHotItem(n *node, mode EntityMode) (*HotItem, error) {
	id, err := n.intAttr("id")
	if err != nil {
		return nil, err
	}
	rank, err := n.intAttr("rank")
	if err != nil {
		return nil, err
	}

	name, err := n.requiredChildValue("name")
	if err != nil {
		return nil, err
	}

	thumbnail, _ := n.childValue("thumbnail")
	year, err := n.childIntValue("yearpublished")
	if err != nil {
		return nil, err
	}

	return &HotItem{
		ID:            id,
		Rank:          rank,
		Name:          correctEntities(name, mode),
		Thumbnail:     thumbnail,
		YearPublished: year,
	}, nil
}
