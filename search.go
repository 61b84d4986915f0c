package arnak

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// SearchOptions are the optional parameters for a catalog search.
type SearchOptions struct {
	// Exact restricts results to exact matches of the query. The server's
	// exact flag is case insensitive, so a case sensitive filter is also
	// applied client side: a result never differs from the query.
	Exact bool
	// Type restricts results to one item type. Note the server reports
	// expansions with type boardgame when this is set to ItemTypeBoardGame.
	Type ItemType
}

// SearchResults holds the matches for one search query.
type SearchResults struct {
	// Query is the searched name.
	Query string
	// Exact records whether exact matching was requested.
	Exact bool
	// Results holds the matches in server response order.
	Results []SearchResult
}

// SearchResult is a single search match.
type SearchResult struct {
	// ID of the matched game.
	ID int
	// Type of the matched item.
	Type ItemType
	// Name of the matched game.
	Name string
	// YearPublished is zero when the server omits it.
	YearPublished int
}

// Search searches the catalog for games by name.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*SearchResults, error) {
	if query == "" {
		return nil, errors.New("search query cannot be empty")
	}

	q := url.Values{}
	q.Set("query", query)
	if opts.Exact {
		q.Set("exact", "1")
	}
	if opts.Type != "" {
		q.Set("type", string(opts.Type))
	}

	body, err := c.getOnce(ctx, "/search", q)
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
		return nil, newParseError(fmt.Sprintf("unexpected root element <%s> in search response", root.tag()), snippet(body), nil)
	}

	elements := root.children("item")
	results := &SearchResults{
		Query:   query,
		Exact:   opts.Exact,
		Results: make([]SearchResult, 0, len(elements)),
	}
	for _, el := range elements {
		result, err := decodeSearchResult(el, c.entityMode)
		if err != nil {
			return nil, err
		}
		if opts.Exact && result.Name != query {
			continue
		}
		results.Results = append(results.Results, *result)
	}

	return results, nil
}

func decodeSearchResult(n *node, mode EntityMode) (*SearchResult, error) {
	id, err := n.intAttr("id")
	if err != nil {
		return nil, err
	}

	itemType := ItemTypeBoardGame
	if t, ok := n.attr("type"); ok {
		itemType = ItemType(t)
	}

	name, err := n.requiredChildValue("name")
	if err != nil {
		return nil, err
	}

	year, err := n.childIntValue("yearpublished")
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		ID:            id,
		Type:          itemType,
		Name:          correctEntities(name, mode),
		YearPublished: year,
	}, nil
}
