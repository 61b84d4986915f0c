package arnak

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// GameFamily is a named grouping of related games and expansions, such as
// a series published under one title.
type GameFamily struct {
	// ID of the family.
	ID int
	// Name is the family's primary name.
	Name string
	// AlternateNames holds translations and other names for the family.
	AlternateNames []string
	Image          string
	Thumbnail      string
	// Description of the group of games.
	Description string
	// Links lists the games in the family, in server order. Empty for
	// freshly created families.
	Links []FamilyLink
}

// FamilyLink is one game linked to a family.
type FamilyLink struct {
	ID   int
	Name string
}

// GetGameFamily retrieves a single game family by ID.
func (c *Client) GetGameFamily(ctx context.Context, id int) (*GameFamily, error) {
	families, err := c.GetGameFamilies(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	if len(families) == 0 {
		return nil, &NotFoundError{ID: id}
	}
	return &families[0], nil
}

// GetGameFamilies retrieves game families by ID, batched into a single
// request. The result is ordered to match the input IDs; families the
// server returned but that were not asked for are appended in server order.
func (c *Client) GetGameFamilies(ctx context.Context, ids []int) ([]GameFamily, error) {
	if len(ids) == 0 {
		return []GameFamily{}, nil
	}

	q := url.Values{}
	// The endpoint supports RPG and video game families too, but this
	// client only exposes board games.
	q.Set("type", "boardgamefamily")
	q.Set("id", joinIDs(ids))

	body, err := c.getOnce(ctx, "/family", q)
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
		return nil, newParseError(fmt.Sprintf("unexpected root element <%s> in family response", root.tag()), snippet(body), nil)
	}

	elements := root.children("item")
	families := make([]GameFamily, 0, len(elements))
	for _, el := range elements {
		family, err := decodeGameFamily(el, c.entityMode)
		if err != nil {
			return nil, err
		}
		families = append(families, *family)
	}

	return orderFamiliesByInput(families, ids), nil
}

// decodeGameFamily maps one <item> element to a GameFamily. Unknown child
// elements and non-family links are ignored for forward compatibility.
func decodeGameFamily(n *node, mode EntityMode) (*GameFamily, error) {
	id, err := n.intAttr("id")
	if err != nil {
		return nil, err
	}

	family := &GameFamily{ID: id}
	for _, child := range n.allChildren() {
		switch child.tag() {
		case "name":
			value, err := child.requiredAttr("value")
			if err != nil {
				return nil, err
			}
			value = correctEntities(value, mode)
			if nameType, _ := child.attr("type"); nameType == "primary" {
				family.Name = value
			} else {
				family.AlternateNames = append(family.AlternateNames, value)
			}
		case "image":
			family.Image = child.text()
		case "thumbnail":
			family.Thumbnail = child.text()
		case "description":
			family.Description = correctEntities(child.text(), mode)
		case "link":
			linkType, _ := child.attr("type")
			if linkType != "boardgamefamily" {
				continue
			}
			linkID, err := child.intAttr("id")
			if err != nil {
				return nil, err
			}
			linkName, err := child.requiredAttr("value")
			if err != nil {
				return nil, err
			}
			family.Links = append(family.Links, FamilyLink{
				ID:   linkID,
				Name: correctEntities(linkName, mode),
			})
		}
	}

	if family.Name == "" {
		return nil, newMissingFieldError(n.tag(), "name")
	}
	return family, nil
}

// orderFamiliesByInput reorders decoded families to match the requested
// IDs, since the server does not guarantee response order.
func orderFamiliesByInput(families []GameFamily, ids []int) []GameFamily {
	byID := make(map[int]int, len(families))
	for i, f := range families {
		byID[f.ID] = i
	}

	ordered := make([]GameFamily, 0, len(families))
	used := make(map[int]bool, len(families))
	for _, id := range ids {
		if i, ok := byID[id]; ok && !used[i] {
			ordered = append(ordered, families[i])
			used[i] = true
		}
	}
	for i, f := range families {
		if !used[i] {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
