package arnak

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// The guild endpoint uses a long date format with a named day, e.g.
// "Thu, 14 Jun 2007 01:06:46 +0000".
const guildDateFormat = "Mon, 02 Jan 2006 15:04:05 -0700"

// Guild is a group of site members organised around events, clubs, or a
// location.
type Guild struct {
	// ID of the guild.
	ID int
	// Name of the guild.
	Name string
	// Created is when the guild was founded.
	Created  time.Time
	Category string
	Website  string
	// Manager is the username of the guild's manager.
	Manager string
	// Description of the guild.
	Description string
	Location    GuildLocation
	// Members is the requested page of members, nil unless a member page
	// was asked for.
	Members *GuildMemberPage
}

// GuildLocation is the physical address of a guild, all fields optional.
type GuildLocation struct {
	Address1        string
	Address2        string
	City            string
	StateOrProvince string
	PostalCode      string
	Country         string
}

// GuildMemberPage is one page of a guild's member list.
type GuildMemberPage struct {
	// Total is the total member count across all pages.
	Total int
	// Page is the 1-indexed page number returned.
	Page int
	// Members holds the page's members in the requested sort order.
	Members []GuildMember
}

// GuildMember is a single member of a guild.
type GuildMember struct {
	// Name is the member's username.
	Name string
	// Joined is when the member joined the guild. Zero when absent.
	Joined time.Time
}

// GuildMemberSort selects the ordering of a guild's member list.
type GuildMemberSort string

const (
	// GuildMemberSortUsername sorts members alphabetically by username.
	GuildMemberSortUsername GuildMemberSort = "username"
	// GuildMemberSortDate sorts members by date joined, most recent first.
	GuildMemberSortDate GuildMemberSort = "date"
)

// GuildOptions are the optional parameters for a guild request.
type GuildOptions struct {
	// MemberPage requests the given 1-indexed page of members. Zero means
	// no member list.
	MemberPage int
	// SortBy orders the member list. Empty means the server default.
	SortBy GuildMemberSort
}

// GetGuild retrieves a guild by ID.
func (c *Client) GetGuild(ctx context.Context, id int, opts GuildOptions) (*Guild, error) {
	if id <= 0 {
		return nil, &NotFoundError{ID: id}
	}

	q := url.Values{}
	q.Set("id", strconv.Itoa(id))
	if opts.MemberPage > 0 {
		q.Set("members", "1")
		q.Set("page", strconv.Itoa(opts.MemberPage))
	}
	if opts.SortBy != "" {
		q.Set("sort", string(opts.SortBy))
	}

	body, err := c.getOnce(ctx, "/guild", q)
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
	if root.tag() != "guild" {
		return nil, newParseError(fmt.Sprintf("unexpected root element <%s> in guild response", root.tag()), snippet(body), nil)
	}

	return decodeGuild(root, c.entityMode)
}

func decodeGuild(n *node, mode EntityMode) (*Guild, error) {
	id, err := n.intAttr("id")
	if err != nil {
		return nil, err
	}
	name, err := n.requiredAttr("name")
	if err != nil {
		// A guild element without a name means the ID does not exist.
		return nil, &NotFoundError{ID: id}
	}

	guild := &Guild{
		ID:          id,
		Name:        correctEntities(name, mode),
		Category:    n.childText("category"),
		Website:     n.childText("website"),
		Manager:     n.childText("manager"),
		Description: correctEntities(n.childText("description"), mode),
	}

	if raw, ok := n.attr("created"); ok && raw != "" {
		created, err := time.Parse(guildDateFormat, raw)
		if err != nil {
			return nil, newUnexpectedValueError(n.tag(), "created", raw)
		}
		guild.Created = created
	}

	if locationNode := n.child("location"); locationNode != nil {
		guild.Location = GuildLocation{
			Address1:        locationNode.childText("addr1"),
			Address2:        locationNode.childText("addr2"),
			City:            locationNode.childText("city"),
			StateOrProvince: locationNode.childText("stateorprovince"),
			PostalCode:      locationNode.childText("postalcode"),
			Country:         locationNode.childText("country"),
		}
	}

	if membersNode := n.child("members"); membersNode != nil {
		page, err := decodeGuildMembers(membersNode)
		if err != nil {
			return nil, err
		}
		guild.Members = page
	}

	return guild, nil
}

func decodeGuildMembers(n *node) (*GuildMemberPage, error) {
	total, err := n.optionalIntAttr("count")
	if err != nil {
		return nil, err
	}
	pageNum, err := n.optionalIntAttr("page")
	if err != nil {
		return nil, err
	}

	elements := n.children("member")
	page := &GuildMemberPage{
		Total:   total,
		Page:    pageNum,
		Members: make([]GuildMember, 0, len(elements)),
	}
	for _, el := range elements {
		memberName, err := el.requiredAttr("name")
		if err != nil {
			return nil, err
		}
		member := GuildMember{Name: memberName}
		if raw, ok := el.attr("date"); ok && raw != "" {
			joined, err := time.Parse(guildDateFormat, raw)
			if err != nil {
				return nil, newUnexpectedValueError(el.tag(), "date", raw)
			}
			member.Joined = joined
		}
		page.Members = append(page.Members, member)
	}

	return page, nil
}
