package arnak

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const (
	collectionDateFormat     = "2006-01-02 15:04:05"
	modifiedSinceQueryFormat = "06-01-02"
)

// Collection is a user's recorded relationship to a set of games: owned,
// wishlisted, previously owned and so on.
type Collection struct {
	// Username is the name the collection was requested for.
	Username string
	// Items holds the collection entries in server response order.
	Items []CollectionItem
}

// CollectionItem is one entry in a user's collection.
type CollectionItem struct {
	// ID of the game this entry refers to.
	ID int
	// CollectionID identifies the entry itself, unique per user.
	CollectionID int
	// Type of the item, board game or expansion.
	Type ItemType
	// Name of the game.
	Name string
	// YearPublished is zero when the server omits it.
	YearPublished int
	Image         string
	Thumbnail     string
	// NumPlays is the number of plays the user has recorded.
	NumPlays int
	// Comment is the user's public comment on the entry, if any.
	Comment string
	// Status holds the independent status flags for the entry.
	Status CollectionStatus
	// Rating is the user's 0-10 rating, nil when unrated.
	Rating *float64
	// Stats holds site-wide stats for the game. The server omits them for
	// some queries.
	Stats *CollectionStats
}

// CollectionStatus holds the status flags of a collection entry. The flags
// are independent booleans, any combination can be set.
type CollectionStatus struct {
	Own             bool
	PreviouslyOwned bool
	ForTrade        bool
	WantInTrade     bool
	WantToPlay      bool
	WantToBuy       bool
	Preordered      bool
	Wishlist        bool
	// WishlistPriority is set only when Wishlist is.
	WishlistPriority WishlistPriority
	// LastModified is when the status last changed. Zero when absent.
	LastModified time.Time
}

// CollectionStats holds site-wide statistics about a collection entry's game.
type CollectionStats struct {
	MinPlayers   int
	MaxPlayers   int
	MinPlaytime  time.Duration
	MaxPlaytime  time.Duration
	PlayingTime  time.Duration
	OwnedBy      int
	Average      float64
	BayesAverage float64
	// Rank is the game's overall board game rank, zero when not ranked.
	Rank int
}

// CollectionOptions are the optional filters for a collection request.
// Nil pointer fields mean "server default". If no status filters are set
// the server returns entries with any status; setting any to true narrows
// the result to those, setting one to false excludes it.
type CollectionOptions struct {
	// Subtype restricts results to one item type. Note the server reports
	// expansions with type boardgame unless they are excluded explicitly.
	Subtype ItemType
	// ExcludeSubtype excludes one item type from the results.
	ExcludeSubtype ItemType

	Own             *bool
	PreviouslyOwned *bool
	ForTrade        *bool
	WantInTrade     *bool
	WantToPlay      *bool
	WantToBuy       *bool
	Preordered      *bool
	Wishlist        *bool
	// WishlistPriority restricts results to one wishlist priority.
	WishlistPriority WishlistPriority

	// Rated restricts results to entries the user has rated.
	Rated *bool
	// Played restricts results to entries with recorded plays.
	Played *bool
	// Commented restricts results to entries the user commented on.
	Commented *bool

	MinRating    *float64
	MaxRating    *float64
	MinBGGRating *float64
	MaxBGGRating *float64
	MinPlays     *int
	MaxPlays     *int

	// ModifiedSince restricts results to entries modified after this date.
	ModifiedSince time.Time

	// Stats controls whether per-game statistics are included. When nil the
	// request still asks for them, because the server's behaviour is
	// inconsistent when the parameter is omitted.
	Stats *bool
}

func (o CollectionOptions) values(username string) url.Values {
	q := url.Values{}
	q.Set("username", username)

	if o.Subtype != "" {
		q.Set("subtype", string(o.Subtype))
	}
	if o.ExcludeSubtype != "" {
		q.Set("excludesubtype", string(o.ExcludeSubtype))
	}

	setFlag(q, "own", o.Own)
	setFlag(q, "prevowned", o.PreviouslyOwned)
	setFlag(q, "trade", o.ForTrade)
	setFlag(q, "want", o.WantInTrade)
	setFlag(q, "wanttoplay", o.WantToPlay)
	setFlag(q, "wanttobuy", o.WantToBuy)
	setFlag(q, "preordered", o.Preordered)
	setFlag(q, "wishlist", o.Wishlist)
	if o.WishlistPriority != WishlistPriorityUnset {
		q.Set("wishlistpriority", strconv.Itoa(int(o.WishlistPriority)))
	}

	setFlag(q, "rated", o.Rated)
	setFlag(q, "played", o.Played)
	setFlag(q, "comment", o.Commented)

	if o.MinRating != nil {
		q.Set("minrating", formatFloat(*o.MinRating))
	}
	if o.MaxRating != nil {
		q.Set("rating", formatFloat(*o.MaxRating))
	}
	if o.MinBGGRating != nil {
		q.Set("minbggrating", formatFloat(*o.MinBGGRating))
	}
	if o.MaxBGGRating != nil {
		q.Set("bggrating", formatFloat(*o.MaxBGGRating))
	}
	if o.MinPlays != nil {
		q.Set("minplays", strconv.Itoa(*o.MinPlays))
	}
	if o.MaxPlays != nil {
		q.Set("maxplays", strconv.Itoa(*o.MaxPlays))
	}

	if !o.ModifiedSince.IsZero() {
		q.Set("modifiedsince", o.ModifiedSince.Format(modifiedSinceQueryFormat))
	}

	if o.Stats == nil {
		q.Set("stats", "1")
	} else {
		setFlag(q, "stats", o.Stats)
	}

	return q
}

func setFlag(q url.Values, key string, v *bool) {
	if v == nil {
		return
	}
	if *v {
		q.Set(key, "1")
	} else {
		q.Set(key, "0")
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GetCollection retrieves a user's game collection. The endpoint is
// asynchronous on the server side, so this polls until the data is ready,
// up to the configured retry budget.
func (c *Client) GetCollection(ctx context.Context, username string, opts CollectionOptions) (*Collection, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}

	body, err := c.getWithPoll(ctx, "/collection", opts.values(username))
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(body)
	if err != nil {
		return nil, err
	}
	root := doc.root()
	if err := checkAPIError(root); err != nil {
		var unknown *UnknownUsernameError
		if errors.As(err, &unknown) {
			return nil, &UnknownUsernameError{Username: username}
		}
		return nil, err
	}
	if root.tag() != "items" {
		return nil, newParseError(fmt.Sprintf("unexpected root element <%s> in collection response", root.tag()), snippet(body), nil)
	}

	elements := root.children("item")
	collection := &Collection{
		Username: username,
		Items:    make([]CollectionItem, 0, len(elements)),
	}
	for _, el := range elements {
		item, err := decodeCollectionItem(el, c.entityMode)
		if err != nil {
			return nil, err
		}
		collection.Items = append(collection.Items, *item)
	}

	return collection, nil
}

// decodeCollectionItem maps one <item> element to a CollectionItem.
// Unknown child elements are ignored for forward compatibility.
func decodeCollectionItem(n *node, mode EntityMode) (*CollectionItem, error) {
	id, err := n.intAttr("objectid")
	if err != nil {
		return nil, err
	}
	collectionID, err := n.optionalIntAttr("collid")
	if err != nil {
		return nil, err
	}

	itemType := ItemTypeBoardGame
	if subtype, ok := n.attr("subtype"); ok {
		itemType = ItemType(subtype)
	}

	nameNode := n.child("name")
	if nameNode == nil {
		return nil, newMissingFieldError(n.tag(), "name")
	}

	year, err := n.childIntText("yearpublished")
	if err != nil {
		return nil, err
	}
	numPlays, err := n.childIntText("numplays")
	if err != nil {
		return nil, err
	}

	statusNode := n.child("status")
	if statusNode == nil {
		return nil, newMissingFieldError(n.tag(), "status")
	}
	status, err := decodeCollectionStatus(statusNode)
	if err != nil {
		return nil, err
	}

	item := &CollectionItem{
		ID:            id,
		CollectionID:  collectionID,
		Type:          itemType,
		Name:          correctEntities(nameNode.text(), mode),
		YearPublished: year,
		Image:         n.childText("image"),
		Thumbnail:     n.childText("thumbnail"),
		NumPlays:      numPlays,
		Comment:       correctEntities(n.childText("comment"), mode),
		Status:        *status,
	}

	if statsNode := n.child("stats"); statsNode != nil {
		stats, rating, err := decodeCollectionStats(statsNode)
		if err != nil {
			return nil, err
		}
		item.Stats = stats
		item.Rating = rating
	}

	return item, nil
}

func decodeCollectionStatus(n *node) (*CollectionStatus, error) {
	status := &CollectionStatus{}

	flags := []struct {
		attr string
		dest *bool
	}{
		{"own", &status.Own},
		{"prevowned", &status.PreviouslyOwned},
		{"fortrade", &status.ForTrade},
		{"want", &status.WantInTrade},
		{"wanttoplay", &status.WantToPlay},
		{"wanttobuy", &status.WantToBuy},
		{"preordered", &status.Preordered},
		{"wishlist", &status.Wishlist},
	}
	for _, f := range flags {
		v, err := n.boolAttr(f.attr)
		if err != nil {
			return nil, err
		}
		*f.dest = v
	}

	if raw, ok := n.attr("wishlistpriority"); ok {
		priority, err := strconv.Atoi(raw)
		if err != nil {
			return nil, newInvalidNumberError(n.tag(), "wishlistpriority", raw)
		}
		if priority < 1 || priority > 5 {
			return nil, newUnexpectedValueError(n.tag(), "wishlistpriority", raw)
		}
		status.WishlistPriority = WishlistPriority(priority)
	}

	if raw, ok := n.attr("lastmodified"); ok && raw != "" {
		t, err := time.Parse(collectionDateFormat, raw)
		if err != nil {
			return nil, newUnexpectedValueError(n.tag(), "lastmodified", raw)
		}
		status.LastModified = t
	}

	return status, nil
}

// decodeCollectionStats maps a <stats> element to CollectionStats plus the
// user's own rating, which lives inside it on the wire but belongs to the
// item.
func decodeCollectionStats(n *node) (*CollectionStats, *float64, error) {
	stats := &CollectionStats{}

	var err error
	if stats.MinPlayers, err = n.optionalIntAttr("minplayers"); err != nil {
		return nil, nil, err
	}
	if stats.MaxPlayers, err = n.optionalIntAttr("maxplayers"); err != nil {
		return nil, nil, err
	}
	minPlaytime, err := n.optionalIntAttr("minplaytime")
	if err != nil {
		return nil, nil, err
	}
	maxPlaytime, err := n.optionalIntAttr("maxplaytime")
	if err != nil {
		return nil, nil, err
	}
	playingTime, err := n.optionalIntAttr("playingtime")
	if err != nil {
		return nil, nil, err
	}
	stats.MinPlaytime = time.Duration(minPlaytime) * time.Minute
	stats.MaxPlaytime = time.Duration(maxPlaytime) * time.Minute
	stats.PlayingTime = time.Duration(playingTime) * time.Minute
	if stats.OwnedBy, err = n.optionalIntAttr("numowned"); err != nil {
		return nil, nil, err
	}

	var userRating *float64
	if ratingNode := n.child("rating"); ratingNode != nil {
		// The user's rating is the value attribute, "N/A" when unrated.
		if raw, ok := ratingNode.attr("value"); ok && raw != "" && raw != "N/A" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, nil, newInvalidNumberError(ratingNode.tag(), "value", raw)
			}
			userRating = &v
		}

		if stats.Average, err = ratingNode.childFloatValue("average"); err != nil {
			return nil, nil, err
		}
		if stats.BayesAverage, err = ratingNode.childFloatValue("bayesaverage"); err != nil {
			return nil, nil, err
		}

		if ranksNode := ratingNode.child("ranks"); ranksNode != nil {
			rank, err := extractBoardGameRank(ranksNode)
			if err != nil {
				return nil, nil, err
			}
			stats.Rank = rank
		}
	}

	return stats, userRating, nil
}

// extractBoardGameRank finds the overall board game rank inside a <ranks>
// element. "Not Ranked" and absence both yield zero.
func extractBoardGameRank(n *node) (int, error) {
	for _, rankNode := range n.children("rank") {
		name, _ := rankNode.attr("name")
		if name != "boardgame" {
			continue
		}
		raw, ok := rankNode.attr("value")
		if !ok || raw == "" || raw == "Not Ranked" {
			return 0, nil
		}
		rank, err := strconv.Atoi(raw)
		if err != nil {
			return 0, newInvalidNumberError(rankNode.tag(), "value", raw)
		}
		return rank, nil
	}
	return 0, nil
}
