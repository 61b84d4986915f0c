package arnak

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// maxGamesPerRequest is the batch limit the thing endpoint enforces.
const maxGamesPerRequest = 20

// Game holds detailed information about a single game.
type Game struct {
	// ID of the game.
	ID int
	// Type of the item, board game or expansion.
	Type ItemType
	// Name is the game's primary name.
	Name string
	// AlternateNames holds translations and other names for the game.
	AlternateNames []string
	// Description of the game.
	Description string
	// YearPublished is zero when the server omits it.
	YearPublished int
	MinPlayers    int
	MaxPlayers    int
	PlayingTime   time.Duration
	MinPlaytime   time.Duration
	MaxPlaytime   time.Duration
	MinAge        int
	Thumbnail     string
	Image         string
	Designers     []string
	Artists       []string
	Publishers    []string
	Categories    []string
	Mechanics     []string
	// Rating holds the site-wide rating statistics.
	Rating GameRating
}

// GameRating holds the rating statistics for a game.
type GameRating struct {
	UsersRated   int
	Average      float64
	BayesAverage float64
	StdDev       float64
	// Rank is the overall board game rank, zero when not ranked.
	Rank int
	// Weight is the average complexity rating, 1-5.
	Weight float64
	OwnedBy int
}

// GetGame retrieves detailed information about a single game.
func (c *Client) GetGame(ctx context.Context, id int) (*Game, error) {
	if id <= 0 {
		return nil, &NotFoundError{ID: id}
	}

	games, err := c.GetGames(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, &NotFoundError{ID: id}
	}
	return &games[0], nil
}

// GetGames retrieves detailed information about up to twenty games in one
// request.
func (c *Client) GetGames(ctx context.Context, ids []int) ([]Game, error) {
	if len(ids) == 0 {
		return []Game{}, nil
	}
	if len(ids) > maxGamesPerRequest {
		return nil, fmt.Errorf("at most %d games can be requested at once, got %d", maxGamesPerRequest, len(ids))
	}

	q := url.Values{}
	q.Set("id", joinIDs(ids))
	q.Set("stats", "1")

	body, err := c.getOnce(ctx, "/thing", q)
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
		return nil, newParseError(fmt.Sprintf("unexpected root element <%s> in thing response", root.tag()), snippet(body), nil)
	}

	elements := root.children("item")
	games := make([]Game, 0, len(elements))
	for _, el := range elements {
		game, err := decodeGame(el, c.entityMode)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}

	return games, nil
}

// decodeGame maps one <item> element of a thing response to a Game.
func decodeGame(n *node, mode EntityMode) (*Game, error) {
	id, err := n.intAttr("id")
	if err != nil {
		return nil, err
	}

	itemType := ItemTypeBoardGame
	if t, ok := n.attr("type"); ok {
		itemType = ItemType(t)
	}

	game := &Game{
		ID:          id,
		Type:        itemType,
		Description: correctEntities(n.childText("description"), mode),
		Thumbnail:   n.childText("thumbnail"),
		Image:       n.childText("image"),
	}

	for _, nameNode := range n.children("name") {
		value, err := nameNode.requiredAttr("value")
		if err != nil {
			return nil, err
		}
		value = correctEntities(value, mode)
		if nameType, _ := nameNode.attr("type"); nameType == "primary" {
			game.Name = value
		} else {
			game.AlternateNames = append(game.AlternateNames, value)
		}
	}
	if game.Name == "" {
		return nil, newMissingFieldError(n.tag(), "name")
	}

	if game.YearPublished, err = n.childIntValue("yearpublished"); err != nil {
		return nil, err
	}
	if game.MinPlayers, err = n.childIntValue("minplayers"); err != nil {
		return nil, err
	}
	if game.MaxPlayers, err = n.childIntValue("maxplayers"); err != nil {
		return nil, err
	}
	if game.MinAge, err = n.childIntValue("minage"); err != nil {
		return nil, err
	}

	playingTime, err := n.childIntValue("playingtime")
	if err != nil {
		return nil, err
	}
	minPlaytime, err := n.childIntValue("minplaytime")
	if err != nil {
		return nil, err
	}
	maxPlaytime, err := n.childIntValue("maxplaytime")
	if err != nil {
		return nil, err
	}
	game.PlayingTime = time.Duration(playingTime) * time.Minute
	game.MinPlaytime = time.Duration(minPlaytime) * time.Minute
	game.MaxPlaytime = time.Duration(maxPlaytime) * time.Minute

	for _, link := range n.children("link") {
		value, err := link.requiredAttr("value")
		if err != nil {
			return nil, err
		}
		value = correctEntities(value, mode)
		switch linkType, _ := link.attr("type"); linkType {
		case "boardgamedesigner":
			game.Designers = append(game.Designers, value)
		case "boardgameartist":
			game.Artists = append(game.Artists, value)
		case "boardgamepublisher":
			game.Publishers = append(game.Publishers, value)
		case "boardgamecategory":
			game.Categories = append(game.Categories, value)
		case "boardgamemechanic":
			game.Mechanics = append(game.Mechanics, value)
		}
	}

	if statisticsNode := n.child("statistics"); statisticsNode != nil {
		if ratingsNode := statisticsNode.child("ratings"); ratingsNode != nil {
			rating, err := decodeGameRating(ratingsNode)
			if err != nil {
				return nil, err
			}
			game.Rating = *rating
		}
	}

	return game, nil
}

func decodeGameRating(n *node) (*GameRating, error) {
	rating := &GameRating{}

	var err error
	if rating.UsersRated, err = n.childIntValue("usersrated"); err != nil {
		return nil, err
	}
	if rating.Average, err = n.childFloatValue("average"); err != nil {
		return nil, err
	}
	if rating.BayesAverage, err = n.childFloatValue("bayesaverage"); err != nil {
		return nil, err
	}
	if rating.StdDev, err = n.childFloatValue("stddev"); err != nil {
		return nil, err
	}
	if rating.Weight, err = n.childFloatValue("averageweight"); err != nil {
		return nil, err
	}
	if rating.OwnedBy, err = n.childIntValue("owned"); err != nil {
		return nil, err
	}

	if ranksNode := n.child("ranks"); ranksNode != nil {
		rank, err := extractBoardGameRank(ranksNode)
		if err != nil {
			return nil, err
		}
		rating.Rank = rank
	}

	return rating, nil
}
