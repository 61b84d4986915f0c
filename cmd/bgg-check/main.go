// Command bgg-check exercises the BGG API client against the live API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MatthewThompson/arnak"
	"github.com/MatthewThompson/arnak/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Error: search query is required")
		fmt.Println("Usage: bgg-check <search-query> [username]")
		os.Exit(1)
	}
	query := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	client := arnak.NewClient(cfg.ClientConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Println("=== Search ===")
	fmt.Printf("Searching for '%s'...\n", query)

	results, err := client.Search(ctx, query, arnak.SearchOptions{})
	if err != nil {
		fmt.Printf("Error searching: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d results:\n\n", len(results.Results))
	var firstGameID int
	for i, result := range results.Results {
		if i >= 10 {
			fmt.Printf("... and %d more results\n", len(results.Results)-10)
			break
		}
		fmt.Printf("  [%d] %s (%d) - Type: %s\n", result.ID, result.Name, result.YearPublished, result.Type)
		if i == 0 {
			firstGameID = result.ID
		}
	}

	if firstGameID > 0 {
		fmt.Println("\n=== Game Details ===")
		fmt.Printf("Getting details for game ID %d...\n", firstGameID)

		game, err := client.GetGame(ctx, firstGameID)
		if err != nil {
			fmt.Printf("Error getting game: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("  Name:        %s\n", game.Name)
		fmt.Printf("  Year:        %d\n", game.YearPublished)
		fmt.Printf("  Players:     %d-%d\n", game.MinPlayers, game.MaxPlayers)
		fmt.Printf("  Time:        %v-%v\n", game.MinPlaytime, game.MaxPlaytime)
		fmt.Printf("  Age:         %d+\n", game.MinAge)
		fmt.Printf("  Rating:      %.2f (%d votes)\n", game.Rating.Average, game.Rating.UsersRated)
		fmt.Printf("  Rank:        #%d\n", game.Rating.Rank)
		fmt.Printf("  Weight:      %.2f/5\n", game.Rating.Weight)
		fmt.Printf("  Designers:   %v\n", game.Designers)
		fmt.Printf("  Categories:  %v\n", game.Categories)
		fmt.Printf("  Mechanics:   %v\n", game.Mechanics)
	}

	fmt.Println("\n=== Hot List ===")
	hotItems, err := client.GetHotList(ctx)
	if err != nil {
		fmt.Printf("Error getting hot list: %v\n", err)
		os.Exit(1)
	}
	for _, item := range hotItems {
		fmt.Printf("  %2d. %s (%d)\n", item.Rank, item.Name, item.YearPublished)
	}

	username := cfg.Collection.DefaultUsername
	if len(os.Args) > 2 {
		username = os.Args[2]
	}
	if username != "" {
		fmt.Println("\n=== Collection ===")
		fmt.Printf("Getting collection for '%s' (this can take a while)...\n", username)

		collection, err := client.GetCollection(ctx, username, arnak.CollectionOptions{
			Own: arnak.Bool(true),
		})
		if err != nil {
			fmt.Printf("Error getting collection: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s owns %d games:\n", collection.Username, len(collection.Items))
		for i, item := range collection.Items {
			if i >= 10 {
				fmt.Printf("... and %d more\n", len(collection.Items)-10)
				break
			}
			fmt.Printf("  [%d] %s (%d plays)\n", item.ID, item.Name, item.NumPlays)
		}
	}

	fmt.Println("\n=== Done ===")
}
