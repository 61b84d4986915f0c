package arnak

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetGame(t *testing.T) {
	testData := readFixture(t, "thing_response.xml")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/thing" {
			t.Errorf("expected path '/thing', got '%s'", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "174430" {
			t.Errorf("expected id '174430', got '%s'", got)
		}
		if got := r.URL.Query().Get("stats"); got != "1" {
			t.Errorf("expected stats '1', got '%s'", got)
		}

		w.WriteHeader(http.StatusOK)
		w.Write(testData)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	game, err := client.GetGame(context.Background(), 174430)
	if err != nil {
		t.Fatalf("GetGame() error = %v", err)
	}

	if game.ID != 174430 {
		t.Errorf("ID = %d, want 174430", game.ID)
	}
	if game.Type != ItemTypeBoardGame {
		t.Errorf("Type = %q, want boardgame", game.Type)
	}
	if game.Name != "Gloomhaven" {
		t.Errorf("Name = %q, want Gloomhaven", game.Name)
	}
	if len(game.AlternateNames) != 1 || game.AlternateNames[0] != "幽港迷城" {
		t.Errorf("AlternateNames = %v", game.AlternateNames)
	}
	// The description uses the nonstandard mdash entity.
	wantDescription := "Gloomhaven is a game of Euro-inspired tactical combat — players will fight through a campaign of scenarios."
	if game.Description != wantDescription {
		t.Errorf("Description = %q, want %q", game.Description, wantDescription)
	}
	if game.YearPublished != 2017 {
		t.Errorf("YearPublished = %d, want 2017", game.YearPublished)
	}
	if game.MinPlayers != 1 || game.MaxPlayers != 4 {
		t.Errorf("players = %d-%d, want 1-4", game.MinPlayers, game.MaxPlayers)
	}
	if game.PlayingTime != 2*time.Hour {
		t.Errorf("PlayingTime = %v, want 2h", game.PlayingTime)
	}
	if game.MinPlaytime != time.Hour {
		t.Errorf("MinPlaytime = %v, want 1h", game.MinPlaytime)
	}
	if game.MaxPlaytime != 2*time.Hour {
		t.Errorf("MaxPlaytime = %v, want 2h", game.MaxPlaytime)
	}
	if game.MinAge != 14 {
		t.Errorf("MinAge = %d, want 14", game.MinAge)
	}

	if len(game.Designers) != 1 || game.Designers[0] != "Isaac Childres" {
		t.Errorf("Designers = %v", game.Designers)
	}
	if len(game.Artists) != 1 || game.Artists[0] != "Alexandr Elichev" {
		t.Errorf("Artists = %v", game.Artists)
	}
	if len(game.Publishers) != 1 || game.Publishers[0] != "Cephalofair Games" {
		t.Errorf("Publishers = %v", game.Publishers)
	}
	if len(game.Categories) != 1 || game.Categories[0] != "Adventure" {
		t.Errorf("Categories = %v", game.Categories)
	}
	if len(game.Mechanics) != 1 || game.Mechanics[0] != "Campaign / Battle Card Driven" {
		t.Errorf("Mechanics = %v", game.Mechanics)
	}

	if game.Rating.UsersRated != 62109 {
		t.Errorf("UsersRated = %d, want 62109", game.Rating.UsersRated)
	}
	if game.Rating.Average != 8.61 {
		t.Errorf("Average = %v, want 8.61", game.Rating.Average)
	}
	if game.Rating.BayesAverage != 8.42 {
		t.Errorf("BayesAverage = %v, want 8.42", game.Rating.BayesAverage)
	}
	if game.Rating.StdDev != 1.58 {
		t.Errorf("StdDev = %v, want 1.58", game.Rating.StdDev)
	}
	if game.Rating.Rank != 3 {
		t.Errorf("Rank = %d, want 3", game.Rating.Rank)
	}
	if game.Rating.Weight != 3.91 {
		t.Errorf("Weight = %v, want 3.91", game.Rating.Weight)
	}
	if game.Rating.OwnedBy != 98754 {
		t.Errorf("OwnedBy = %d, want 98754", game.Rating.OwnedBy)
	}
}

func TestGetGames_BatchLimit(t *testing.T) {
	client := NewClient(Config{})

	ids := make([]int, 21)
	for i := range ids {
		ids[i] = i + 1
	}

	_, err := client.GetGames(context.Background(), ids)
	if err == nil {
		t.Error("expected error for more than 20 ids")
	}
}

func TestGetGames_NoIDs(t *testing.T) {
	client := NewClient(Config{})

	games, err := client.GetGames(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetGames() error = %v", err)
	}
	if len(games) != 0 {
		t.Errorf("expected 0 games, got %d", len(games))
	}
}

func TestGetGame_NotFound(t *testing.T) {
	testData := readFixture(t, "thing_empty.xml")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(testData)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	_, err := client.GetGame(context.Background(), 999999)
	if err == nil {
		t.Fatal("expected error for unknown game")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if notFound.ID != 999999 {
		t.Errorf("ID = %d, want 999999", notFound.ID)
	}
}

func TestGetGame_InvalidID(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.GetGame(context.Background(), 0)
	if err == nil {
		t.Fatal("expected error for non-positive id")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}
