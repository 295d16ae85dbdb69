package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Round{
		{GameID: "diamond", Score: 100, Moves: 12, Chains: 9},
		{GameID: "diamond", Score: 50, Moves: 8, Chains: 4},
		{GameID: "diamond", Score: 200, Moves: 20, Chains: 18},
		{GameID: "diamond_blitz", Score: 500},
	} {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	scores, err := store.TopScores("diamond", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %+v", scores)
	}
	if scores[0].Moves != 20 || scores[0].Chains != 18 {
		t.Errorf("Round details lost: %+v", scores[0])
	}

	blitz, err := store.TopScores("diamond_blitz", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(blitz) != 1 {
		t.Errorf("Expected 1 blitz score, got %d", len(blitz))
	}
}

func TestStoreRejectsEmptyGameID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("", 10); err == nil {
		t.Error("expected error for empty game id")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentScores(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("diamond", 10)
	store.SaveScore("diamond_relaxed", 30)
	store.SaveScore("diamond", 20)

	recent, err := store.RecentScores(2)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 20 || recent[1].GameID != "diamond_relaxed" {
		t.Errorf("RecentScores() = %+v", recent)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("diamond")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("diamond", 100)
	store.SaveScore("diamond", 300)
	store.SaveScore("diamond", 200)

	high, err = store.HighScore("diamond")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("diamond", 100)
	store.SaveScore("diamond", 200)
	store.SaveScore("diamond_blitz", 300)

	if err := store.ClearScores("diamond"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("diamond", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("diamond_blitz", 10); len(scores) != 1 {
		t.Errorf("Blitz scores should not be affected by clearing diamond")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("diamond")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRound(Round{GameID: "diamond", Score: 10, Moves: 3})
	store.SaveRound(Round{GameID: "diamond", Score: 30, Moves: 5})
	store.SaveRound(Round{GameID: "diamond_relaxed", Score: 7, Moves: 1})

	stats, err := store.GetGameStats("diamond")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.TotalMoves != 8 {
		t.Errorf("stats = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["diamond_relaxed"].TotalScore != 7 {
		t.Errorf("all stats = %+v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
