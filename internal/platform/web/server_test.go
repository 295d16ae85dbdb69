package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	_ "github.com/vovakirdan/diamond-mine/internal/games/diamond"
	"github.com/vovakirdan/diamond-mine/internal/storage"
)

func newTestServer(t *testing.T, scores ScoreSource) *Server {
	t.Helper()
	return NewServer(":0", scores, log.New(io.Discard))
}

func seededStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rounds := []storage.Round{
		{GameID: "diamond", Score: 30, Moves: 4, Chains: 5},
		{GameID: "diamond", Score: 90, Moves: 9, Chains: 12},
		{GameID: "diamond", Score: 60, Moves: 7, Chains: 8},
		{GameID: "diamond_blitz", Score: 15, Moves: 2, Chains: 2},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound: %v", err)
		}
	}
	return store
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, seededStore(t))
	rec := get(t, srv.Handler(), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestGamesListsVariantsWithBest(t *testing.T) {
	srv := newTestServer(t, seededStore(t))
	rec := get(t, srv.Handler(), "/api/games")

	var games []GameInfo
	if err := json.NewDecoder(rec.Body).Decode(&games); err != nil {
		t.Fatalf("decode: %v", err)
	}
	best := map[string]int{}
	for _, g := range games {
		best[g.ID] = g.HighScore
	}
	want := map[string]int{"diamond": 90, "diamond_blitz": 15, "diamond_relaxed": 0}
	for id, w := range want {
		if got, ok := best[id]; !ok || got != w {
			t.Errorf("best[%s] = %d (listed %v), want %d", id, got, ok, w)
		}
	}
}

func TestScores(t *testing.T) {
	srv := newTestServer(t, seededStore(t))

	tests := []struct {
		name   string
		target string
		status int
		scores []int
	}{
		{"default limit", "/api/scores/diamond", http.StatusOK, []int{90, 60, 30}},
		{"limit", "/api/scores/diamond?limit=2", http.StatusOK, []int{90, 60}},
		{"no rounds yet", "/api/scores/diamond_relaxed", http.StatusOK, []int{}},
		{"unknown game", "/api/scores/tetris", http.StatusNotFound, nil},
		{"bad limit", "/api/scores/diamond?limit=x", http.StatusBadRequest, nil},
		{"zero limit", "/api/scores/diamond?limit=0", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv.Handler(), tt.target)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.scores == nil {
				return
			}
			var entries []storage.ScoreEntry
			if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if entries == nil {
				t.Fatal("empty list must encode as [] not null")
			}
			if len(entries) != len(tt.scores) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.scores))
			}
			for i, s := range tt.scores {
				if entries[i].Score != s {
					t.Errorf("entry %d score = %d, want %d", i, entries[i].Score, s)
				}
			}
		})
	}
}

func TestStats(t *testing.T) {
	srv := newTestServer(t, seededStore(t))
	rec := get(t, srv.Handler(), "/api/stats")

	var stats map[string]storage.GameStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	d := stats["diamond"]
	if d.GamesCount != 3 || d.HighScore != 90 || d.AvgScore != 60 || d.TotalMoves != 20 {
		t.Errorf("diamond stats = %+v", d)
	}
}

type failingSource struct{}

func (failingSource) TopScores(string, int) ([]storage.ScoreEntry, error) {
	return nil, errors.New("disk gone")
}
func (failingSource) HighScore(string) (int, error) { return 0, errors.New("disk gone") }
func (failingSource) GetAllGamesStats() (map[string]*storage.GameStats, error) {
	return nil, errors.New("disk gone")
}

func TestStoreFailureIs500(t *testing.T) {
	srv := newTestServer(t, failingSource{})
	for _, target := range []string{"/api/games", "/api/scores/diamond", "/api/stats"} {
		if rec := get(t, srv.Handler(), target); rec.Code != http.StatusInternalServerError {
			t.Errorf("%s status = %d, want 500", target, rec.Code)
		}
	}
}

func TestCompression(t *testing.T) {
	srv := newTestServer(t, seededStore(t))

	tests := []struct {
		accept   string
		encoding string
		decode   func(io.Reader) (io.Reader, error)
	}{
		{"gzip", "gzip", func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) }},
		{"zstd, gzip", "zstd", func(r io.Reader) (io.Reader, error) { return zstd.NewReader(r) }},
		{"", "", func(r io.Reader) (io.Reader, error) { return r, nil }},
	}
	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/scores/diamond", nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			if got := rec.Header().Get("Content-Encoding"); got != tt.encoding {
				t.Fatalf("Content-Encoding = %q, want %q", got, tt.encoding)
			}
			body, err := tt.decode(rec.Body)
			if err != nil {
				t.Fatalf("decoder: %v", err)
			}
			var entries []storage.ScoreEntry
			if err := json.NewDecoder(body).Decode(&entries); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(entries) != 3 {
				t.Errorf("got %d entries, want 3", len(entries))
			}
		})
	}
}
