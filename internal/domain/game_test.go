package domain

import (
	"testing"
	"time"
)

func TestNewGame(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	game := NewGame(3, GameTypeNumbers, NewEmptyGrid(4), "host-1", created)

	if game.Started || game.Finished {
		t.Fatalf("new game should be neither started nor finished")
	}
	if game.Host != "host-1" {
		t.Fatalf("host = %q, want host-1", game.Host)
	}
	if len(game.Players) != 1 {
		t.Fatalf("players = %d, want 1", len(game.Players))
	}
	p := game.Players[0]
	if p.ID != "host-1" || p.Name != "Player 1" || p.Score != 0 || !p.Active || p.IsReady {
		t.Fatalf("unexpected host entry: %+v", p)
	}
	if game.CurrentTurn.Player != "host-1" || len(game.CurrentTurn.Selection) != 0 {
		t.Fatalf("unexpected initial turn: %+v", game.CurrentTurn)
	}
	if !game.CreatedAt.Equal(created) {
		t.Fatalf("createdAt = %v, want %v", game.CreatedAt, created)
	}
	if len(game.Grid) != 16 {
		t.Fatalf("grid length = %d, want 16", len(game.Grid))
	}
}

func TestGameSize(t *testing.T) {
	for _, size := range []int{4, 6} {
		game := &Game{Grid: NewEmptyGrid(size)}
		if got := game.Size(); got != size {
			t.Fatalf("Size() = %d, want %d", got, size)
		}
	}
}

func TestNextActivePlayer(t *testing.T) {
	roster := []Player{
		{ID: "a", Active: true},
		{ID: "b", Active: true},
		{ID: "c", Active: false},
		{ID: "d", Active: true},
	}

	tests := []struct {
		name   string
		from   string
		want   string
		wantOK bool
	}{
		{name: "next in order", from: "a", want: "b", wantOK: true},
		{name: "skips inactive", from: "b", want: "d", wantOK: true},
		{name: "wraps around", from: "d", want: "a", wantOK: true},
		{name: "unknown player", from: "x", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &Game{Players: append([]Player{}, roster...)}
			got, ok := game.NextActivePlayer(tt.from)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("NextActivePlayer(%q) = %q, %v, want %q, %v", tt.from, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	t.Run("no other active player", func(t *testing.T) {
		game := &Game{Players: []Player{
			{ID: "a", Active: true},
			{ID: "b", Active: false},
		}}
		if _, ok := game.NextActivePlayer("a"); ok {
			t.Fatalf("expected no next player when all others inactive")
		}
	})
}

func TestActiveCountAndAllReady(t *testing.T) {
	game := &Game{Players: []Player{
		{ID: "a", Active: true, IsReady: true},
		{ID: "b", Active: false, IsReady: true},
		{ID: "c", Active: true},
	}}
	if got := game.ActiveCount(); got != 2 {
		t.Fatalf("ActiveCount() = %d, want 2", got)
	}
	if game.AllReady() {
		t.Fatalf("AllReady() should be false while c is not ready")
	}
	game.Players[2].IsReady = true
	if !game.AllReady() {
		t.Fatalf("AllReady() should be true once every player readied up")
	}
}

func TestAllRevealed(t *testing.T) {
	game := &Game{Grid: []Cell{1, 1, EmptyCell, 2}}
	if game.AllRevealed() {
		t.Fatalf("grid with hidden cell reported as revealed")
	}
	game.Grid[2] = 2
	if !game.AllRevealed() {
		t.Fatalf("fully revealed grid not detected")
	}
}

func TestFindPlayerReturnsRosterPointer(t *testing.T) {
	game := &Game{Players: []Player{{ID: "a"}, {ID: "b"}}}
	p := game.FindPlayer("b")
	if p == nil {
		t.Fatalf("player b not found")
	}
	p.Score = 3
	if game.Players[1].Score != 3 {
		t.Fatalf("FindPlayer should alias the roster entry")
	}
	if game.FindPlayer("z") != nil {
		t.Fatalf("unknown player should yield nil")
	}
}
