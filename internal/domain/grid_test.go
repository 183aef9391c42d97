package domain

import (
	"math/rand"
	"testing"
)

func TestNewEmptyGrid(t *testing.T) {
	for _, size := range []int{4, 6} {
		grid := NewEmptyGrid(size)
		if len(grid) != size*size {
			t.Fatalf("grid length = %d, want %d", len(grid), size*size)
		}
		for i, c := range grid {
			if c != EmptyCell {
				t.Fatalf("cell %d = %d, want EmptyCell", i, c)
			}
		}
	}
}

func TestSolutionInvariants(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		gameType    GameType
		catalogSize int
	}{
		{name: "numbers 4", size: 4, gameType: GameTypeNumbers},
		{name: "numbers 6", size: 6, gameType: GameTypeNumbers},
		{name: "icons 4", size: 4, gameType: GameTypeIcons, catalogSize: 18},
		{name: "icons 6", size: 6, gameType: GameTypeIcons, catalogSize: 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(rand.New(rand.NewSource(7)))
			solution, err := gen.Solution(tt.size, tt.gameType, tt.catalogSize)
			if err != nil {
				t.Fatalf("Solution() error: %v", err)
			}
			if len(solution) != tt.size*tt.size {
				t.Fatalf("solution length = %d, want %d", len(solution), tt.size*tt.size)
			}

			counts := make(map[Cell]int)
			for i, c := range solution {
				if c == EmptyCell {
					t.Fatalf("cell %d left empty", i)
				}
				if tt.gameType == GameTypeNumbers && (c < 0 || int(c) >= NumberSymbolSpace) {
					t.Fatalf("number symbol %d out of range", c)
				}
				if tt.gameType == GameTypeIcons && int(c) >= tt.catalogSize {
					t.Fatalf("icon index %d beyond catalog", c)
				}
				counts[c]++
			}
			if len(counts) != tt.size*tt.size/2 {
				t.Fatalf("distinct symbols = %d, want %d", len(counts), tt.size*tt.size/2)
			}
			for symbol, n := range counts {
				if n != 2 {
					t.Fatalf("symbol %d appears %d times, want 2", symbol, n)
				}
			}
		})
	}
}

func TestSolutionCatalogExhausted(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(1)))

	// Size 6 needs 18 pairs; one icon short must fail.
	if _, err := gen.Solution(6, GameTypeIcons, 17); err != ErrCatalogExhausted {
		t.Fatalf("Solution() error = %v, want ErrCatalogExhausted", err)
	}
	if _, err := gen.Solution(6, GameTypeIcons, 18); err != nil {
		t.Fatalf("catalog of 18 should cover size 6: %v", err)
	}
}

func TestSolutionUnknownGameType(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(1)))
	if _, err := gen.Solution(4, GameType("words"), 0); err == nil {
		t.Fatalf("expected error for unknown game type")
	}
}
