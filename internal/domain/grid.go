package domain

import (
	"errors"
	"math/rand"
	"time"
)

// NumberSymbolSpace is the candidate pool for numbers games: symbols are
// drawn without replacement from [0,NumberSymbolSpace).
const NumberSymbolSpace = 100

// ErrCatalogExhausted is returned when the icon catalog holds fewer
// distinct icons than the grid needs pairs.
var ErrCatalogExhausted = errors.New("icon catalog too small for grid size")

// Generator produces empty grids and their hidden pair solutions.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator constructs a Generator with the provided rng or a
// time-seeded default.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// NewEmptyGrid returns a size*size grid of hidden cells.
func NewEmptyGrid(size int) []Cell {
	grid := make([]Cell, size*size)
	for i := range grid {
		grid[i] = EmptyCell
	}
	return grid
}

// Solution builds a hidden solution grid for the given size and game
// type: size*size/2 distinct symbols, each placed in exactly two cells
// chosen uniformly among the positions still unfilled. catalogSize is
// the number of distinct icons available and is ignored for numbers
// games.
func (g *Generator) Solution(size int, gameType GameType, catalogSize int) ([]Cell, error) {
	pairs := size * size / 2

	symbols, err := g.drawSymbols(pairs, gameType, catalogSize)
	if err != nil {
		return nil, err
	}

	solution := NewEmptyGrid(size)

	// Open positions shrink as cells are filled so every placement stays
	// uniform over what remains.
	open := make([]int, len(solution))
	for i := range open {
		open[i] = i
	}

	for _, symbol := range symbols {
		for placed := 0; placed < 2; placed++ {
			j := g.rng.Intn(len(open))
			solution[open[j]] = symbol
			open[j] = open[len(open)-1]
			open = open[:len(open)-1]
		}
	}

	return solution, nil
}

// drawSymbols samples count distinct symbols without replacement from
// the pool the game type prescribes.
func (g *Generator) drawSymbols(count int, gameType GameType, catalogSize int) ([]Cell, error) {
	var pool []int
	switch gameType {
	case GameTypeNumbers:
		pool = g.rng.Perm(NumberSymbolSpace)
	case GameTypeIcons:
		if count > catalogSize {
			return nil, ErrCatalogExhausted
		}
		pool = g.rng.Perm(catalogSize)
	default:
		return nil, errors.New("unknown game type: " + string(gameType))
	}

	symbols := make([]Cell, count)
	for i := 0; i < count; i++ {
		symbols[i] = Cell(pool[i])
	}
	return symbols, nil
}
