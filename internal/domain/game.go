package domain

import "time"

// GameType selects the symbol source used when building a solution.
type GameType string

const (
	// GameTypeNumbers pairs distinct numbers drawn from [0,100).
	GameTypeNumbers GameType = "numbers"
	// GameTypeIcons pairs distinct entries of the icon catalog.
	GameTypeIcons GameType = "icons"
)

// Valid reports whether the game type is one of the supported kinds.
func (t GameType) Valid() bool {
	return t == GameTypeNumbers || t == GameTypeIcons
}

// Cell is a single grid position. EmptyCell marks a hidden cell; any
// other value is a revealed symbol: the number itself for numbers games,
// an icon catalog index for icons games.
type Cell int

// EmptyCell is the sentinel for a hidden grid position.
const EmptyCell Cell = -1

const (
	// MinPlayers and MaxPlayers bound the maxPlayers setting of a game.
	MinPlayers = 1
	MaxPlayers = 4
)

// ValidSize reports whether size is a playable grid side length.
func ValidSize(size int) bool {
	return size == 4 || size == 6
}

// Player is one roster entry of a game. Roster order is join order and
// defines turn rotation; entries are only ever appended, trimmed by a
// pre-start leave, or mutated in place.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Active  bool   `json:"active"`
	IsReady bool   `json:"isReady"`
}

// Turn tracks whose turn it is and the 0-2 cells probed so far.
type Turn struct {
	Player    string `json:"player"`
	Selection []int  `json:"selection"`
}

// Game is the persisted state of one match. The game id is assigned by
// the store and lives outside the document, Firestore style.
type Game struct {
	Host        string    `json:"host"`
	MaxPlayers  int       `json:"maxPlayers"`
	GameType    GameType  `json:"gameType"`
	Grid        []Cell    `json:"grid"`
	Players     []Player  `json:"players"`
	CurrentTurn Turn      `json:"currentTurn"`
	Started     bool      `json:"started"`
	Finished    bool      `json:"finished"`
	NextGame    string    `json:"nextGame,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Solution is the hidden pairing grid a game's guesses are checked
// against. It is stored apart from the Game so clients can never read it.
type Solution struct {
	Game string `json:"game"`
	Grid []Cell `json:"grid"`
}

// NewGame builds the initial persisted state for a game: host as sole
// roster entry, turn pointed at the host, nothing selected.
func NewGame(maxPlayers int, gameType GameType, grid []Cell, hostID string, createdAt time.Time) *Game {
	return &Game{
		Host:       hostID,
		MaxPlayers: maxPlayers,
		GameType:   gameType,
		Grid:       grid,
		Players: []Player{
			{
				ID:     hostID,
				Name:   "Player 1",
				Score:  0,
				Active: true,
			},
		},
		CurrentTurn: Turn{Player: hostID, Selection: []int{}},
		CreatedAt:   createdAt,
	}
}

// Size returns the grid side length.
func (g *Game) Size() int {
	size := 0
	for size*size < len(g.Grid) {
		size++
	}
	return size
}

// PlayerIndex returns the roster index of the given player, or -1.
func (g *Game) PlayerIndex(userID string) int {
	for i := range g.Players {
		if g.Players[i].ID == userID {
			return i
		}
	}
	return -1
}

// FindPlayer returns a pointer into the roster for the given player, or
// nil when the player is not in this game.
func (g *Game) FindPlayer(userID string) *Player {
	if i := g.PlayerIndex(userID); i >= 0 {
		return &g.Players[i]
	}
	return nil
}

// ActiveCount returns the number of players still participating.
func (g *Game) ActiveCount() int {
	count := 0
	for i := range g.Players {
		if g.Players[i].Active {
			count++
		}
	}
	return count
}

// NextActivePlayer scans the roster in join order starting just after
// fromID, wrapping around, and returns the id of the first active player
// other than fromID. ok is false when no such player exists.
func (g *Game) NextActivePlayer(fromID string) (id string, ok bool) {
	from := g.PlayerIndex(fromID)
	if from < 0 {
		return "", false
	}
	n := len(g.Players)
	for step := 1; step < n; step++ {
		p := &g.Players[(from+step)%n]
		if p.Active {
			return p.ID, true
		}
	}
	return "", false
}

// AllRevealed reports whether no hidden cell remains.
func (g *Game) AllRevealed() bool {
	for _, c := range g.Grid {
		if c == EmptyCell {
			return false
		}
	}
	return true
}

// AllReady reports whether every roster entry has readied up.
func (g *Game) AllReady() bool {
	for i := range g.Players {
		if !g.Players[i].IsReady {
			return false
		}
	}
	return true
}
