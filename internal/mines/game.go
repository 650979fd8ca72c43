package mines

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

type Phase int

const (
	Fresh Phase = iota
	Playing
	Won
	Failed
)

func (p Phase) String() string {
	switch p {
	case Fresh:
		return "fresh"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type Move uint8

const (
	Reveal Move = iota + 1
	Flag
)

func (m Move) String() string {
	switch m {
	case Reveal:
		return "reveal"
	case Flag:
		return "flag"
	default:
		return fmt.Sprintf("Move(%d)", uint8(m))
	}
}

type GameState struct {
	Grid       Grid
	Difficulty Difficulty
	GameParams
	FlagCount                   int
	MinesSet, HasFailed, HasWon bool

	rnd *rand.Rand
}

// NewGame returns a fresh game for preset d. Mines are placed with r on
// the first reveal.
func NewGame(d Difficulty, r *rand.Rand) *GameState {
	state := &GameState{rnd: r}
	state.Reset(d)
	return state
}

// Reset discards the current game and starts a fresh one. An empty
// difficulty keeps the current one.
func (s *GameState) Reset(d Difficulty) {
	if d == "" {
		d = s.Difficulty
	}
	params := d.Params()

	s.Difficulty = d
	s.GameParams = params
	s.Grid = newGrid(params.Width, params.Height)
	s.FlagCount = 0
	s.MinesSet = false
	s.HasFailed = false
	s.HasWon = false
}

func (s *GameState) mustBeInBounds(x, y int) {
	if !s.PointInBounds(x, y) {
		panic(assertionFailed(fmt.Sprintf("point %d:%d out of bounds", x, y),
			"width", s.Width, "height", s.Height))
	}
}

// Reveal opens the tile at x,y. The first reveal of a game places the
// mines around it. Callers must stop dispatching once [GameState.Over]
// reports true.
//
// panics [AssertionError] when x,y is outside the grid
func (s *GameState) Reveal(x, y int) {
	s.mustBeInBounds(x, y)

	tile := &s.Grid[x][y]
	if tile.IsFlagged {
		return
	}

	if !s.MinesSet {
		s.Grid.placeMines(s.MineCount, x, y, s.rnd)
		s.MinesSet = true
	}

	tile.IsRevealed = true
	if tile.IsMine {
		s.HasFailed = true
		return
	}

	if tile.Value == 0 {
		s.floodReveal(x, y)
	}

	s.HasWon = s.RevealedCount() == s.Width*s.Height-s.MineCount
}

// floodReveal opens the neighborhood of a zero tile, recursing into every
// newly opened zero. Flags do not stop the flood.
func (s *GameState) floodReveal(x, y int) {
	s.Grid.neighbors(x, y, func(nx, ny int) {
		tile := &s.Grid[nx][ny]
		if tile.IsRevealed || tile.IsMine {
			return
		}
		tile.IsRevealed = true
		if tile.Value == 0 {
			s.floodReveal(nx, ny)
		}
	})
}

// ToggleFlag flips the flag on an unrevealed tile.
//
// panics [AssertionError] when x,y is outside the grid
func (s *GameState) ToggleFlag(x, y int) {
	s.mustBeInBounds(x, y)

	tile := &s.Grid[x][y]
	if tile.IsRevealed {
		return
	}

	tile.IsFlagged = !tile.IsFlagged
	s.FlagCount += iif(tile.IsFlagged, 1, -1)
}

func (s *GameState) Apply(m Move, x, y int) {
	switch m {
	case Reveal:
		s.Reveal(x, y)
	case Flag:
		s.ToggleFlag(x, y)
	default:
		panic(assertionFailed("unknown move", "move", m.String()))
	}
}

func (s *GameState) RevealedCount() int {
	count := 0
	for x := range s.Grid {
		for y := range s.Grid[x] {
			count += iif(s.Grid[x][y].IsRevealed, 1, 0)
		}
	}
	return count
}

// RemainingMines is the counter shown to the player. It goes negative when
// the player places more flags than there are mines.
func (s *GameState) RemainingMines() int {
	return s.MineCount - s.FlagCount
}

func (s *GameState) Phase() Phase {
	switch {
	case s.HasFailed:
		return Failed
	case s.HasWon:
		return Won
	case s.MinesSet:
		return Playing
	default:
		return Fresh
	}
}

func (s *GameState) Over() bool {
	return s.HasFailed || s.HasWon
}

// Snapshot returns a deep copy of the game for rendering. Snapshots are
// read-only: they carry no random source for mine placement.
func (s *GameState) Snapshot() *GameState {
	c := *s
	c.Grid = s.Grid.clone()
	c.rnd = nil
	return &c
}

func (s *GameState) String() string {
	return s.Grid.ToString()
}
