package mines

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	m.Run()
}

type point struct{ x, y int }

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// layout builds a game with mines already placed at the given points.
func layout(width, height int, mines ...point) *GameState {
	s := &GameState{
		GameParams: GameParams{Width: width, Height: height, MineCount: len(mines)},
		Grid:       newGrid(width, height),
		MinesSet:   true,
	}
	for _, m := range mines {
		s.Grid[m.x][m.y].IsMine = true
	}
	s.Grid.computeValues()
	return s
}

func countMines(g Grid) int {
	n := 0
	for x := range g {
		for y := range g[x] {
			n += iif(g[x][y].IsMine, 1, 0)
		}
	}
	return n
}

func TestReset(t *testing.T) {
	t.Parallel()

	for _, d := range Difficulties() {
		t.Run(string(d), func(t *testing.T) {
			t.Parallel()
			s := NewGame(d, newRand())
			p := d.Params()

			require.Equal(t, p.Width, s.Grid.Width())
			require.Equal(t, p.Height, s.Grid.Height())
			assert.Equal(t, p, s.GameParams)
			assert.Equal(t, d, s.Difficulty)
			assert.Zero(t, s.FlagCount)
			assert.False(t, s.MinesSet)
			assert.False(t, s.HasFailed)
			assert.False(t, s.HasWon)
			assert.Equal(t, Fresh, s.Phase())

			for x := range s.Grid {
				for y, tile := range s.Grid[x] {
					assert.Equal(t, newTile(), tile, "tile %d:%d", x, y)
				}
			}
		})
	}
}

func TestResetKeepsDifficulty(t *testing.T) {
	s := NewGame(Hard, newRand())
	s.Reveal(5, 5)
	s.ToggleFlag(0, 0)

	s.Reset("")

	assert.Equal(t, Hard, s.Difficulty)
	assert.Equal(t, Hard.Params(), s.GameParams)
	assert.Zero(t, s.FlagCount)
	assert.Zero(t, countMines(s.Grid))
	assert.Equal(t, Fresh, s.Phase())

	s.Reset(Easy)
	assert.Equal(t, Easy, s.Difficulty)
	assert.Equal(t, 10, s.Grid.Width())
	assert.Equal(t, 8, s.Grid.Height())
}

func TestFirstRevealPlacesMines(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	for _, d := range Difficulties() {
		t.Run(string(d), func(t *testing.T) {
			t.Parallel()
			p := d.Params()
			r := newRand()
			for sx := range p.Width {
				for sy := range p.Height {
					s := NewGame(d, r)
					s.Reveal(sx, sy)

					require.True(t, s.MinesSet)
					require.False(t, s.HasFailed, "%s @ %d:%d", d, sx, sy)
					require.Equal(t, p.MineCount, countMines(s.Grid), "%s @ %d:%d", d, sx, sy)

					for dx := -1; dx <= 1; dx++ {
						for dy := -1; dy <= 1; dy++ {
							if s.Grid.inBounds(sx+dx, sy+dy) {
								require.False(t, s.Grid[sx+dx][sy+dy].IsMine,
									"mine next to origin %d:%d", sx, sy)
							}
						}
					}
				}
			}
		})
	}
}

func TestValuesAfterPlacement(t *testing.T) {
	s := NewGame(Medium, rand.New(rand.NewPCG(7, 11)))
	s.Reveal(9, 7)

	for x := range s.Grid {
		for y, tile := range s.Grid[x] {
			if tile.IsMine {
				assert.Equal(t, NoValue, tile.Value)
				assert.False(t, tile.HasValue())
				continue
			}
			want := 0
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					nx, ny := x+dx, y+dy
					if (dx != 0 || dy != 0) &&
						0 <= nx && nx < s.Width && 0 <= ny && ny < s.Height &&
						s.Grid[nx][ny].IsMine {
						want++
					}
				}
			}
			assert.Equal(t, want, tile.Value, "tile %d:%d", x, y)
		}
	}
}

func TestRevealMine(t *testing.T) {
	s := layout(4, 4, point{3, 3})

	s.Reveal(3, 3)

	assert.True(t, s.HasFailed)
	assert.False(t, s.HasWon)
	assert.True(t, s.Over())
	assert.Equal(t, Failed, s.Phase())
	assert.Equal(t, 1, s.RevealedCount())
}

func TestFloodReveal(t *testing.T) {
	t.Run("bounded region", func(t *testing.T) {
		s := layout(5, 3, point{2, 0}, point{2, 1}, point{2, 2})

		s.Reveal(0, 1)

		for x := range s.Grid {
			for y, tile := range s.Grid[x] {
				assert.Equal(t, x < 2, tile.IsRevealed, "tile %d:%d", x, y)
			}
		}
		assert.Equal(t, 2, s.Grid[1][0].Value)
		assert.Equal(t, 3, s.Grid[1][1].Value)
		assert.False(t, s.HasWon)
		assert.False(t, s.HasFailed)
		assert.Equal(t, Playing, s.Phase())
	})

	t.Run("whole board", func(t *testing.T) {
		s := layout(5, 5, point{4, 4})

		s.Reveal(0, 0)

		assert.Equal(t, 24, s.RevealedCount())
		assert.False(t, s.Grid[4][4].IsRevealed)
		assert.True(t, s.HasWon)
		assert.Equal(t, Won, s.Phase())
	})

	t.Run("nonzero origin does not flood", func(t *testing.T) {
		s := layout(5, 5, point{4, 4})

		s.Reveal(3, 3)

		assert.Equal(t, 1, s.RevealedCount())
		assert.Equal(t, 1, s.Grid[3][3].Value)
	})

	t.Run("flood overrides flags", func(t *testing.T) {
		s := layout(5, 5, point{4, 4})
		s.ToggleFlag(1, 1)

		s.Reveal(0, 0)

		tile := s.Grid[1][1]
		assert.True(t, tile.IsRevealed)
		assert.True(t, tile.IsFlagged)
		assert.Equal(t, 1, s.FlagCount)
	})
}

func TestWinCondition(t *testing.T) {
	s := layout(3, 1, point{2, 0})

	s.Reveal(1, 0)
	assert.False(t, s.HasWon)
	assert.Equal(t, 1, s.RevealedCount())

	s.Reveal(0, 0)
	assert.True(t, s.HasWon)
	assert.False(t, s.HasFailed)
	assert.False(t, s.Grid[2][0].IsRevealed)
}

func TestToggleFlag(t *testing.T) {
	s := NewGame(Easy, newRand())

	s.ToggleFlag(2, 3)
	assert.True(t, s.Grid[2][3].IsFlagged)
	assert.Equal(t, 1, s.FlagCount)
	assert.Equal(t, 9, s.RemainingMines())

	s.ToggleFlag(2, 3)
	assert.False(t, s.Grid[2][3].IsFlagged)
	assert.Zero(t, s.FlagCount)
	assert.Equal(t, 10, s.RemainingMines())
}

func TestToggleFlagRevealed(t *testing.T) {
	s := layout(5, 5, point{4, 4})
	s.Reveal(3, 3)

	s.ToggleFlag(3, 3)

	assert.False(t, s.Grid[3][3].IsFlagged)
	assert.Zero(t, s.FlagCount)
}

func TestRemainingMinesGoesNegative(t *testing.T) {
	s := layout(4, 4, point{0, 0})
	s.ToggleFlag(1, 1)
	s.ToggleFlag(2, 2)
	s.ToggleFlag(3, 3)

	assert.Equal(t, -2, s.RemainingMines())
}

func TestRevealFlagged(t *testing.T) {
	s := NewGame(Easy, newRand())
	s.ToggleFlag(3, 3)
	before := s.Snapshot()

	s.Reveal(3, 3)

	assert.Equal(t, before, s.Snapshot())
	assert.False(t, s.Grid[3][3].IsRevealed)
	assert.False(t, s.HasFailed)
	assert.False(t, s.HasWon)
	assert.False(t, s.MinesSet)

	s.ToggleFlag(3, 3)
	s.Reveal(3, 3)
	assert.True(t, s.MinesSet)
	assert.Equal(t, 10, countMines(s.Grid))
}

func TestEasyEndToEnd(t *testing.T) {
	s := NewGame(Easy, rand.New(rand.NewPCG(42, 42)))
	require.Equal(t, 10, s.Grid.Width())
	require.Equal(t, 8, s.Grid.Height())
	require.Equal(t, 10, s.MineCount)

	s.Reveal(0, 0)

	assert.Equal(t, 10, countMines(s.Grid))
	for _, p := range []point{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		assert.False(t, s.Grid[p.x][p.y].IsMine)
	}
	require.Equal(t, 0, s.Grid[0][0].Value)
	assert.Greater(t, s.RevealedCount(), 1)
	for _, p := range []point{{0, 1}, {1, 0}, {1, 1}} {
		assert.True(t, s.Grid[p.x][p.y].IsRevealed)
	}
}

func TestPlayUntilOver(t *testing.T) {
	for seed := range uint64(20) {
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			s := NewGame(Easy, rand.New(rand.NewPCG(seed, seed)))
			s.Reveal(5, 4)
			for x := range s.Grid {
				for y := range s.Grid[x] {
					if s.Over() {
						break
					}
					if !s.Grid[x][y].IsMine {
						s.Reveal(x, y)
					}
				}
			}
			assert.True(t, s.HasWon)
			assert.False(t, s.HasFailed)
			assert.Equal(t, s.Width*s.Height-s.MineCount, s.RevealedCount())
		})
	}
}

func TestOutOfBoundsPanics(t *testing.T) {
	s := NewGame(Easy, newRand())

	assert.PanicsWithValue(t,
		AssertionError{"point -1:0 out of bounds"},
		func() { s.Reveal(-1, 0) })
	assert.Panics(t, func() { s.Reveal(10, 0) })
	assert.Panics(t, func() { s.ToggleFlag(0, 8) })
	assert.Zero(t, s.RevealedCount())
}

func TestApply(t *testing.T) {
	s := layout(5, 5, point{4, 4})

	s.Apply(Flag, 0, 0)
	assert.True(t, s.Grid[0][0].IsFlagged)

	s.Apply(Reveal, 3, 3)
	assert.True(t, s.Grid[3][3].IsRevealed)

	assert.Panics(t, func() { s.Apply(Move(0), 1, 1) })
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewGame(Easy, newRand())
	snap := s.Snapshot()

	s.ToggleFlag(1, 1)

	assert.False(t, snap.Grid[1][1].IsFlagged)
	assert.Zero(t, snap.FlagCount)
}

func TestString(t *testing.T) {
	s := layout(3, 2, point{2, 1})
	s.Reveal(0, 0)
	s.ToggleFlag(2, 1)

	assert.Equal(t, ". 1 # \n. 1 F \n", s.String())
}
