package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// NoValue marks a tile whose adjacency count is undefined: every tile
// before mines are placed, and mine tiles afterwards.
const NoValue = -1

type Tile struct {
	IsMine     bool
	IsFlagged  bool
	IsRevealed bool
	Value      int
}

func newTile() Tile {
	return Tile{Value: NoValue}
}

func (t Tile) HasValue() bool {
	return t.Value != NoValue
}

func (t Tile) String() string {
	switch {
	case t.IsRevealed && t.IsMine:
		return "X"
	case t.IsRevealed && t.Value == 0:
		return "."
	case t.IsRevealed && t.HasValue():
		return strconv.Itoa(t.Value)
	case t.IsFlagged:
		return "F"
	default:
		return "#"
	}
}

// Grid is indexed grid[x][y].
type Grid [][]Tile

func newGrid(width, height int) Grid {
	grid := make(Grid, width)
	for x := range width {
		column := make([]Tile, height)
		for y := range height {
			column[y] = newTile()
		}
		grid[x] = column
	}
	return grid
}

func (g Grid) Width() int {
	return len(g)
}

func (g Grid) Height() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) inBounds(x, y int) bool {
	return 0 <= x && x < g.Width() && 0 <= y && y < g.Height()
}

// neighbors calls fn for every in-bounds cell of the 8-neighborhood of x,y.
func (g Grid) neighbors(x, y int, fn func(nx, ny int)) {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.inBounds(x+dx, y+dy) {
				fn(x+dx, y+dy)
			}
		}
	}
}

func (g Grid) adjacentMines(x, y int) int {
	count := 0
	g.neighbors(x, y, func(nx, ny int) {
		count += iif(g[nx][ny].IsMine, 1, 0)
	})
	return count
}

func (g Grid) clone() Grid {
	c := make(Grid, len(g))
	for x := range g {
		c[x] = append([]Tile(nil), g[x]...)
	}
	return c
}

// ToString renders the player-visible grid, one row per y.
func (g Grid) ToString() string {
	var b strings.Builder
	for y := range g.Height() {
		for x := range g.Width() {
			fmt.Fprint(&b, g[x][y].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
