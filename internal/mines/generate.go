package mines

import "math/rand/v2"

// placeMines drops exactly mineCount mines on uniformly random cells, never
// on an existing mine and never within one cell of the reveal origin, then
// fills in the adjacency counts.
//
// panics [AssertionError]
func (g Grid) placeMines(mineCount, originX, originY int, r *rand.Rand) {
	width, height := g.Width(), g.Height()
	if g.freeCells(originX, originY) < mineCount {
		panic(assertionFailed("no room for mines",
			"width", width, "height", height, "mineCount", mineCount,
			"originX", originX, "originY", originY))
	}

	placed := 0
	for placed < mineCount {
		x := r.IntN(width)
		y := r.IntN(height)

		if absDiff(x, originX) <= 1 && absDiff(y, originY) <= 1 {
			continue
		}
		if g[x][y].IsMine {
			continue
		}

		g[x][y].IsMine = true
		placed++
	}

	g.computeValues()
}

func (g Grid) computeValues() {
	for x := range g {
		for y := range g[x] {
			if g[x][y].IsMine {
				g[x][y].Value = NoValue
			} else {
				g[x][y].Value = g.adjacentMines(x, y)
			}
		}
	}
}

// freeCells counts the cells outside the exclusion block around x,y.
func (g Grid) freeCells(x, y int) int {
	excluded := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			excluded += iif(g.inBounds(x+dx, y+dy), 1, 0)
		}
	}
	return g.Width()*g.Height() - excluded
}
