package mines

import (
	"fmt"
	"strings"
)

type GameParams struct {
	Width, Height, MineCount int
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

// Validate checks that mine placement terminates for every reveal origin:
// the cells outside the 3x3 exclusion block must outnumber the mines.
func (p GameParams) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("invalid grid size %dx%d", p.Width, p.Height)
	case p.MineCount < 0:
		return fmt.Errorf("negative mine count %d", p.MineCount)
	case p.Width*p.Height-9 <= p.MineCount:
		return fmt.Errorf(
			"not enough room for %d mines on a %dx%d grid",
			p.MineCount, p.Width, p.Height,
		)
	}
	return nil
}

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var presets = map[Difficulty]GameParams{
	Easy:   {Width: 10, Height: 8, MineCount: 10},
	Medium: {Width: 18, Height: 14, MineCount: 40},
	Hard:   {Width: 24, Height: 20, MineCount: 99},
}

func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presets[d]; !ok {
		return "", fmt.Errorf("difficulty must be one of 'easy', 'medium', 'hard'")
	}
	return d, nil
}

func (d Difficulty) Params() GameParams {
	p, ok := presets[d]
	if !ok {
		panic(assertionFailed("unknown difficulty", "difficulty", string(d)))
	}
	return p
}

// Title returns the display name, e.g. "Medium".
func (d Difficulty) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}
