package handlers

import (
	"strconv"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/gesture"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type NewGameDTO struct {
	Difficulty string `schema:"difficulty"`
}

// ParseNewGameDTO returns an empty difficulty when none was requested.
func ParseNewGameDTO(src map[string][]string) (mines.Difficulty, error) {
	var dto NewGameDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return "", err
	}
	if dto.Difficulty == "" {
		return "", nil
	}
	return mines.ParseDifficulty(dto.Difficulty)
}

type Position struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	err := decoder.Decode(&pos, src)
	return pos, err
}

type PressDTO struct {
	X      int    `schema:"x,required"`
	Y      int    `schema:"y,required"`
	Button string `schema:"button"`
	HeldMs int    `schema:"held_ms"`
}

func ParsePressDTO(src map[string][]string) (Position, gesture.Press, error) {
	var dto PressDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return Position{}, gesture.Press{}, err
	}
	return dto.toPress()
}

func (dto PressDTO) toPress() (Position, gesture.Press, error) {
	button, err := gesture.ParseButton(dto.Button)
	if err != nil {
		return Position{}, gesture.Press{}, err
	}
	if dto.HeldMs < 0 {
		return Position{}, gesture.Press{}, ErrBadHeld
	}
	press := gesture.Press{
		Button: button,
		Held:   time.Duration(dto.HeldMs) * time.Millisecond,
	}
	return Position{X: dto.X, Y: dto.Y}, press, nil
}

type DifficultyDTO struct {
	Difficulty mines.Difficulty `json:"difficulty"`
	Title      string           `json:"title"`
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	MineCount  int              `json:"mine_count"`
}

func NewDifficultyDTOs() []DifficultyDTO {
	dtos := make([]DifficultyDTO, 0, len(mines.Difficulties()))
	for _, d := range mines.Difficulties() {
		p := d.Params()
		dtos = append(dtos, DifficultyDTO{
			Difficulty: d,
			Title:      d.Title(),
			Width:      p.Width,
			Height:     p.Height,
			MineCount:  p.MineCount,
		})
	}
	return dtos
}

type TileDTO struct {
	Revealed bool `json:"revealed"`
	Flagged  bool `json:"flagged"`
	Value    *int `json:"value"`
	Mine     bool `json:"mine,omitempty"`
}

// NewTileDTO drops the flag of a revealed tile; flood reveal opens flagged
// tiles without clearing their flag bit.
func NewTileDTO(t mines.Tile, showMine bool) TileDTO {
	dto := TileDTO{
		Revealed: t.IsRevealed,
		Flagged:  t.IsFlagged && !t.IsRevealed,
		Mine:     t.IsMine && (t.IsRevealed || showMine),
	}
	if t.IsRevealed && t.HasValue() {
		v := t.Value
		dto.Value = &v
	}
	return dto
}

type GameSessionDTO struct {
	GameSessionId string           `json:"game_session_id"`
	Difficulty    mines.Difficulty `json:"difficulty"`
	Title         string           `json:"title"`
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	MineCount     int              `json:"mine_count"`
	FlagCount     int              `json:"flag_count"`
	MinesLeft     int              `json:"mines_left"`
	MinesSet      bool             `json:"mines_set"`
	HasFailed     bool             `json:"has_failed"`
	HasWon        bool             `json:"has_won"`
	Phase         string           `json:"phase"`
	Message       string           `json:"message,omitempty"`
	StartedAt     int64            `json:"started_at"`
	Grid          [][]TileDTO      `json:"grid"`
}

func phaseMessage(p mines.Phase) string {
	switch p {
	case mines.Won:
		return "You Won!"
	case mines.Failed:
		return "You Failed!"
	default:
		return ""
	}
}

// NewGameSessionDTO renders the grid as grid[x][y]. Mines stay hidden
// unless revealed, the game is lost, or debug is set.
func NewGameSessionDTO(session *repository.GameSession, debug bool) *GameSessionDTO {
	g := session.State
	showMines := debug || g.HasFailed

	grid := make([][]TileDTO, len(g.Grid))
	for x, column := range g.Grid {
		grid[x] = make([]TileDTO, len(column))
		for y, tile := range column {
			grid[x][y] = NewTileDTO(tile, showMines)
		}
	}

	phase := g.Phase()
	dto := &GameSessionDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionId, 10),
		Difficulty:    g.Difficulty,
		Title:         g.Difficulty.Title(),
		Width:         g.Width,
		Height:        g.Height,
		MineCount:     g.MineCount,
		FlagCount:     g.FlagCount,
		MinesLeft:     g.RemainingMines(),
		MinesSet:      g.MinesSet,
		HasFailed:     g.HasFailed,
		HasWon:        g.HasWon,
		Phase:         phase.String(),
		Message:       phaseMessage(phase),
		StartedAt:     session.StartedAt.UnixMilli(),
		Grid:          grid,
	}
	return dto
}
