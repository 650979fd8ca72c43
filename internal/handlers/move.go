package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrNoGame      = errors.New("no game in progress")
	ErrOutOfBounds = errors.New("invalid cell position")
	ErrBadHeld     = errors.New("held_ms must not be negative")
	ErrBadCommand  = errors.New("unknown command")
	ErrBadArgs     = errors.New("invalid number of arguments")
)

// applyMove validates the position and dispatches the move. Once the game
// is over every move is ignored.
func applyMove(
	logger *slog.Logger, move mines.Move, pos Position,
) func(*mines.GameState) error {
	return func(g *mines.GameState) error {
		if !g.PointInBounds(pos.X, pos.Y) {
			return ErrOutOfBounds
		}
		if g.Over() {
			logger.Debug("game is over - ignore move",
				slog.String("move", move.String()),
				slog.String("phase", g.Phase().String()),
			)
			return nil
		}
		g.Apply(move, pos.X, pos.Y)
		if g.Over() {
			logger.Debug("game over", slog.String("phase", g.Phase().String()))
		}
		return nil
	}
}

func reset(d mines.Difficulty) func(*mines.GameState) error {
	return func(g *mines.GameState) error {
		g.Reset(d)
		return nil
	}
}

type wsCommand string

const (
	wsNoop  wsCommand = "g"
	wsNew   wsCommand = "n"
	wsOpen  wsCommand = "o"
	wsFlag  wsCommand = "f"
	wsPress wsCommand = "p"
)

// Maps known commands to the allowed number of arguments
var commandNargs = map[wsCommand][]int{
	wsNoop:  {0},
	wsNew:   {0, 1},
	wsOpen:  {2},
	wsFlag:  {2},
	wsPress: {3, 4},
}

// command is one parsed websocket line: either a reset, a move at pos,
// or a noop.
type command struct {
	name       wsCommand
	difficulty mines.Difficulty
	move       mines.Move
	pos        Position
}

func parseXY(args []string) (pos Position, err error) {
	if pos.X, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if pos.Y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

func parseCommand(line string) (command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return command{name: wsNoop}, nil
	}

	cmd, args := wsCommand(tokens[0]), tokens[1:]
	nargs, ok := commandNargs[cmd]
	if !ok {
		return command{}, ErrBadCommand
	}
	argsOk := false
	for _, n := range nargs {
		argsOk = argsOk || n == len(args)
	}
	if !argsOk {
		return command{}, ErrBadArgs
	}

	c := command{name: cmd}
	switch cmd {
	case wsNoop:
		return c, nil
	case wsNew:
		if len(args) == 1 {
			d, err := mines.ParseDifficulty(args[0])
			if err != nil {
				return command{}, err
			}
			c.difficulty = d
		}
		return c, nil
	}

	pos, err := parseXY(args)
	if err != nil {
		return command{}, err
	}
	c.pos = pos

	switch cmd {
	case wsOpen:
		c.move = mines.Reveal
	case wsFlag:
		c.move = mines.Flag
	case wsPress:
		dto := PressDTO{X: pos.X, Y: pos.Y, Button: args[2]}
		if len(args) == 4 {
			held, err := strconv.Atoi(args[3])
			if err != nil {
				return command{}, fmt.Errorf("fourth argument must be an int")
			}
			dto.HeldMs = held
		}
		_, press, err := dto.toPress()
		if err != nil {
			return command{}, err
		}
		c.move = press.Move()
	}
	return c, nil
}
