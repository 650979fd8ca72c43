// Package gesture maps pointer input on a tile to an engine move.
//
// A short primary press reveals. A secondary press, or a primary press
// held for at least [LongPress], toggles the flag. This is how touch
// screens, which have no secondary button, place flags.
package gesture

import (
	"fmt"
	"strings"
	"time"

	"github.com/vancomm/minesweeper/internal/mines"
)

const LongPress = 300 * time.Millisecond

type Button uint8

const (
	Primary Button = iota
	Secondary
)

func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return fmt.Sprintf("Button(%d)", uint8(b))
	}
}

var ErrBadButton = fmt.Errorf("button must be one of 'primary', 'secondary'")

// ParseButton accepts the button names and the DOM MouseEvent.button
// numbers for the left and right buttons.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "left", "0", "":
		return Primary, nil
	case "secondary", "right", "2":
		return Secondary, nil
	default:
		return 0, ErrBadButton
	}
}

type Press struct {
	Button Button
	Held   time.Duration
}

func (p Press) Move() mines.Move {
	if p.Button == Secondary || p.Held >= LongPress {
		return mines.Flag
	}
	return mines.Reveal
}
