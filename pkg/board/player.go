package board

import "fmt"

// Player is the occupant of a cell.
type Player int

const (
	None Player = iota
	One
	Two
)

var playerNames = map[Player]string{
	None: "none",
	One:  "one",
	Two:  "two",
}

func (p Player) String() string {
	if s, ok := playerNames[p]; ok {
		return s
	}
	return fmt.Sprintf("player(%d)", int(p))
}

// Glyph returns the mark drawn for p: a cross for One, a circle for Two, and
// a blank for an empty cell.
func (p Player) Glyph() string {
	switch p {
	case One:
		return "X"
	case Two:
		return "O"
	default:
		return " "
	}
}

// Other returns the opposing player. None has no opponent.
func (p Player) Other() Player {
	switch p {
	case One:
		return Two
	case Two:
		return One
	default:
		return None
	}
}

// MarshalText encodes p as its name.
func (p Player) MarshalText() ([]byte, error) {
	s, ok := playerNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown player %d", int(p))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a player name.
func (p *Player) UnmarshalText(text []byte) error {
	for player, name := range playerNames {
		if name == string(text) {
			*p = player
			return nil
		}
	}
	return fmt.Errorf("unknown player %q", text)
}
