// Package peer exchanges moves between players over a broadcast channel.
//
// A [Move] is a cell index tagged with the originator's display name. Moves
// travel as small JSON documents over a [Channel]: an in-process [Hub] for
// local play and tests, or a [RedisChannel] for play across machines. A
// [Session] ties a player name to a channel and delivers received moves to a
// handler.
//
// The package carries no game rules. It does not check whose turn it is or
// whether a cell is already taken; that is the caller's concern.
package peer

import (
	"encoding/json"
	"os"

	"github.com/scorpionlabs/tictac/pkg/errors"
)

// Move is a single cell placement sent to peers.
type Move struct {
	Index      int    `json:"index"`
	Originator string `json:"name"`
}

// NewMove returns a move on cell index from the local player.
func NewMove(index int) Move {
	return Move{Index: index, Originator: DefaultName()}
}

// DefaultName returns the host name, or "player" when it is unavailable.
func DefaultName() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "player"
}

// Encode serializes m to JSON.
func Encode(m Move) ([]byte, error) {
	if m.Index < 0 {
		return nil, errors.New(errors.ErrCodeSerialization, "move index %d is negative", m.Index)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "encode move")
	}
	return data, nil
}

// Decode parses a JSON move. Both fields must be present.
func Decode(data []byte) (Move, error) {
	var raw struct {
		Index *int    `json:"index"`
		Name  *string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Move{}, errors.Wrap(errors.ErrCodeSerialization, err, "decode move")
	}
	if raw.Index == nil || raw.Name == nil {
		return Move{}, errors.New(errors.ErrCodeSerialization, "decode move: missing index or name")
	}
	if *raw.Index < 0 {
		return Move{}, errors.New(errors.ErrCodeSerialization, "decode move: index %d is negative", *raw.Index)
	}
	return Move{Index: *raw.Index, Originator: *raw.Name}, nil
}
