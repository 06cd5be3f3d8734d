// Package entity provides the participants of a match: players, their
// units, the per-turn action budget and the roster that owns unit state.
package entity

import "fmt"

// PlayerID identifies a participant. It is unique within a game.
type PlayerID uint32

// String returns "P<n>".
func (id PlayerID) String() string {
	return fmt.Sprintf("P%d", uint32(id))
}

// Player is a participant in a game. Players are fixed at setup.
type Player struct {
	ID   PlayerID `json:"id" msgpack:"id" yaml:"id"`
	Name string   `json:"name" msgpack:"name" yaml:"name"`
}
