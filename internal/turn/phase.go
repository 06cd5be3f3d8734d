// Package turn provides the round phases and the turn-order queue.
package turn

// Phase is the part of a round the game is in.
type Phase int

const (
	// PhaseSpawn opens every round: players place units, then end the phase.
	PhaseSpawn Phase = iota
	// PhaseUnitTurn is one unit's turn; the acting unit is tracked separately.
	PhaseUnitTurn
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSpawn:
		return "spawn"
	case PhaseUnitTurn:
		return "unit_turn"
	default:
		return "unknown"
	}
}
