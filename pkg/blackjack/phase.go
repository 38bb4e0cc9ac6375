package blackjack

// Phase is the phase of a round
type Phase string

// Phase constants
// A round always moves BETTING -> PLAY -> SETTLEMENT -> BETTING.
const (
	// PhaseBetting is when players join and place bets
	PhaseBetting Phase = "BETTING"

	// PhasePlay is when seats take their turns
	PhasePlay Phase = "PLAY"

	// PhaseSettlement is after the dealer played and bets were paid
	PhaseSettlement Phase = "SETTLEMENT"
)

func (p Phase) String() string {
	return string(p)
}
