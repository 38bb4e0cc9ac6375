package blackjack

import "github.com/Hnato/JBH-Blackjack-LAN/pkg/deck"

// Snapshot is an immutable projection of the table sent to every viewer
type Snapshot struct {
	Version    int64           `json:"version"`
	Phase      Phase           `json:"phase"`
	ShoeSize   int             `json:"shoeSize"`
	Dealer     *DealerSnapshot `json:"dealer"`
	Seats      []*SeatSnapshot `json:"seats"`
	ActiveSeat *int            `json:"activeSeat"`
	AdminSeat  *int            `json:"adminSeat"`
	Finished   bool            `json:"finished"`
	Log        []*LogMessage   `json:"log"`
}

// DealerSnapshot is the dealer's visible hand
// While seats are still playing only the first card is shown and Hidden counts the rest.
type DealerSnapshot struct {
	Hand   deck.Hand `json:"hand"`
	Hidden int       `json:"hidden"`
	Score  int       `json:"score"`
}

// SeatSnapshot is an occupied seat
type SeatSnapshot struct {
	Identity string    `json:"identity"`
	Name     string    `json:"name"`
	Seat     int       `json:"seat"`
	Hand     deck.Hand `json:"hand"`
	Stood    bool      `json:"stood"`
	Finished bool      `json:"finished"`
	Money    int       `json:"money"`
	Bet      int       `json:"bet"`
	Score    int       `json:"score"`
	Outcome  Outcome   `json:"outcome,omitempty"`
}

// SeatByIdentity returns the seat held by identity, or nil
func (s *Snapshot) SeatByIdentity(identity string) *SeatSnapshot {
	for _, seat := range s.Seats {
		if seat.Identity == identity {
			return seat
		}
	}

	return nil
}

// snapshot projects the table
// NOTE: must only be called while holding the table lock
func (t *Table) snapshot() *Snapshot {
	seats := make([]*SeatSnapshot, 0, len(t.seats))
	for _, s := range t.occupied() {
		seats = append(seats, &SeatSnapshot{
			Identity: s.Identity,
			Name:     s.Name,
			Seat:     s.Index,
			Hand:     s.Hand.Clone(),
			Stood:    s.Stood,
			Finished: s.Finished,
			Money:    s.Money,
			Bet:      s.Bet,
			Score:    Score(s.Hand),
			Outcome:  s.Outcome,
		})
	}

	var activeSeat, adminSeat *int
	if t.active != nil {
		index := t.active.Index
		activeSeat = &index
	}

	if s, found := t.identities[t.admin]; found {
		index := s.Index
		adminSeat = &index
	}

	logMessages := make([]*LogMessage, len(t.logMessages))
	copy(logMessages, t.logMessages)

	return &Snapshot{
		Version:    t.version,
		Phase:      t.phase,
		ShoeSize:   t.shoe.CardsLeft(),
		Dealer:     t.dealerSnapshot(),
		Seats:      seats,
		ActiveSeat: activeSeat,
		AdminSeat:  adminSeat,
		Finished:   t.finished,
		Log:        logMessages,
	}
}

// dealerSnapshot hides the hole card until the round is finished
func (t *Table) dealerSnapshot() *DealerSnapshot {
	visible := t.dealer.Clone()
	hidden := 0
	if t.phase == PhasePlay && !t.finished && len(visible) > 1 {
		hidden = len(visible) - 1
		visible = visible[:1]
	}

	return &DealerSnapshot{
		Hand:   visible,
		Hidden: hidden,
		Score:  Score(visible),
	}
}
