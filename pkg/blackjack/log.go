package blackjack

import (
	"fmt"
	"time"

	"github.com/Hnato/JBH-Blackjack-LAN/pkg/deck"
	"github.com/google/uuid"
)

// logMessageLimit is how many log messages the table keeps
const logMessageLimit = 25

// LogMessage is a line in the table's game log
// If Seats is empty, it's a general statement about the table
type LogMessage struct {
	UUID    string      `json:"uuid"`
	Seats   []int       `json:"seats"`
	Cards   []deck.Card `json:"cards"`
	Message string      `json:"message"`
	Time    time.Time   `json:"time"`
}

func newLogMessage(seat *Seat, cards []deck.Card, format string, a ...interface{}) *LogMessage {
	var seats []int
	if seat != nil {
		seats = []int{seat.Index}
	}

	return &LogMessage{
		UUID:    uuid.New().String(),
		Seats:   seats,
		Cards:   cards,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// addLog appends a log message, dropping the oldest past logMessageLimit
// NOTE: must only be called while holding the table lock
func (t *Table) addLog(seat *Seat, cards []deck.Card, format string, a ...interface{}) {
	m := append(t.logMessages, newLogMessage(seat, cards, format, a...))
	if count := len(m); count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	t.logMessages = m
}
