package mux

import (
	"net/http"

	"github.com/Hnato/JBH-Blackjack-LAN/pkg/blackjack"
	"github.com/Hnato/JBH-Blackjack-LAN/pkg/room"
	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	table   *blackjack.Table
	dealer  *room.Dealer
}

// NewMux returns a new HTTP mux serving tbl
// The dealer's run loop is started here and stopped by Close.
func NewMux(version string, tbl *blackjack.Table) *Mux {
	dealer := room.NewDealer(logrus.WithField("component", "dealer"), tbl)
	dealer.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		table:   tbl,
		dealer:  dealer,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/table").Handler(this.getTable())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}

// Close stops the dealer
func (m *Mux) Close() {
	m.dealer.EndShift()
}
