package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Hnato/JBH-Blackjack-LAN/pkg/blackjack"
)

// render prints the snapshot as a table for people or as JSON for scripts
func render(w io.Writer, snap *blackjack.Snapshot, pretty bool) error {
	if !pretty {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Fprintf(w, "Phase: %s  Shoe: %d  Version: %d\n", snap.Phase, snap.ShoeSize, snap.Version)

	dealer := "-"
	if snap.Dealer != nil && len(snap.Dealer.Hand) > 0 {
		dealer = fmt.Sprintf("%s (%d)", snap.Dealer.Hand.String(), snap.Dealer.Score)
		if snap.Dealer.Hidden > 0 {
			dealer = fmt.Sprintf("%s [+%d hidden] (%d)", snap.Dealer.Hand.String(), snap.Dealer.Hidden, snap.Dealer.Score)
		}
	}
	fmt.Fprintf(w, "Dealer: %s\n\n", dealer)

	if len(snap.Seats) == 0 {
		fmt.Fprintln(w, "No one is seated")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEAT\tNAME\tMONEY\tBET\tHAND\tSCORE\tSTATUS")
	for _, seat := range snap.Seats {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%d\t%s\n",
			seatLabel(snap, seat),
			seat.Name,
			seat.Money,
			seat.Bet,
			seat.Hand.String(),
			seat.Score,
			status(snap, seat),
		)
	}

	return tw.Flush()
}

// seatLabel marks the active seat with * and the admin seat with @
func seatLabel(snap *blackjack.Snapshot, seat *blackjack.SeatSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", seat.Seat)
	if snap.ActiveSeat != nil && *snap.ActiveSeat == seat.Seat {
		b.WriteString("*")
	}

	if snap.AdminSeat != nil && *snap.AdminSeat == seat.Seat {
		b.WriteString("@")
	}

	return b.String()
}

func status(snap *blackjack.Snapshot, seat *blackjack.SeatSnapshot) string {
	switch {
	case seat.Outcome != blackjack.OutcomeNone:
		return string(seat.Outcome)
	case seat.Finished:
		return "stood"
	case snap.Phase == blackjack.PhasePlay:
		return "playing"
	}

	return ""
}
