package main

import (
	"os"
	"time"

	"github.com/Hnato/JBH-Blackjack-LAN/pkg/protocol"
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var cli struct {
	Server  string        `default:"ws://127.0.0.1:5000/ws" help:"WebSocket URL of the table"`
	Token   string        `help:"Identity token to act as (defaults to a new loopback identity)"`
	Timeout time.Duration `default:"3s" help:"How long to wait for the table to answer"`
	JSON    bool          `help:"Always print JSON"`

	Start   struct{} `cmd:"" help:"Deal a new round"`
	NewBets struct{} `cmd:"" help:"Clear the table and open betting"`
	Kick    struct {
		Seat int `arg:"" help:"Seat index to clear"`
	} `cmd:"" help:"Remove whoever sits at a seat"`
	State struct{} `cmd:"" help:"Print the table state"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("admin"),
		kong.Description("Host controls for a JBH blackjack table"),
		kong.UsageOnError(),
	)

	s, err := dial(cli.Server, cli.Token, cli.Timeout)
	ctx.FatalIfErrorf(err)
	defer s.Close()

	switch ctx.Command() {
	case "start":
		err = s.do(protocol.ActionStart, nil)
	case "new-bets":
		err = s.do(protocol.ActionNewBets, nil)
	case "kick <seat>":
		err = s.do(protocol.ActionKick, protocol.AdditionalData{"seat": cli.Kick.Seat})
	case "state":
	default:
		logrus.Fatalf("unknown command: %s", ctx.Command())
	}
	ctx.FatalIfErrorf(err)

	pretty := !cli.JSON && term.IsTerminal(int(os.Stdout.Fd()))
	ctx.FatalIfErrorf(render(os.Stdout, s.state, pretty))
}
