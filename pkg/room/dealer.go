package room

import (
	"errors"
	"sync"

	"github.com/Hnato/JBH-Blackjack-LAN/pkg/blackjack"
	"github.com/Hnato/JBH-Blackjack-LAN/pkg/protocol"
	"github.com/sirupsen/logrus"
)

// KickReason is sent in the close frame of a kicked connection
const KickReason = "you were removed from the table"

// ErrUnknownAction is returned when a message's action is not recognized
var ErrUnknownAction = errors.New("unknown action")

// errMissingSeat is returned when a kick does not name a seat
var errMissingSeat = errors.New("seat is required")

// Dealer relays messages between the connected clients and the table
type Dealer struct {
	table   *blackjack.Table
	logger  logrus.FieldLogger
	clients map[*Client]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
func NewDealer(logger logrus.FieldLogger, table *blackjack.Table) *Dealer {
	return &Dealer{
		table:         table,
		logger:        logger,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Table returns the table the dealer runs
func (d *Dealer) Table() *blackjack.Table {
	return d.table
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec queues fn on the run loop unless the shift is over
func (d *Dealer) exec(fn func()) {
	select {
	case d.execInRunLoop <- fn:
	case <-d.close:
	}
}

// AddClient adds a client and sends it the current state
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	snapshot := d.table.Connect(client.Caller())
	d.exec(func() {
		d.sendState(client, snapshot)
	})
}

// RemoveClient removes a client
// The identity's seat is only given up when its last connection goes away.
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	lastClient = true
	for other := range d.clients {
		if other.Identity() == client.Identity() {
			lastClient = false
			break
		}
	}
	d.lock.Unlock()

	if !lastClient {
		return false
	}

	res := d.table.Disconnect(client.Identity())
	if res.Changed() {
		d.logger.WithField("client", client.String()).Info("client left the table")
		d.broadcast(res.Snapshot)
	}

	return true
}

// ReceivedMessage is called when a client sends a message to the server
// The action runs on the caller's goroutine; only the broadcast goes through the run loop.
func (d *Dealer) ReceivedMessage(c *Client, msg *protocol.PayloadIn) {
	res, err := d.dispatch(c.Caller(), msg)
	if err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"client": c.String(),
			"action": msg.Action,
		}).Warn("could not handle message")
		return
	}

	d.handleResult(c, msg.Context, res)
}

func (d *Dealer) dispatch(caller blackjack.Caller, msg *protocol.PayloadIn) (blackjack.Result, error) {
	switch msg.Action {
	case protocol.ActionJoin:
		name, _ := msg.AdditionalData.GetString("name")
		return d.table.Join(caller, name), nil
	case protocol.ActionLeave:
		return d.table.Leave(caller.Identity), nil
	case protocol.ActionKick:
		seat, ok := msg.AdditionalData.GetInt("seat")
		if !ok {
			return blackjack.Result{}, errMissingSeat
		}

		return d.table.Kick(caller, seat), nil
	case protocol.ActionBet:
		amount, ok := msg.AdditionalData.GetInt("amount")
		if !ok {
			return blackjack.Result{Err: blackjack.ErrInvalidAmount}, nil
		}

		return d.table.PlaceBet(caller, amount), nil
	case protocol.ActionStart:
		return d.table.StartGame(caller), nil
	case protocol.ActionHit:
		return d.table.Hit(caller), nil
	case protocol.ActionStand:
		return d.table.Stand(caller), nil
	case protocol.ActionDouble:
		return d.table.DoubleDown(caller), nil
	case protocol.ActionSplit:
		return d.table.Split(caller), nil
	case protocol.ActionNewBets:
		return d.table.NewBets(caller), nil
	}

	return blackjack.Result{}, ErrUnknownAction
}

// handleResult tells the caller about user-facing rejections, closes kicked
// connections and publishes the new state
func (d *Dealer) handleResult(c *Client, ctx string, res blackjack.Result) {
	if res.Rejected() {
		var userErr blackjack.UserError
		if errors.As(res.Err, &userErr) {
			c.Send(protocol.NewErrorResponse(ctx, userErr))
		}

		return
	}

	if res.Departed != "" && res.Departed != c.Identity() {
		d.closeIdentity(res.Departed, KickReason)
	}

	if res.Changed() {
		d.broadcast(res.Snapshot)
	}
}

// closeIdentity closes every connection of identity
func (d *Dealer) closeIdentity(identity, reason string) {
	for _, client := range d.Clients() {
		if client.Identity() == identity {
			d.logger.WithField("client", client.String()).Info("closing connection")
			client.Kick(reason)
		}
	}
}

// broadcast sends the snapshot to every connected client
func (d *Dealer) broadcast(snapshot *blackjack.Snapshot) {
	d.exec(func() {
		for _, client := range d.Clients() {
			d.sendState(client, snapshot)
		}
	})
}

// sendState sends the snapshot unless the client has already seen a newer one
// NOTE: must only be called from the run loop
func (d *Dealer) sendState(client *Client, snapshot *blackjack.Snapshot) {
	if snapshot.Version <= client.lastVersion {
		return
	}

	client.lastVersion = snapshot.Version
	if !client.Send(protocol.NewStateResponse(snapshot)) {
		d.logger.WithField("client", client.String()).Warn("send buffer full, dropping state")
	}
}
