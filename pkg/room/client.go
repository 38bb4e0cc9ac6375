package room

import (
	"fmt"

	"github.com/Hnato/JBH-Blackjack-LAN/pkg/blackjack"
	"github.com/Hnato/JBH-Blackjack-LAN/pkg/protocol"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close receives the reason the server wants the connection closed
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer
	caller blackjack.Caller

	// lastVersion is the newest snapshot version sent to the client
	// NOTE: only accessed from the dealer run loop
	lastVersion int64
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, caller blackjack.Caller) *Client {
	return &Client{
		send:        make(chan interface{}, 256),
		Close:       make(chan string, 1),
		Conn:        conn,
		caller:      caller,
		lastVersion: -1,
	}
}

// Send sends a message to the web client without blocking
// false is returned if the client isn't keeping up
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Caller returns who the client acts as
func (c *Client) Caller() blackjack.Caller {
	return c.caller
}

// Identity returns the client's identity
func (c *Client) Identity() string {
	return c.caller.Identity
}

// Kick asks the write loop to close the connection
func (c *Client) Kick(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	if c.caller.Loopback {
		return fmt.Sprintf("%s (loopback)", c.caller.Identity)
	}

	return c.caller.Identity
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *protocol.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
