package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/Hnato/JBH-Blackjack-LAN/pkg/blackjack"
	"github.com/Hnato/JBH-Blackjack-LAN/pkg/protocol"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// errNoChange is returned when the table ignores an action
// Rejected host actions are silent, so a timeout is the only signal.
var errNoChange = errors.New("the table did not change, the action was rejected or had no effect")

type message struct {
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Data    json.RawMessage `json:"data"`
	Context string          `json:"context"`
}

// session is a websocket connection to the table
type session struct {
	conn     *websocket.Conn
	timeout  time.Duration
	identity string
	state    *blackjack.Snapshot
}

// dial connects and waits for the welcome and the first state
func dial(server, token string, timeout time.Duration) (*session, error) {
	u, err := url.Parse(server)
	if err != nil {
		return nil, err
	}

	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}

	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, resp, err := dialer.Dial(u.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("could not connect to %s: %s", server, resp.Status)
		}

		return nil, fmt.Errorf("could not connect to %s: %w", server, err)
	}

	s := &session{
		conn:    conn,
		timeout: timeout,
	}

	for s.identity == "" || s.state == nil {
		msg, err := s.read()
		if err != nil {
			_ = conn.Close()
			return nil, err
		}

		switch msg.Key {
		case protocol.KeyWelcome:
			var welcome protocol.Welcome
			if err := json.Unmarshal(msg.Data, &welcome); err != nil {
				_ = conn.Close()
				return nil, err
			}

			s.identity = welcome.Identity
			logrus.WithField("identity", s.identity).Debug("connected")
		case protocol.KeyState:
			if err := s.setState(msg); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
	}

	return s, nil
}

// do sends the action and waits for the state it produced
func (s *session) do(action string, data protocol.AdditionalData) error {
	before := s.state.Version
	if err := s.conn.WriteJSON(protocol.PayloadIn{
		Action:         action,
		AdditionalData: data,
		Context:        action,
	}); err != nil {
		return err
	}

	for {
		msg, err := s.read()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return errNoChange
			}

			return err
		}

		switch msg.Key {
		case protocol.KeyError:
			return fmt.Errorf("%s rejected: %s", action, msg.Value)
		case protocol.KeyState:
			if err := s.setState(msg); err != nil {
				return err
			}

			if s.state.Version > before {
				return nil
			}
		}
	}
}

func (s *session) read() (*message, error) {
	_ = s.conn.SetReadDeadline(time.Now().Add(s.timeout))

	var msg message
	if err := s.conn.ReadJSON(&msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

func (s *session) setState(msg *message) error {
	var snap blackjack.Snapshot
	if err := json.Unmarshal(msg.Data, &snap); err != nil {
		return err
	}

	s.state = &snap
	return nil
}

// Close says goodbye to the server
func (s *session) Close() {
	_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	_ = s.conn.Close()
}
