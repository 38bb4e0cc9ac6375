// Package protocol contains the messages exchanged with websocket clients
package protocol

// Actions a client can send
const (
	ActionJoin    = "join"
	ActionLeave   = "leave"
	ActionKick    = "kick"
	ActionBet     = "bet"
	ActionStart   = "start"
	ActionHit     = "hit"
	ActionStand   = "stand"
	ActionDouble  = "double"
	ActionSplit   = "split"
	ActionNewBets = "newBets"
)

// Keys of messages sent by the server
const (
	KeyWelcome = "welcome"
	KeyState   = "state"
	KeyError   = "error"
)

// PayloadIn is the format we expect from the client
//
//	{"action": "bet", "additionalData": {"amount": 100}, "context": "abc"}
type PayloadIn struct {
	Action         string         `json:"action"`
	AdditionalData AdditionalData `json:"additionalData"`

	// Context will be passed back on any direct response
	Context string `json:"context"`
}

// Response is a message sent to a client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// NewErrorResponse returns a response carrying a human readable reason
func NewErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     KeyError,
		Value:   err.Error(),
		Context: ctx,
	}
}

// NewStateResponse wraps a table snapshot
func NewStateResponse(snapshot interface{}) *Response {
	return &Response{
		Key:  KeyState,
		Data: snapshot,
	}
}

// Welcome tells a newly connected client who it is
type Welcome struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

// NewWelcomeResponse returns the first message sent on every connection
func NewWelcomeResponse(identity, token string) *Response {
	return &Response{
		Key: KeyWelcome,
		Data: Welcome{
			Identity: identity,
			Token:    token,
		},
	}
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
// JSON numbers decode as float64, anything with a fraction is rejected.
func (a AdditionalData) GetInt(key string) (int, bool) {
	floatVal, ok := a[key].(float64)
	if !ok {
		return 0, false
	}

	if floatVal != float64(int(floatVal)) {
		return 0, false
	}

	return int(floatVal), true
}
