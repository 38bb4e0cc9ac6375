package blackjack

import (
	"sync"

	"github.com/Hnato/JBH-Blackjack-LAN/internal/rng"
	"github.com/Hnato/JBH-Blackjack-LAN/pkg/deck"
	"github.com/sirupsen/logrus"
)

// Caller identifies who is performing an action
type Caller struct {
	// Identity is the opaque id supplied by the transport
	Identity string

	// Loopback is true when the caller connected from the local machine
	Loopback bool
}

// Result is the outcome of an action
// A rejected action has Err set. An action that changed the table carries the
// snapshot to broadcast. Neither set means the action was a no-op.
type Result struct {
	Err      error
	Snapshot *Snapshot

	// Departed is the identity whose seat was removed, if any
	Departed string
}

// Rejected returns true if the action failed a precondition
func (r Result) Rejected() bool {
	return r.Err != nil
}

// Changed returns true if the table changed and the snapshot must be broadcast
func (r Result) Changed() bool {
	return r.Snapshot != nil
}

// Table is a blackjack table shared by every connected caller.
// Every exported method holds the table lock for the whole mutate-then-project sequence.
type Table struct {
	mu sync.Mutex

	options Options
	logger  logrus.FieldLogger
	newShoe func() *deck.Shoe

	phase      Phase
	shoe       *deck.Shoe
	dealer     deck.Hand
	seats      []*Seat
	identities map[string]*Seat
	active     *Seat
	finished   bool

	host  string
	admin string

	version     int64
	logMessages []*LogMessage
}

// NewTable returns a table in the betting phase with a freshly shuffled shoe
func NewTable(logger logrus.FieldLogger, options Options) (*Table, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	t := &Table{
		options:    options,
		logger:     logger,
		phase:      PhaseBetting,
		seats:      make([]*Seat, options.Seats),
		identities: make(map[string]*Seat),
	}

	t.newShoe = func() *deck.Shoe {
		s := deck.NewShoe(options.Decks, rng.Crypto{})
		s.Shuffle()
		return s
	}

	t.shoe = t.newShoe()
	return t, nil
}

// action is the signature every mutation implements
// changed is false when the action was accepted but clamped to nothing
type action func() (changed bool, err error)

// apply runs fn under the table lock and projects a snapshot if it changed anything
func (t *Table) apply(name string, c Caller, fn action) Result {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed, err := fn()
	if err != nil {
		t.logger.WithFields(logrus.Fields{
			"action":   name,
			"identity": c.Identity,
			"phase":    t.phase,
		}).WithError(err).Debug("action rejected")

		return Result{Err: err}
	}

	if !changed {
		return Result{}
	}

	return Result{Snapshot: t.commit()}
}

// commit bumps the version and returns a fresh snapshot
// NOTE: must only be called while holding the table lock
func (t *Table) commit() *Snapshot {
	t.version++
	return t.snapshot()
}

// Snapshot returns the current state of the table
func (t *Table) Snapshot() *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshot()
}

// Connect registers a connected identity and returns the state it should be shown.
// The first identity to connect while the host slot is empty becomes the host.
// Loopback callers that are already privileged never claim the host slot.
func (t *Table) Connect(c Caller) *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.host == "" && c.Identity != "" && !(c.Loopback && t.options.LoopbackPrivileged) {
		t.host = c.Identity
		t.logger.WithField("identity", c.Identity).Info("host connected")
	}

	return t.snapshot()
}

// Disconnect is called when the last connection of identity closes.
// It clears the host slot and gives up the seat.
func (t *Table) Disconnect(identity string) Result {
	c := Caller{Identity: identity}
	res := t.apply("disconnect", c, func() (bool, error) {
		if t.host == identity {
			t.host = ""
			t.logger.WithField("identity", identity).Info("host disconnected")
		}

		return t.depart(identity), nil
	})

	if res.Changed() {
		res.Departed = identity
	}

	return res
}

// IsPrivileged returns true if the caller may run host-only actions
func (t *Table) IsPrivileged(c Caller) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.isPrivileged(c)
}

func (t *Table) isPrivileged(c Caller) bool {
	if c.Loopback && t.options.LoopbackPrivileged {
		return true
	}

	if c.Identity == "" {
		return false
	}

	return c.Identity == t.host || c.Identity == t.admin
}

// Join seats the caller at the lowest free seat
func (t *Table) Join(c Caller, name string) Result {
	return t.apply("join", c, func() (bool, error) {
		return t.join(c.Identity, name)
	})
}

func (t *Table) join(identity, name string) (bool, error) {
	if t.phase != PhaseBetting {
		return false, ErrJoinClosed
	}

	if _, found := t.identities[identity]; found {
		return false, ErrAlreadySeated
	}

	index := -1
	for i, s := range t.seats {
		if s == nil {
			index = i
			break
		}
	}

	if index < 0 {
		return false, ErrTableFull
	}

	s := newSeat(index, identity, cleanName(name), t.options.StartingMoney)
	t.seats[index] = s
	t.identities[identity] = s

	if t.admin == "" {
		t.admin = identity
	}

	t.logger.WithFields(logrus.Fields{
		"seat":     index,
		"identity": identity,
		"name":     s.Name,
	}).Info("player joined")
	t.addLog(s, nil, "%s sat down", s.Name)

	return true, nil
}

// Leave gives up the seat held by identity. A host keeps the host slot.
func (t *Table) Leave(identity string) Result {
	c := Caller{Identity: identity}
	res := t.apply("leave", c, func() (bool, error) {
		return t.depart(identity), nil
	})

	if res.Changed() {
		res.Departed = identity
	}

	return res
}

// Kick removes whoever sits at the given seat
func (t *Table) Kick(c Caller, index int) Result {
	var departed string
	res := t.apply("kick", c, func() (bool, error) {
		if !t.isPrivileged(c) {
			return false, ErrNotPrivileged
		}

		s := t.seatAt(index)
		if s == nil {
			return false, ErrSeatNotFound
		}

		departed = s.Identity
		t.addLog(s, nil, "%s was removed from the table", s.Name)
		return t.depart(s.Identity), nil
	})

	res.Departed = departed
	return res
}

// depart removes the seat held by identity.
// It returns true if a seat was removed.
// NOTE: must only be called while holding the table lock
func (t *Table) depart(identity string) bool {
	s, found := t.identities[identity]
	if !found {
		return false
	}

	t.seats[s.Index] = nil
	delete(t.identities, identity)

	if t.admin == identity {
		t.admin = ""
		if next := t.lowestSeat(); next != nil {
			t.admin = next.Identity
		}
	}

	t.logger.WithFields(logrus.Fields{
		"seat":     s.Index,
		"identity": identity,
	}).Info("player left")

	if t.active == s {
		t.active = nil
		t.advanceTurn()
	}

	return true
}

// seatAt returns the occupant of index, or nil
func (t *Table) seatAt(index int) *Seat {
	if index < 0 || index >= len(t.seats) {
		return nil
	}

	return t.seats[index]
}

// seatFor returns the caller's seat
func (t *Table) seatFor(c Caller) (*Seat, error) {
	s, found := t.identities[c.Identity]
	if !found {
		return nil, ErrNotSeated
	}

	return s, nil
}

// lowestSeat returns the occupied seat with the lowest index
func (t *Table) lowestSeat() *Seat {
	for _, s := range t.seats {
		if s != nil {
			return s
		}
	}

	return nil
}

// occupied returns every occupied seat in index order
func (t *Table) occupied() []*Seat {
	seats := make([]*Seat, 0, len(t.seats))
	for _, s := range t.seats {
		if s != nil {
			seats = append(seats, s)
		}
	}

	return seats
}
