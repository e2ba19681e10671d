// Package session keeps per-user dialog state: the input-mode flag and the
// last successful calculation. State lives in process memory only and is
// dropped wholesale at shutdown; there is no expiry, so the map grows with
// the number of distinct users for the process lifetime.
package session

import (
	"sync"

	"capturnbot/internal/turnover"
)

// Mode identifies the dialog mode of a user.
type Mode string

const (
	// ModeIdle indicates no pending input is expected from the user.
	ModeIdle Mode = "idle"
	// ModeAwaitingInput indicates the next plain text message from the
	// user is treated as calculation input (one attempt, not a loop).
	ModeAwaitingInput Mode = "awaiting_input"
)

// Calculation couples a validated input with the result computed from it.
type Calculation struct {
	Input  turnover.Input
	Result turnover.Result
}

// Session is a snapshot of one user's dialog state.
type Session struct {
	UserID          int64
	Mode            Mode
	LastCalculation *Calculation
}

// Store owns all user sessions. Telebot dispatches handlers on separate
// goroutines, so access is guarded by a single lock; per-user capacity is
// one calculation (no history).
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore constructs an empty store. It should be created once at startup
// and cleared via ClearAll at shutdown.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns a copy of the user's session and whether one exists.
func (s *Store) Get(userID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{UserID: userID, Mode: ModeIdle}, false
	}
	return *sess, true
}

// LastCalculation returns the stored calculation for the user, if any.
func (s *Store) LastCalculation(userID int64) (Calculation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok || sess.LastCalculation == nil {
		return Calculation{}, false
	}
	return *sess.LastCalculation, true
}

// SetLastCalculation overwrites the user's stored calculation.
func (s *Store) SetLastCalculation(userID int64, in turnover.Input, res turnover.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.ensure(userID)
	sess.LastCalculation = &Calculation{Input: in, Result: res}
}

// SetAwaitingInput switches the user's input mode.
func (s *Store) SetAwaitingInput(userID int64, awaiting bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.ensure(userID)
	if awaiting {
		sess.Mode = ModeAwaitingInput
	} else {
		sess.Mode = ModeIdle
	}
}

// AwaitingInput reports whether the user's next text message should be
// routed into the calculation flow.
func (s *Store) AwaitingInput(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return ok && sess.Mode == ModeAwaitingInput
}

// Len returns the number of distinct user sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// ClearAll atomically drops every session. Invoked once at shutdown.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[int64]*Session)
}

func (s *Store) ensure(userID int64) *Session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{UserID: userID, Mode: ModeIdle}
		s.sessions[userID] = sess
	}
	return sess
}
