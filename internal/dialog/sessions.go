package dialog

import "sync"

// Session is one user's in-flight dialog.
type Session struct {
	State State
	Acc   Accumulator
}

// Sessions keeps per-user dialog state in memory. Sessions do not survive a
// restart: after one the user simply starts a fresh entry.
type Sessions struct {
	mu sync.Mutex
	m  map[int64]*Session
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[int64]*Session)}
}

// Begin opens a session for the user, replacing any stale one.
func (s *Sessions) Begin(userID int64, hasExisting bool) Effect {
	state, effect := Start(hasExisting)
	s.mu.Lock()
	s.m[userID] = &Session{State: state}
	s.mu.Unlock()
	return effect
}

// Active reports whether the user has a dialog in progress.
func (s *Sessions) Active(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[userID]
	return ok
}

// State returns the user's current dialog state, if a session exists.
func (s *Sessions) State(userID int64) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[userID]
	if !ok {
		return StateIdle, false
	}
	return sess.State, true
}

// Apply feeds one event to the user's session and returns the resulting
// effect together with the accumulated answers. Without an active session it
// returns EffectNone. Terminal effects close the session.
func (s *Sessions) Apply(userID int64, ev Event) (Effect, Accumulator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.m[userID]
	if !ok {
		return EffectNone, Accumulator{}
	}
	state, acc, effect := Transition(sess.State, sess.Acc, ev)
	sess.State, sess.Acc = state, acc

	if effect == EffectCommit || effect == EffectCancelled {
		delete(s.m, userID)
	}
	return effect, acc
}

// End drops the user's session unconditionally.
func (s *Sessions) End(userID int64) {
	s.mu.Lock()
	delete(s.m, userID)
	s.mu.Unlock()
}
