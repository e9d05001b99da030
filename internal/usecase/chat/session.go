package chat

import "math/rand"

// Turn is one prior exchange in a conversation.
type Turn struct {
	User string
	Bot  string
}

// Session holds per-conversation state: the turn history and a seeded RNG
// for picking among canned phrasings. Not safe for concurrent use; one
// in-flight Respond per session at a time.
type Session struct {
	turns []Turn
	rng   *rand.Rand
}

// NewSession creates a session with a deterministic phrasing source.
// Tests pass a fixed seed to assert exact output.
func NewSession(seed int64) *Session {
	return &Session{rng: rand.New(rand.NewSource(seed))}
}

// Record appends a completed exchange.
func (s *Session) Record(user, bot string) {
	s.turns = append(s.turns, Turn{User: user, Bot: bot})
}

// Turns returns the prior exchanges in order.
func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// FirstTurn reports whether no exchange has completed yet. Used to
// suppress the long greeting after the first turn.
func (s *Session) FirstTurn() bool {
	return len(s.turns) == 0
}

// pick returns a deterministic index into a phrasing list of length n.
func (s *Session) pick(n int) int {
	if n <= 1 {
		return 0
	}
	return s.rng.Intn(n)
}
