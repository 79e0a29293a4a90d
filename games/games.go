// Package games implements the wagering mini-games. Each game is stateless:
// it validates its parameters, draws from an injected random source and
// returns an Outcome describing the coin delta and XP to apply. Games never
// touch the ledger; the economy service applies outcomes.
package games

import (
	"math/rand"
	"sync"
	"time"
)

// Rand is the random source injected into games. Intn returns a uniform
// integer in [0, n).
type Rand interface {
	Intn(n int) int
}

// Game resolves a single wager against a random source.
type Game interface {
	// Validate checks the game's parameters without drawing randomness.
	// It returns an InvalidWagerError for malformed input.
	Validate() error

	// BetAmount returns the coins at risk, 0 for free games.
	BetAmount() int64

	// Resolve draws from r and produces the outcome. Callers must
	// Validate first; Resolve assumes well-formed parameters.
	Resolve(r Rand) Outcome
}

// Outcome is the resolution of a single wager. Payout is the signed coin
// delta to apply to the player's balance; XP is awarded regardless of sign
// unless zero.
type Outcome struct {
	Won    bool
	Tie    bool
	Payout int64
	XP     int64

	// Detail fields for rendering, populated per game.
	Roll       int // die face or drawn number
	Winning    int // winning number, where the game draws one
	BotChoice  Choice
	UserChoice Choice
}

// InvalidWagerError reports malformed bet parameters. The reason is a
// user-facing message rendered verbatim by the command layer.
type InvalidWagerError struct {
	Reason string
}

func (e *InvalidWagerError) Error() string {
	return e.Reason
}

// NewRand returns a time-seeded source safe for concurrent use.
func NewRand() Rand {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
